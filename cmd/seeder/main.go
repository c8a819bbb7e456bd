// Command seeder creates or resets a login and optionally adds services.
// Users are never created through the web app.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"therapy-practice-admin/internal/auth"
	"therapy-practice-admin/internal/logging"
	"therapy-practice-admin/internal/model"
	"therapy-practice-admin/internal/store"
	"therapy-practice-admin/internal/store/migrations"
)

func main() {
	_ = godotenv.Load()

	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "postgres connection string")
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "login password")
	role := flag.String("role", "therapist", "role stored with the user")
	services := flag.String("services", "", "comma separated service names to add")
	migrate := flag.Bool("migrate", true, "apply schema migrations first")
	flag.Parse()

	log := logging.New("info", "text")
	if *dbURL == "" {
		log.Fatal("DATABASE_URL or -db is required")
	}
	if *username == "" || *password == "" {
		log.Fatal("-username and -password are required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if *migrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Apply(ctx, db)
		db.Close()
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	st := store.New(pool)
	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	u := &model.User{Username: strings.TrimSpace(*username), PasswordHash: hash, Role: *role}
	if err := st.UpsertUser(ctx, u); err != nil {
		log.Fatalf("user: %v", err)
	}
	// a changed password or role must not ride on an old session
	if err := st.RevokeUserSessions(ctx, u.ID); err != nil {
		log.Fatalf("revoke sessions: %v", err)
	}
	log.WithField("user_id", u.ID).WithField("username", u.Username).Info("user seeded")

	for _, name := range strings.Split(*services, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sv := &model.Service{Name: name}
		if err := st.CreateService(ctx, sv); err != nil {
			log.Fatalf("service %q: %v", name, err)
		}
		log.WithField("service_id", sv.ID).WithField("name", name).Info("service added")
	}
}
