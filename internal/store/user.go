package store

import (
	"context"

	"therapy-practice-admin/internal/model"
)

func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, username, password_hash, role
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		return nil, one(err)
	}
	return u, nil
}

// UpsertUser creates the user or replaces the password hash and role of an
// existing one with the same username.
func (s *Store) UpsertUser(ctx context.Context, u *model.User) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES ($1,$2,$3)
		 ON CONFLICT (username) DO UPDATE
		 SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
		 RETURNING user_id`,
		u.Username, u.PasswordHash, u.Role,
	).Scan(&u.ID)
}
