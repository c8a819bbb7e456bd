package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateSession records a signed-in session under the token's id.
func (s *Store) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (session_id, user_id, expires_at) VALUES ($1,$2,$3)`,
		id, userID, expiresAt,
	)
	return err
}

// SessionActive reports whether the session exists, is not revoked and has
// not expired. A missing row is simply inactive.
func (s *Store) SessionActive(ctx context.Context, id string) (bool, error) {
	var live bool
	err := s.pool.QueryRow(ctx,
		`SELECT NOT revoked AND expires_at > now() FROM sessions WHERE session_id = $1`, id,
	).Scan(&live)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return live, err
}

// RevokeSession ends one session (logout). Unknown ids are ignored.
func (s *Store) RevokeSession(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE sessions SET revoked = true WHERE session_id = $1`, id,
	)
	return err
}

// RevokeUserSessions ends every session of a user, e.g. after the seeder
// changes their password or role.
func (s *Store) RevokeUserSessions(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE sessions SET revoked = true WHERE user_id = $1 AND revoked = false`,
		userID,
	)
	return err
}

// PurgeSessions deletes rows that can no longer authenticate.
func (s *Store) PurgeSessions(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE revoked OR expires_at <= now()`,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
