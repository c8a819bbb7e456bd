package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"therapy-practice-admin/internal/model"
)

const clientCols = `client_id, first_name, last_name, date_of_birth, phone, email, address,
	emergency_contact_name, emergency_contact_phone`

func scanClient(row pgx.Row, c *model.Client) error {
	return row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.Phone, &c.Email,
		&c.Address, &c.EmergencyContactName, &c.EmergencyContactPhone)
}

func (s *Store) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+clientCols+` FROM clients ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	c := &model.Client{}
	err := scanClient(s.pool.QueryRow(ctx,
		`SELECT `+clientCols+` FROM clients WHERE client_id = $1`, id), c)
	if err != nil {
		return nil, one(err)
	}
	return c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO clients (first_name, last_name, date_of_birth, phone, email, address,
		                      emergency_contact_name, emergency_contact_phone)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING client_id`,
		c.FirstName, c.LastName, c.DateOfBirth, c.Phone, c.Email, c.Address,
		c.EmergencyContactName, c.EmergencyContactPhone,
	).Scan(&c.ID)
}

func (s *Store) UpdateClient(ctx context.Context, c *model.Client) error {
	return affected(s.pool.Exec(ctx,
		`UPDATE clients
		 SET first_name=$1, last_name=$2, date_of_birth=$3, phone=$4, email=$5, address=$6,
		     emergency_contact_name=$7, emergency_contact_phone=$8
		 WHERE client_id=$9`,
		c.FirstName, c.LastName, c.DateOfBirth, c.Phone, c.Email, c.Address,
		c.EmergencyContactName, c.EmergencyContactPhone, c.ID,
	))
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	return affected(s.pool.Exec(ctx, `DELETE FROM clients WHERE client_id=$1`, id))
}
