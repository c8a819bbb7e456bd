package store

import (
	"context"

	"therapy-practice-admin/internal/model"
)

func (s *Store) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT service_id, service_name FROM services ORDER BY service_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		var sv model.Service
		if err := rows.Scan(&sv.ID, &sv.Name); err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (s *Store) GetService(ctx context.Context, id int64) (*model.Service, error) {
	sv := &model.Service{}
	err := s.pool.QueryRow(ctx,
		`SELECT service_id, service_name FROM services WHERE service_id = $1`, id,
	).Scan(&sv.ID, &sv.Name)
	if err != nil {
		return nil, one(err)
	}
	return sv, nil
}

func (s *Store) CreateService(ctx context.Context, sv *model.Service) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO services (service_name) VALUES ($1) RETURNING service_id`, sv.Name,
	).Scan(&sv.ID)
}

func (s *Store) UpdateService(ctx context.Context, sv *model.Service) error {
	return affected(s.pool.Exec(ctx,
		`UPDATE services SET service_name=$1 WHERE service_id=$2`, sv.Name, sv.ID))
}

func (s *Store) DeleteService(ctx context.Context, id int64) error {
	return affected(s.pool.Exec(ctx, `DELETE FROM services WHERE service_id=$1`, id))
}
