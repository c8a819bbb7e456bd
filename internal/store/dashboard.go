package store

import (
	"context"

	"therapy-practice-admin/internal/model"
)

// AppointmentsPerService counts appointments per service, including services
// with none, ordered by service name.
func (s *Store) AppointmentsPerService(ctx context.Context) ([]model.ServiceCount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.service_name, COUNT(a.appointment_id)
		 FROM services s
		 LEFT JOIN appointments a ON a.service_id = s.service_id
		 GROUP BY s.service_id, s.service_name
		 ORDER BY s.service_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ServiceCount
	for rows.Next() {
		var sc model.ServiceCount
		if err := rows.Scan(&sc.Name, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
