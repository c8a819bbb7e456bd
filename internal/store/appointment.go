package store

import (
	"context"

	"therapy-practice-admin/internal/model"
)

func (s *Store) ListAppointments(ctx context.Context) ([]model.AppointmentRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.appointment_id, a.client_id, a.service_id, a.start_datetime, a.end_datetime,
		        a.notes, c.first_name, c.last_name, s.service_name
		 FROM appointments a
		 LEFT JOIN clients c ON a.client_id = c.client_id
		 LEFT JOIN services s ON a.service_id = s.service_id
		 ORDER BY a.start_datetime DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentRow
	for rows.Next() {
		var a model.AppointmentRow
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.ServiceID, &a.StartTime, &a.EndTime,
			&a.Notes, &a.FirstName, &a.LastName, &a.ServiceName,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT appointment_id, client_id, service_id, start_datetime, end_datetime, notes
		 FROM appointments WHERE appointment_id = $1`, id,
	).Scan(&a.ID, &a.ClientID, &a.ServiceID, &a.StartTime, &a.EndTime, &a.Notes)
	if err != nil {
		return nil, one(err)
	}
	return a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO appointments (client_id, service_id, start_datetime, end_datetime, notes)
		 VALUES ($1,$2,$3,$4,$5) RETURNING appointment_id`,
		a.ClientID, a.ServiceID, a.StartTime, a.EndTime, a.Notes,
	).Scan(&a.ID)
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	return affected(s.pool.Exec(ctx,
		`UPDATE appointments
		 SET client_id=$1, service_id=$2, start_datetime=$3, end_datetime=$4, notes=$5
		 WHERE appointment_id=$6`,
		a.ClientID, a.ServiceID, a.StartTime, a.EndTime, a.Notes, a.ID,
	))
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	return affected(s.pool.Exec(ctx, `DELETE FROM appointments WHERE appointment_id=$1`, id))
}
