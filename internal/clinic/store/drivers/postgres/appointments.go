package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
)

const appointmentColumns = `id, usuario_id, especialista_id, fecha, hora, created_at`

type appointmentsRepo struct {
	q querier
}

func scanAppointment(row pgx.Row) (domain.Appointment, error) {
	var (
		a            domain.Appointment
		especialista *string
	)
	if err := row.Scan(&a.ID, &a.UsuarioID, &especialista, &a.Fecha, &a.Hora, &a.CreatedAt); err != nil {
		return domain.Appointment{}, err
	}
	if especialista != nil {
		a.EspecialistaID = *especialista
	}
	return a, nil
}

func (r *appointmentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAppointment keeps a.CreatedAt when set.
func (r *appointmentsRepo) CreateAppointment(ctx context.Context, a domain.Appointment) error {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UsuarioID, nullIfEmpty(a.EspecialistaID), a.Fecha, a.Hora, createdAt.UTC(),
	)
	return err
}

func (r *appointmentsRepo) GetAppointmentByID(ctx context.Context, id string) (domain.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return domain.Appointment{}, mapNotFound(err)
	}
	return a, nil
}

func (r *appointmentsRepo) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY id`)
}

func (r *appointmentsRepo) ListAppointmentsByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE usuario_id = $1 ORDER BY id`, userID)
}

func (r *appointmentsRepo) ListAppointmentsBySpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE especialista_id = $1 ORDER BY id`, specialistID)
}
