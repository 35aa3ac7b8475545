package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
)

const appointmentColumns = `id, usuario_id, especialista_id, fecha, hora, created_at`

type appointmentsRepo struct {
	db dbtx
}

func scanAppointment(row interface{ Scan(...any) error }) (domain.Appointment, error) {
	var (
		a            domain.Appointment
		especialista sql.NullString
		createdAt    int64
	)
	if err := row.Scan(&a.ID, &a.UsuarioID, &especialista, &a.Fecha, &a.Hora, &createdAt); err != nil {
		return domain.Appointment{}, err
	}
	a.EspecialistaID = mapNullString(especialista)
	a.CreatedAt = fromUnix(createdAt)
	return a, nil
}

func (r *appointmentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UsuarioID, mapStringNull(a.EspecialistaID), a.Fecha, a.Hora, toUnix(createdAt),
	)
	return err
}

func (r *appointmentsRepo) GetAppointmentByID(ctx context.Context, id string) (domain.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id))
	if err != nil {
		return domain.Appointment{}, mapNotFound(err)
	}
	return a, nil
}

func (r *appointmentsRepo) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY id`)
}

func (r *appointmentsRepo) ListAppointmentsByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE usuario_id = ? ORDER BY id`, userID)
}

func (r *appointmentsRepo) ListAppointmentsBySpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE especialista_id = ? ORDER BY id`, specialistID)
}
