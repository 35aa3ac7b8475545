package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
)

type remindersRepo struct {
	q querier
}

func (r *remindersRepo) CreateReminder(ctx context.Context, rem domain.Reminder) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO reminders (id, appointment_id, due_at) VALUES ($1, $2, $3)`,
		rem.ID, rem.AppointmentID, rem.DueAt.UTC(),
	)
	return err
}

func (r *remindersRepo) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, appointment_id, due_at, sent_at, created_at
		FROM reminders
		WHERE sent_at IS NULL AND due_at <= $1
		ORDER BY due_at, id
		LIMIT $2`, now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reminder{}
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.ID, &rem.AppointmentID, &rem.DueAt, &rem.SentAt, &rem.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *remindersRepo) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE reminders SET sent_at = $1 WHERE id = $2 AND sent_at IS NULL`, at.UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *remindersRepo) DeleteSentReminders(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reminders WHERE sent_at IS NOT NULL AND sent_at < $1`, before.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
