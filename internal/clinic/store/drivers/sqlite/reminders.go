package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
)

type remindersRepo struct {
	db dbtx
}

func (r *remindersRepo) CreateReminder(ctx context.Context, rem domain.Reminder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, appointment_id, due_at, created_at) VALUES (?, ?, ?, ?)`,
		rem.ID, rem.AppointmentID, toUnix(rem.DueAt), toUnix(time.Now()),
	)
	return err
}

func (r *remindersRepo) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, appointment_id, due_at, sent_at, created_at
		FROM reminders
		WHERE sent_at IS NULL AND due_at <= ?
		ORDER BY due_at, id
		LIMIT ?`, toUnix(now), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reminder{}
	for rows.Next() {
		var (
			rem              domain.Reminder
			dueAt, createdAt int64
			sentAt           sql.NullInt64
		)
		if err := rows.Scan(&rem.ID, &rem.AppointmentID, &dueAt, &sentAt, &createdAt); err != nil {
			return nil, err
		}
		rem.DueAt = fromUnix(dueAt)
		rem.SentAt = mapNullUnix(sentAt)
		rem.CreatedAt = fromUnix(createdAt)
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *remindersRepo) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET sent_at = ? WHERE id = ? AND sent_at IS NULL`, toUnix(at), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *remindersRepo) DeleteSentReminders(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE sent_at IS NOT NULL AND sent_at < ?`, toUnix(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
