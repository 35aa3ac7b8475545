package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/notify"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/pkg/idx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

const (
	reminderBatchSize = 100
	sentReminderTTL   = 30 * 24 * time.Hour
)

// ReminderService stores one reminder per appointment and a background
// worker emails the patient when it falls due.
type ReminderService struct {
	Store    store.Store
	Notifier notify.Notifier
	Logger   *slog.Logger
	Interval time.Duration
	LeadTime time.Duration
	Location *time.Location

	// Now is replaceable in tests.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewReminderService fills in defaults: a one minute interval, a 24 hour
// lead time and UTC.
func NewReminderService(
	st store.Store,
	notifier notify.Notifier,
	logger *slog.Logger,
	interval time.Duration,
	leadTime time.Duration,
	loc *time.Location,
) *ReminderService {
	if interval <= 0 {
		interval = time.Minute
	}
	if leadTime <= 0 {
		leadTime = 24 * time.Hour
	}
	if loc == nil {
		loc = time.UTC
	}

	return &ReminderService{
		Store:    st,
		Notifier: notifier,
		Logger:   logger,
		Interval: interval,
		LeadTime: leadTime,
		Location: loc,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Schedule stores a reminder due LeadTime before the appointment starts, or
// now if that moment has already passed. Appointments that have already
// started get no reminder.
func (s *ReminderService) Schedule(ctx context.Context, appt domain.Appointment) error {
	start, err := appt.StartsAt(s.Location)
	if err != nil {
		return fmt.Errorf("appointment %s start time: %w", appt.ID, err)
	}

	now := s.Now()
	if !start.After(now) {
		slogx.FromContext(ctx).Debug("appointment already started, no reminder scheduled",
			slog.Time("starts_at", start),
		)
		return nil
	}

	due := start.Add(-s.LeadTime)
	if due.Before(now) {
		due = now
	}

	rem := domain.Reminder{
		ID:            idx.New().String(),
		AppointmentID: appt.ID,
		DueAt:         due,
	}
	if err := s.Store.Reminders().CreateReminder(ctx, rem); err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}

	slogx.FromContext(ctx).Debug("reminder scheduled",
		slog.String("reminder_id", rem.ID),
		slog.Time("due_at", due),
	)
	return nil
}

// Start begins the background worker. Call Stop() to shut it down.
func (s *ReminderService) Start() {
	go s.run()
	s.Logger.Info("reminder service started", "interval", s.Interval, "lead_time", s.LeadTime)
}

// Stop blocks until an in-progress dispatch has finished.
func (s *ReminderService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("reminder service stopped")
}

func (s *ReminderService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Tick(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Tick(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Tick sends every due reminder once and purges old sent ones. It returns
// the number of reminders processed.
func (s *ReminderService) Tick(ctx context.Context) int {
	ctx = slogx.WithContext(ctx, s.Logger)
	now := s.Now()

	claimed, err := s.claimDue(ctx, now)
	if err != nil {
		s.Logger.Error("failed to claim due reminders", "error", err)
		return 0
	}

	for _, rem := range claimed {
		s.dispatch(ctx, rem)
	}

	purged, err := s.Store.Reminders().DeleteSentReminders(ctx, now.Add(-sentReminderTTL))
	if err != nil {
		s.Logger.Error("failed to purge sent reminders", "error", err)
	} else if purged > 0 {
		s.Logger.Debug("purged sent reminders", "count", purged)
	}

	if len(claimed) > 0 {
		s.Logger.Info("reminders dispatched", "count", len(claimed))
	}
	return len(claimed)
}

// claimDue marks a batch of due reminders sent in one transaction before any
// of them is emailed. A reminder claimed by another instance is skipped, and
// one whose send fails stays claimed: one attempt per reminder.
func (s *ReminderService) claimDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	var claimed []domain.Reminder

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		due, err := tx.Reminders().ListDueReminders(ctx, now, reminderBatchSize)
		if err != nil {
			return fmt.Errorf("list due reminders: %w", err)
		}

		claimed = claimed[:0]
		for _, rem := range due {
			err := tx.Reminders().MarkReminderSent(ctx, rem.ID, now)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("claim reminder %s: %w", rem.ID, err)
			}
			claimed = append(claimed, rem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (s *ReminderService) dispatch(ctx context.Context, rem domain.Reminder) {
	ctx = slogx.With(ctx, "reminder_id", rem.ID, "appointment_id", rem.AppointmentID)
	log := slogx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic sending reminder", "panic", r)
		}
	}()

	if err := s.sendReminder(ctx, rem); err != nil {
		log.Error("error sending reminder", "error", fmt.Errorf("%w: %w", ErrNotificationFailed, err))
	}
}

func (s *ReminderService) sendReminder(ctx context.Context, rem domain.Reminder) error {
	appt, err := s.Store.Appointments().GetAppointmentByID(ctx, rem.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment: %w", err)
	}

	patient, err := s.Store.Users().GetUserByID(ctx, appt.UsuarioID)
	if err != nil {
		return fmt.Errorf("load patient: %w", err)
	}

	specialistName := ""
	if appt.HasSpecialist() {
		sp, err := s.Store.Users().GetUserByID(ctx, appt.EspecialistaID)
		switch {
		case err == nil:
			specialistName = sp.DisplayName()
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("load specialist: %w", err)
		}
	}

	body, err := render("reminder", appointmentMail{
		Nombre:       patient.Nombre,
		Fecha:        appt.Fecha,
		Hora:         appt.Hora,
		Especialista: specialistName,
	})
	if err != nil {
		return err
	}

	return s.Notifier.Send(ctx, notify.NewMessage(patient.Email, subjectReminder, body))
}
