package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/notify"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/pkg/idx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

// ReminderScheduler arranges a future reminder for a booked appointment.
type ReminderScheduler interface {
	Schedule(ctx context.Context, appt domain.Appointment) error
}

type AppointmentService struct {
	Store     store.Store
	Notifier  notify.Notifier
	Reminders ReminderScheduler
}

// CreateAppointment books an appointment once both the patient and the
// specialist exist. A failure to schedule the reminder is returned to the
// caller even though the appointment is already stored; a failure to send the
// confirmation email is only logged.
func (s *AppointmentService) CreateAppointment(
	ctx context.Context,
	userID string,
	specialistID string,
	fecha string,
	hora string,
) (domain.Appointment, error) {
	log := slogx.FromContext(ctx)

	fecha, hora, err := canonicalSchedule(fecha, hora)
	if err != nil {
		return domain.Appointment{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, &NotFoundError{Entity: EntityUser, ID: userID}
		}
		return domain.Appointment{}, fmt.Errorf("lookup user: %w", err)
	}

	if _, err := s.Store.Users().GetSpecialistByID(ctx, specialistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Appointment{}, &NotFoundError{Entity: EntitySpecialist, ID: specialistID}
		}
		return domain.Appointment{}, fmt.Errorf("lookup specialist: %w", err)
	}

	appt := domain.Appointment{
		ID:             idx.New().String(),
		UsuarioID:      user.ID,
		EspecialistaID: specialistID,
		Fecha:          fecha,
		Hora:           hora,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Store.Appointments().CreateAppointment(ctx, appt); err != nil {
		log.Error("failed to create appointment", slog.Any("error", err))
		return domain.Appointment{}, err
	}

	ctx = slogx.With(ctx, slog.String("appointment_id", appt.ID))
	log = slogx.FromContext(ctx)

	log.Info("appointment created",
		slog.String("usuario_id", appt.UsuarioID),
		slog.String("especialista_id", appt.EspecialistaID),
	)

	if s.Reminders != nil {
		if err := s.Reminders.Schedule(ctx, appt); err != nil {
			log.Error("failed to schedule reminder", slog.Any("error", err))
			return domain.Appointment{}, fmt.Errorf("schedule reminder for %s: %w", appt.ID, err)
		}
	}

	s.sendConfirmation(ctx, user, appt)

	return appt, nil
}

// secondsLayout is accepted from clients that send seconds; they are dropped.
const secondsLayout = "15:04:05"

// canonicalSchedule validates fecha and hora and returns them as YYYY-MM-DD
// and HH:MM.
func canonicalSchedule(fecha, hora string) (string, string, error) {
	fecha, hora = strings.TrimSpace(fecha), strings.TrimSpace(hora)

	day, err := time.Parse(domain.DateLayout, fecha)
	if err != nil {
		return "", "", invalid("fecha", "Fecha inválida, se espera el formato YYYY-MM-DD: "+fecha)
	}

	clock, err := time.Parse(domain.TimeLayout, hora)
	if err != nil {
		clock, err = time.Parse(secondsLayout, hora)
	}
	if err != nil {
		return "", "", invalid("hora", "Hora inválida, se espera el formato HH:MM: "+hora)
	}

	return day.Format(domain.DateLayout), clock.Format(domain.TimeLayout), nil
}

// sendConfirmation never fails the booking. ctx carries the appointment id
// for logging.
func (s *AppointmentService) sendConfirmation(ctx context.Context, user domain.User, appt domain.Appointment) {
	log := slogx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("error sending appointment confirmation", slog.Any("panic", r))
		}
	}()

	if err := s.confirm(ctx, user, appt); err != nil {
		log.Error("error sending appointment confirmation",
			slog.Any("error", fmt.Errorf("%w: %w", ErrNotificationFailed, err)),
		)
	}
}

func (s *AppointmentService) confirm(ctx context.Context, user domain.User, appt domain.Appointment) error {
	if s.Notifier == nil {
		return nil
	}

	specialist, err := s.Store.Users().GetUserByID(ctx, appt.EspecialistaID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("resolve specialist name: %w", err)
	}
	specialistName := ""
	if err == nil {
		specialistName = specialist.DisplayName()
	}

	body, err := render("confirmation", appointmentMail{
		Nombre:       user.Nombre,
		Fecha:        appt.Fecha,
		Hora:         appt.Hora,
		Especialista: specialistName,
	})
	if err != nil {
		return err
	}

	return s.Notifier.Send(ctx, notify.NewMessage(user.Email, subjectConfirmation, body))
}

// GetAppointment returns one appointment.
func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	appt, err := s.Store.Appointments().GetAppointmentByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Appointment{}, &NotFoundError{Entity: EntityAppointment, ID: id}
	}
	return appt, err
}

// ListAppointments returns every appointment with display names resolved.
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]domain.AppointmentDetail, error) {
	appts, err := s.Store.Appointments().ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, appts)
}

// ListAppointmentsByUser returns the patient's appointments as stored.
func (s *AppointmentService) ListAppointmentsByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.Store.Appointments().ListAppointmentsByUser(ctx, userID)
}

// ListAppointmentsBySpecialist returns the specialist's appointments with
// display names resolved.
func (s *AppointmentService) ListAppointmentsBySpecialist(ctx context.Context, specialistID string) ([]domain.AppointmentDetail, error) {
	appts, err := s.Store.Appointments().ListAppointmentsBySpecialist(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, appts)
}

// enrich resolves names through a per-call cache. Missing users resolve to
// empty name parts.
func (s *AppointmentService) enrich(ctx context.Context, appts []domain.Appointment) ([]domain.AppointmentDetail, error) {
	names := make(map[string]string)
	nameOf := func(id string) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}
		var u domain.User
		if id != "" {
			var err error
			u, err = s.Store.Users().GetUserByID(ctx, id)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return "", err
			}
		}
		name := u.DisplayName()
		names[id] = name
		return name, nil
	}

	out := make([]domain.AppointmentDetail, 0, len(appts))
	for _, a := range appts {
		patient, err := nameOf(a.UsuarioID)
		if err != nil {
			return nil, err
		}
		specialist, err := nameOf(a.EspecialistaID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.AppointmentDetail{
			Appointment:    a,
			PatientName:    patient,
			SpecialistName: specialist,
			Estado:         domain.StatusActive,
		})
	}
	return out, nil
}
