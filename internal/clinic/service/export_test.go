package service

import (
	"context"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
)

func Enrich(s *AppointmentService, ctx context.Context, appts []domain.Appointment) ([]domain.AppointmentDetail, error) {
	return s.enrich(ctx, appts)
}

func Render(name string, data any) (string, error) { return render(name, data) }
