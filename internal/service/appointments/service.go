package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TireBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-TireBooking/internal/policy"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
)

// Service сервис просмотра записей и смены их статуса
type Service struct {
	appointmentRepo AppointmentRepository
	metrics         MetricsRecorder
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// List получает записи, видимые вызывающему
// Администратор видит все записи, клиент только свои, анонимный посетитель ничего.
// Сортировка: дата, время.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for caller=%s (%s)", req.Caller.Email, req.Caller.Role)

	filter, ok := policy.VisibleFilter(req.Caller)
	if !ok {
		s.logger.Info("List: caller role=%s sees no appointments", req.Caller.Role)
		return models.FromDomainAppointmentList(nil), nil
	}

	if req.Date != nil {
		filter.Date = req.Date
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	appts, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// GetByID получает запись по ID
// Клиент может видеть только свою запись, администратор любую
func (s *Service) GetByID(ctx context.Context, caller domain.Caller, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for caller=%s", id, caller.Email)

	if caller.IsAnonymous() {
		s.logger.Warn("GetByID: anonymous caller requested appointment id=%s", id)
		return nil, ErrAccessDenied
	}

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutate(caller, appt, policy.ActionView) {
		s.logger.Warn("GetByID: access denied for caller=%s to appointment id=%s", caller.Email, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// UpdateStatus меняет статус записи
// pending -> completed только администратор; pending -> cancelled администратор или владелец.
// Статус меняется через compare-and-set: параллельное изменение дает ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by caller=%s (%s)",
		id, req.Status, req.Caller.Email, req.Caller.Role)

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Caller.IsAnonymous() {
		s.logger.Warn("UpdateStatus: anonymous caller tried to update appointment id=%s", id)
		return nil, ErrAccessDenied
	}

	appt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if err := policy.AuthorizeTransition(req.Caller, appt, target); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.logger.Warn("UpdateStatus: access denied for caller=%s to appointment id=%s", req.Caller.Email, id)
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		s.logger.Warn("UpdateStatus: appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, appt.Status, target)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%s disappeared during update", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("UpdateStatus: appointment id=%s changed concurrently", id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrStoreUnavailable, err)
		}
	}

	s.metrics.StatusChanged(string(appt.Status), string(target))
	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, target)
	return models.FromDomainAppointment(updated), nil
}

// Purge физически удаляет запись
// Только администратор; обычная отмена выполняется через UpdateStatus.
func (s *Service) Purge(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	s.logger.Info("Purge: deleting appointment id=%s by caller=%s (%s)", id, caller.Email, caller.Role)

	if !caller.IsAdmin() {
		s.logger.Warn("Purge: access denied for caller=%s", caller.Email)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Purge: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Purge: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Purge - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Purge: successfully deleted appointment id=%s", id)
	return nil
}

// Вспомогательные методы

// getAppointment получает запись и переводит ошибки репозитория в ошибки сервиса
func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return appt, nil
}
