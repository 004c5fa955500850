package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями на приём
// Создание записи живёт в отдельном usecase с транзакционной проверкой
// вместимости; здесь - чтение, смена статуса и удаление
type Service struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByCaseID получает последнюю запись по case id
// Повторные пациенты переиспользуют идентификатор, поэтому по одному
// case id может существовать несколько записей - возвращается свежайшая
func (s *Service) GetByCaseID(ctx context.Context, caseID string) (*models.AppointmentResponse, error) {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, fmt.Errorf("%w: caseId is required", ErrInvalidInput)
	}

	s.logger.Info("GetByCaseID: fetching latest appointment for case=%s", caseID)

	appt, err := s.appointmentRepo.GetLatestByCaseID(ctx, caseID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCaseID: no appointments for case=%s", caseID)
			return nil, ErrCaseNotFound
		}
		s.logger.Error("GetByCaseID: repository error for case=%s: %v", caseID, err)
		return nil, fmt.Errorf("%w: GetByCaseID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByDate получает все записи на дату
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.AppointmentListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.NormalizeDate(req.Date)
	s.logger.Info("ListByDate: fetching appointments for date=%s by user=%d",
		date.Format(domain.DateFormat), req.UserID)

	appointments, err := s.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d appointments for date=%s",
		len(appointments), date.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus обновляет статус записи
// Статус мутируется только из scheduled: запись с финальным статусом
// остаётся как есть
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if appt.Status == newStatus {
		// Идемпотентный повтор - ничего не меняем
		return nil
	}

	if !appt.CanChangeStatus() {
		s.logger.Warn("UpdateStatus: appointment id=%d status=%s is final", appointmentID, appt.Status)
		return ErrStatusLocked
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)

	// Статус не влияет на вместимость, но наблюдатели даты получают
	// сигнал при любой мутации записи
	s.notifier.Notify(ctx, events.TableAppointments, domain.NormalizeDate(appt.AppointmentDate))

	return nil
}

// Delete удаляет запись и освобождает место в слоте
func (s *Service) Delete(ctx context.Context, appointmentID int64, req *models.DeleteAppointmentRequest) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found during delete", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", appointmentID)

	// Слот освободился - наблюдатели даты должны перечитать доступность
	s.notifier.Notify(ctx, events.TableAppointments, domain.NormalizeDate(appt.AppointmentDate))

	return nil
}
