package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// Store хранилище записей в памяти процесса
// Используется при database.driver = "memory" и в тестах сервисов.
// Возвращает те же ошибки, что и SQL репозиторий.
type Store struct {
	txMu  sync.Mutex // одна транзакция TxManager или одна запись вне транзакции
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Appointment
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		items: make(map[uuid.UUID]domain.Appointment),
		now:   time.Now,
	}
}

// LockSlot ничего не делает: транзакции TxManager уже сериализованы
func (s *Store) LockSlot(ctx context.Context, slot domain.Slot) error {
	return ctx.Err()
}

// Create добавляет запись, если в слоте меньше capacity активных записей
func (s *Store) Create(ctx context.Context, appt *domain.Appointment, capacity int) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := s.beginWrite(ctx)
	defer done()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countActive(appt.Slot(), nil) >= capacity {
		return nil, appointment.ErrSlotNotAvailable
	}

	s.remember(ctx, appt.ID)
	created := *appt
	created.Date = domain.NormalizeDate(appt.Date)
	created.CreatedAt = s.now().UTC()
	created.UpdatedAt = created.CreatedAt
	s.items[created.ID] = created

	return &created, nil
}

// GetByID получает запись по ID
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.items[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &appt, nil
}

// List получает записи по фильтру в порядке дата, время, создание
func (s *Store) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, appt := range s.items {
		if !matches(appt, filter) {
			continue
		}
		appt := appt
		result = append(result, &appt)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time.IsBefore(b.Time)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return result, nil
}

// CountActiveInSlot считает активные записи в слоте, исключая excludeID
func (s *Store) CountActiveInSlot(ctx context.Context, slot domain.Slot, excludeID *uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countActive(slot, excludeID), nil
}

// CountActiveByDate считает активные записи на дату по слотам
func (s *Store) CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[types.TimeString]int)
	for _, appt := range s.items {
		if appt.IsActive() && domain.SameDate(appt.Date, date) {
			counts[appt.Time]++
		}
	}
	return counts, nil
}

// UpdateStatus меняет статус, если текущий статус равен from
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := s.beginWrite(ctx)
	defer done()

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if appt.Status != from {
		return nil, appointment.ErrStatusConflict
	}

	s.remember(ctx, id)
	appt.Status = to
	appt.UpdatedAt = s.now().UTC()
	s.items[id] = appt

	return &appt, nil
}

// UpdateDetails перезаписывает данные записи в статусе pending
func (s *Store) UpdateDetails(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := s.beginWrite(ctx)
	defer done()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[appt.ID]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if !current.IsPending() {
		return nil, appointment.ErrStatusConflict
	}

	s.remember(ctx, appt.ID)
	current.ClientName = appt.ClientName
	current.ClientEmail = appt.ClientEmail
	current.CarBrand = appt.CarBrand
	current.Date = domain.NormalizeDate(appt.Date)
	current.Time = appt.Time
	current.UpdatedAt = s.now().UTC()
	s.items[appt.ID] = current

	return &current, nil
}

// Delete удаляет запись
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := s.beginWrite(ctx)
	defer done()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	s.remember(ctx, id)
	delete(s.items, id)
	return nil
}

func (s *Store) countActive(slot domain.Slot, excludeID *uuid.UUID) int {
	count := 0
	for id, appt := range s.items {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if appt.IsActive() && appt.Time == slot.Time && domain.SameDate(appt.Date, slot.Date) {
			count++
		}
	}
	return count
}

func matches(appt domain.Appointment, filter domain.AppointmentFilter) bool {
	if filter.ClientEmail != nil && !appt.BelongsTo(*filter.ClientEmail) {
		return false
	}
	if filter.Date != nil && !domain.SameDate(appt.Date, *filter.Date) {
		return false
	}
	if filter.Time != nil && appt.Time != *filter.Time {
		return false
	}
	if filter.Status != nil {
		return appt.Status == *filter.Status
	}
	if filter.OnlyActive && !appt.IsActive() {
		return false
	}
	return true
}
