package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// AppointmentStatus статус записи на шиномонтаж
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseStatus конвертирует строку в статус
func ParseStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// IsTerminal true для конечных статусов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment запись клиента на определенный слот
type Appointment struct {
	ID          uuid.UUID
	ClientName  string
	ClientEmail string
	CarBrand    string
	Date        time.Time // календарная дата, см. NormalizeDate
	Time        types.TimeString
	Status      AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive true, если запись занимает место в слоте
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsPending true, пока запись не завершена и не отменена
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// BelongsTo true, если запись принадлежит клиенту с email
func (a *Appointment) BelongsTo(email string) bool {
	return email != "" && NormalizeEmail(a.ClientEmail) == NormalizeEmail(email)
}

// Slot слот записи
func (a *Appointment) Slot() Slot {
	return Slot{Date: a.Date, Time: a.Time}
}

// CanTransitionTo проверяет переход статуса без учета прав
// pending -> completed | cancelled; из конечных статусов переходов нет
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// NormalizeEmail приводит email к виду, используемому для сравнения владельца
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AppointmentFilter фильтр выборки записей
// Пустые поля не ограничивают выборку
type AppointmentFilter struct {
	ClientEmail *string            // только записи клиента (сравнение без учета регистра)
	Date        *time.Time         // конкретная дата
	Time        *types.TimeString  // конкретный слот в пределах даты
	Status      *AppointmentStatus // конкретный статус
	OnlyActive  bool               // исключить отмененные
}

// AppointmentChanges изменяемые администратором поля записи
// nil означает "не менять"
type AppointmentChanges struct {
	ClientName  *string
	ClientEmail *string
	CarBrand    *string
	Date        *time.Time
	Time        *types.TimeString
}

// IsEmpty true, если ни одно поле не меняется
func (c AppointmentChanges) IsEmpty() bool {
	return c.ClientName == nil && c.ClientEmail == nil && c.CarBrand == nil && c.Date == nil && c.Time == nil
}

// MovesSlot true, если изменение переносит запись в другой слот
func (c AppointmentChanges) MovesSlot(current *Appointment) bool {
	if c.Date != nil && !SameDate(*c.Date, current.Date) {
		return true
	}
	return c.Time != nil && *c.Time != current.Time
}

// Apply применяет изменения к копии записи
func (c AppointmentChanges) Apply(a Appointment) Appointment {
	if c.ClientName != nil {
		a.ClientName = *c.ClientName
	}
	if c.ClientEmail != nil {
		a.ClientEmail = *c.ClientEmail
	}
	if c.CarBrand != nil {
		a.CarBrand = *c.CarBrand
	}
	if c.Date != nil {
		a.Date = NormalizeDate(*c.Date)
	}
	if c.Time != nil {
		a.Time = *c.Time
	}
	return a
}
