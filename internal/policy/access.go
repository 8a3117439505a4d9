package policy

import (
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/ptr"
)

// Action действие над конкретной записью
type Action string

const (
	ActionView     Action = "view"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionEdit     Action = "edit"
	ActionPurge    Action = "purge"
)

// VisibleFilter фильтр записей, которые может видеть вызывающий
// ok == false означает пустое множество: запрос в хранилище не нужен.
func VisibleFilter(caller domain.Caller) (domain.AppointmentFilter, bool) {
	switch {
	case caller.IsAdmin():
		return domain.AppointmentFilter{}, true
	case caller.IsClient():
		return domain.AppointmentFilter{ClientEmail: ptr.Ptr(domain.NormalizeEmail(caller.Email))}, true
	default:
		return domain.AppointmentFilter{}, false
	}
}

// CanMutate проверяет роль и владение записью
// Допустимость перехода статуса проверяется отдельно, см. AuthorizeTransition.
func CanMutate(caller domain.Caller, appt *domain.Appointment, action Action) bool {
	if caller.IsAdmin() {
		return true
	}
	if !caller.IsClient() || !appt.BelongsTo(caller.Email) {
		return false
	}
	switch action {
	case ActionView, ActionCancel:
		return true
	default:
		return false
	}
}

// ActionForStatus действие, которым запись переводится в статус target
func ActionForStatus(target domain.AppointmentStatus) (Action, error) {
	switch target {
	case domain.StatusCompleted:
		return ActionComplete, nil
	case domain.StatusCancelled:
		return ActionCancel, nil
	default:
		return "", fmt.Errorf("%w: status %q cannot be set explicitly", domain.ErrInvalidTransition, target)
	}
}

// AuthorizeTransition проверяет смену статуса
// Тому, кто видит запись, выход из терминального статуса всегда дает domain.ErrInvalidTransition;
// иначе сначала проверяются права (domain.ErrForbidden), затем жизненный цикл.
func AuthorizeTransition(caller domain.Caller, appt *domain.Appointment, target domain.AppointmentStatus) error {
	if !CanMutate(caller, appt, ActionView) {
		return fmt.Errorf("%w: appointment %s", domain.ErrForbidden, appt.ID)
	}

	if appt.Status.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appt.Status, target)
	}

	action, err := ActionForStatus(target)
	if err != nil {
		return err
	}

	if !CanMutate(caller, appt, action) {
		return fmt.Errorf("%w: %s appointment %s", domain.ErrForbidden, action, appt.ID)
	}

	if !appt.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appt.Status, target)
	}

	return nil
}

// AuthorizeEdit проверяет правку полей записи: только администратор и только pending
func AuthorizeEdit(caller domain.Caller, appt *domain.Appointment) error {
	if !CanMutate(caller, appt, ActionEdit) {
		return fmt.Errorf("%w: edit appointment %s", domain.ErrForbidden, appt.ID)
	}
	if !appt.IsPending() {
		return fmt.Errorf("%w: appointment %s is %s", domain.ErrInvalidTransition, appt.ID, appt.Status)
	}
	return nil
}
