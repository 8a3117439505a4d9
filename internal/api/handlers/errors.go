package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// Сообщения об ошибках таксономии планировщика
const (
	MsgValidation        = "некорректные данные запроса"
	MsgSlotClosed        = "слот вне рабочего времени"
	MsgSlotFull          = "в выбранном слоте нет свободных мест"
	MsgForbidden         = "доступ запрещен"
	MsgNotFound          = "запись не найдена"
	MsgInvalidTransition = "смена статуса недопустима"
	MsgStoreUnavailable  = "хранилище временно недоступно, повторите попытку позже"
	MsgUnauthorized      = "требуется авторизация"
	MsgInvalidID         = "некорректный ID записи"
	MsgInvalidBody       = "некорректное тело запроса"
	MsgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	MsgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
)

// StatusForError HTTP статус для ошибки доменной таксономии
// Возвращает 500 для ошибок вне таксономии.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, MsgValidation
	case errors.Is(err, domain.ErrSlotClosed):
		return http.StatusUnprocessableEntity, MsgSlotClosed
	case errors.Is(err, domain.ErrSlotFull):
		return http.StatusConflict, MsgSlotFull
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, MsgForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, MsgInvalidTransition
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, MsgStoreUnavailable
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// RespondDomainError отправляет ошибку таксономии с подходящим статусом
// Для ValidationError в сообщение добавляется причина: клиент может ее исправить.
func RespondDomainError(w http.ResponseWriter, err error) int {
	status, message := StatusForError(err)
	if status == http.StatusBadRequest {
		message = message + ": " + err.Error()
	}
	RespondError(w, status, message)
	return status
}
