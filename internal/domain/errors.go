package domain

import "errors"

// Таксономия ошибок планировщика
// Все слои оборачивают эти ошибки через fmt.Errorf("%w: ...")
var (
	// ErrValidation некорректные или отсутствующие входные данные
	ErrValidation = errors.New("validation error")

	// ErrSlotClosed дата/время вне рабочих дней или часов
	ErrSlotClosed = errors.New("slot is closed")

	// ErrSlotFull в слоте не осталось мест
	ErrSlotFull = errors.New("slot is full")

	// ErrForbidden у вызывающего нет прав на операцию
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidTransition смена статуса недопустима из текущего состояния
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStoreUnavailable ошибка хранилища; операция не повторяется автоматически
	ErrStoreUnavailable = errors.New("store unavailable")
)
