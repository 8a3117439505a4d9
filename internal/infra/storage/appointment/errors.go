package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotNotAvailable возвращается, когда условная вставка не прошла: слот заполнен
	ErrSlotNotAvailable = errors.New("appointment.repository: slot not available")

	// ErrStatusConflict возвращается, когда статус записи изменился до обновления
	ErrStatusConflict = errors.New("appointment.repository: status changed concurrently")

	// ErrTransaction возвращается, когда операция требует активной транзакции
	ErrTransaction = errors.New("appointment.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
