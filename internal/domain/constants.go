package domain

// Правила расписания по умолчанию
const (
	DefaultOpeningHour = 8  // первый слот 08:00
	DefaultClosingHour = 16 // последний слот 15:00
	MaxSlotCapacity    = 3  // максимум активных записей на слот
)

// Ограничения входных данных
const (
	MaxClientNameLength  = 200
	MaxClientEmailLength = 320
	MaxCarBrandLength    = 100
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие место в слоте
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusCompleted,
}
