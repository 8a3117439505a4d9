package get_availability

import (
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	Date time.Time // Календарная дата
}

// Response доступность всех слотов рабочего дня
type Response struct {
	Date     time.Time // Дата запроса (полдень UTC)
	Capacity int       // Максимум записей на слот
	Slots    []Slot    // Слоты в порядке времени
}

// Slot состояние одного слота
type Slot struct {
	Time       types.TimeString  // Начало слота, например "09:00"
	Status     domain.SlotStatus // available | full | closed
	Booked     int               // Активные записи
	Remaining  int               // Свободные места
	Overbooked bool              // Записей больше лимита
}
