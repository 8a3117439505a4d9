package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Caller      domain.Caller    // Кто записывает
	ClientName  string           // Имя клиента
	ClientEmail string           // Email клиента (ключ владельца записи)
	CarBrand    string           // Марка автомобиля
	Date        time.Time        // Календарная дата
	Time        types.TimeString // Начало слота, например "09:00"
}

// Response модель созданной записи
type Response struct {
	ID          uuid.UUID
	ClientName  string
	ClientEmail string
	CarBrand    string
	Date        time.Time
	Time        types.TimeString
	Status      domain.AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
