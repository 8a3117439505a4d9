package update_appointment_details

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// Request модель запроса на изменение записи
type Request struct {
	Caller  domain.Caller
	ID      uuid.UUID
	Changes domain.AppointmentChanges // nil-поля не меняются
}

// Response модель измененной записи
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
