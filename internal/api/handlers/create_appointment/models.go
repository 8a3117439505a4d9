package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-TireBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	CarBrand    string `json:"carBrand"`
	Date        string `json:"date"` // "2025-06-09"
	Time        string `json:"time"` // "09:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Возвращает сообщение для клиента вместе с ошибкой разбора.
func (r *CreateAppointmentRequest) ToUseCaseRequest(caller domain.Caller) (*createAppointment.Request, string, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, handlers.MsgInvalidDate, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, handlers.MsgInvalidTime, fmt.Errorf("time %q: %w", r.Time, err)
	}

	return &createAppointment.Request{
		Caller:      caller,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		CarBrand:    r.CarBrand,
		Date:        date,
		Time:        slotTime,
	}, "", nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *models.AppointmentResponse {
	return &models.AppointmentResponse{
		ID:          resp.ID.String(),
		ClientName:  resp.ClientName,
		ClientEmail: resp.ClientEmail,
		CarBrand:    resp.CarBrand,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
