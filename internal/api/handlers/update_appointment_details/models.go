package update_appointment_details

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
	updateDetails "github.com/m04kA/SMC-TireBooking/internal/usecase/update_appointment_details"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// UpdateDetailsRequest HTTP request model, отсутствующие поля не меняются
type UpdateDetailsRequest struct {
	ClientName  *string `json:"clientName,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	CarBrand    *string `json:"carBrand,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateDetailsRequest) ToUseCaseRequest(caller domain.Caller, id uuid.UUID) (*updateDetails.Request, string, error) {
	changes := domain.AppointmentChanges{
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		CarBrand:    r.CarBrand,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return nil, handlers.MsgInvalidDate, err
		}
		changes.Date = &date
	}

	if r.Time != nil {
		slotTime, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, handlers.MsgInvalidTime, fmt.Errorf("time %q: %w", *r.Time, err)
		}
		changes.Time = &slotTime
	}

	return &updateDetails.Request{
		Caller:  caller,
		ID:      id,
		Changes: changes,
	}, "", nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateDetails.Response) *models.AppointmentResponse {
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
