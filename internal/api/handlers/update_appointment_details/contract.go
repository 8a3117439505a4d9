package update_appointment_details

import (
	"context"

	updateDetails "github.com/m04kA/SMC-TireBooking/internal/usecase/update_appointment_details"
)

type UpdateDetailsUseCase interface {
	Execute(ctx context.Context, req *updateDetails.Request) (*updateDetails.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
