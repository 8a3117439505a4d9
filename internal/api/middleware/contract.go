package middleware

import (
	"context"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/policy"
)

// RoleResolver определяет вызывающего по данным токена
type RoleResolver interface {
	Resolve(ctx context.Context, identity *policy.Identity) domain.Caller
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
