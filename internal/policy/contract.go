package policy

import "context"

// RoleLookup авторитетный источник роли пользователя
type RoleLookup interface {
	CheckIsAdmin(ctx context.Context, userID string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
