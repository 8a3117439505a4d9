package authservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь неизвестен сервису авторизации
	ErrUserNotFound = errors.New("authservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
