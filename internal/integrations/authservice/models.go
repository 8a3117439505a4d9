package authservice

// CheckRoleRequest тело запроса check_user_role
type CheckRoleRequest struct {
	UserID string `json:"user_id"`
}

// ErrorResponse модель ошибки от сервиса авторизации
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
