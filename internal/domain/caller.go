package domain

// Role роль вызывающего
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleClient    Role = "client"
	RoleAdmin     Role = "admin"
)

// Caller идентификация вызывающего в рамках одного запроса
type Caller struct {
	UserID string
	Email  string
	Role   Role
}

// Anonymous вызывающий без аутентификации
func Anonymous() Caller {
	return Caller{Role: RoleAnonymous}
}

// IsAdmin true для администратора
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsAnonymous true, если вызывающий не аутентифицирован
func (c Caller) IsAnonymous() bool {
	return c.Role == RoleAnonymous || c.Role == ""
}

// IsClient true для аутентифицированного клиента с email
func (c Caller) IsClient() bool {
	return c.Role == RoleClient && c.Email != ""
}
