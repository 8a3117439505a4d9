package policy

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// MetadataAdminRole значение роли администратора в метаданных токена
const MetadataAdminRole = "admin"

// Identity аутентифицированный пользователь из токена
type Identity struct {
	UserID       string
	Email        string
	MetadataRole string // роль из user_metadata, может быть пустой
}

// RoleResolver определяет роль вызывающего
// Порядок: авторитетный lookup, затем роль из метаданных токена.
// Каждое обращение к метаданным логируется с причиной.
type RoleResolver struct {
	lookup RoleLookup
	logger Logger
}

// NewRoleResolver создает resolver; lookup может быть nil, тогда роль берется из метаданных
func NewRoleResolver(lookup RoleLookup, logger Logger) *RoleResolver {
	return &RoleResolver{lookup: lookup, logger: logger}
}

// Resolve возвращает вызывающего для identity; nil означает анонимного
func (r *RoleResolver) Resolve(ctx context.Context, identity *Identity) domain.Caller {
	if identity == nil {
		return domain.Anonymous()
	}

	caller := domain.Caller{
		UserID: identity.UserID,
		Email:  domain.NormalizeEmail(identity.Email),
		Role:   domain.RoleClient,
	}

	if r.lookup != nil && identity.UserID != "" {
		isAdmin, err := r.lookup.CheckIsAdmin(ctx, identity.UserID)
		if err == nil {
			if isAdmin {
				caller.Role = domain.RoleAdmin
			}
			return caller
		}
		r.logger.Warn("ResolveRole: role lookup failed for user=%s, falling back to metadata role=%q: %v",
			identity.UserID, identity.MetadataRole, err)
	} else if r.lookup == nil {
		r.logger.Warn("ResolveRole: role lookup not configured, using metadata role=%q for user=%s",
			identity.MetadataRole, identity.UserID)
	} else {
		r.logger.Warn("ResolveRole: token has no subject, using metadata role=%q for email=%s",
			identity.MetadataRole, caller.Email)
	}

	if strings.EqualFold(strings.TrimSpace(identity.MetadataRole), MetadataAdminRole) {
		caller.Role = domain.RoleAdmin
	}
	return caller
}
