package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/policy"
)

type contextKey string

const callerKey contextKey = "caller"

const msgInvalidToken = "недействительный токен авторизации"

// ErrInvalidToken возвращается, если токен не прошел проверку
var ErrInvalidToken = errors.New("middleware: invalid token")

// TokenClaims claims токена провайдера идентификации
type TokenClaims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// UserMetadata пользовательские метаданные токена
type UserMetadata struct {
	Role string `json:"role"`
}

// JWTConfig параметры проверки токена
type JWTConfig struct {
	SigningKey []byte
	Issuer     string // проверяется, если не пустой
	Audience   string // проверяется, если не пустой
}

// Identity middleware определения вызывающего
// Без заголовка Authorization запрос выполняется от анонимного вызывающего,
// с некорректным токеном отклоняется с 401.
type Identity struct {
	cfg      JWTConfig
	resolver RoleResolver
	logger   Logger
}

// NewIdentity создает middleware определения вызывающего
func NewIdentity(cfg JWTConfig, resolver RoleResolver, logger Logger) *Identity {
	return &Identity{cfg: cfg, resolver: resolver, logger: logger}
}

// Middleware кладет domain.Caller в контекст запроса
func (m *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), domain.Anonymous())))
			return
		}

		identity, err := m.parse(authHeader)
		if err != nil {
			m.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		caller := m.resolver.Resolve(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// parse проверяет подпись и claims токена
func (m *Identity) parse(authHeader string) (*policy.Identity, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, errors.Join(ErrInvalidToken, errors.New("invalid authorization format"))
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	if m.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.cfg.Audience))
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (interface{}, error) {
		return m.cfg.SigningKey, nil
	}, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Email == "" && claims.Subject == "" {
		return nil, errors.Join(ErrInvalidToken, errors.New("token has neither subject nor email"))
	}

	return &policy.Identity{
		UserID:       claims.Subject,
		Email:        claims.Email,
		MetadataRole: claims.UserMetadata.Role,
	}, nil
}

// RequireIdentity отклоняет анонимные запросы с 401
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerFromContext(r.Context()).IsAnonymous() {
			handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithCaller кладет вызывающего в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext возвращает вызывающего; без Identity middleware - анонимный
func CallerFromContext(ctx context.Context) domain.Caller {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	if !ok {
		return domain.Anonymous()
	}
	return caller
}
