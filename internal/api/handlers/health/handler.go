package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger хранилище, доступность которого проверяется
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	pinger Pinger
	logger Logger
}

// NewHandler pinger может быть nil (хранилище в памяти)
func NewHandler(pinger Pinger, logger Logger) *Handler {
	return &Handler{
		pinger: pinger,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Store ping failed: %v", err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
			return
		}
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
