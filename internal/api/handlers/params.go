package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AppointmentIDVar имя переменной маршрута с ID записи
const AppointmentIDVar = "appointmentId"

// ParseAppointmentID извлекает ID записи из URL
func ParseAppointmentID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)[AppointmentIDVar]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid appointment id %q: %w", raw, err)
	}
	return id, nil
}
