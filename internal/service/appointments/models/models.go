package models

import (
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Caller domain.Caller
	Date   *time.Time // Фильтр по дате (опционально)
	Status *string    // Фильтр по статусу (опционально)
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Caller domain.Caller
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	CarBrand    string `json:"carBrand"`
	Date        string `json:"date"` // "2025-06-09"
	Time        string `json:"time"` // "09:00"
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          appt.ID.String(),
		ClientName:  appt.ClientName,
		ClientEmail: appt.ClientEmail,
		CarBrand:    appt.CarBrand,
		Date:        appt.Date.Format(domain.DateFormat),
		Time:        appt.Time.String(),
		Status:      string(appt.Status),
		CreatedAt:   formatTimestamp(appt.CreatedAt),
		UpdatedAt:   formatTimestamp(appt.UpdatedAt),
	}
}

// FromDomainAppointmentList конвертирует список доменных записей в ответ
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	items := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		items = append(items, *FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
