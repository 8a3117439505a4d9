package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// SlotStatus доступность слота для записи
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotFull      SlotStatus = "full"
	SlotClosed    SlotStatus = "closed"
)

// Slot пара (дата, час)
type Slot struct {
	Date time.Time
	Time types.TimeString
}

// Key строковый ключ слота "2025-06-09T09:00"
func (s Slot) Key() string {
	return fmt.Sprintf("%sT%s", s.Date.Format(DateFormat), s.Time)
}

// SlotAvailability состояние слота на дату
type SlotAvailability struct {
	Time       types.TimeString
	Status     SlotStatus
	Booked     int // активные записи
	Remaining  int // свободные места (не меньше 0)
	Overbooked bool
}

// ComputeSlotStatus вычисляет статус слота по правилам календаря и занятости
func ComputeSlotStatus(bookable bool, booked int) SlotStatus {
	switch {
	case !bookable:
		return SlotClosed
	case booked >= MaxSlotCapacity:
		return SlotFull
	default:
		return SlotAvailable
	}
}

// Remaining количество свободных мест при booked активных записях
func Remaining(booked int) int {
	if booked >= MaxSlotCapacity {
		return 0
	}
	return MaxSlotCapacity - booked
}
