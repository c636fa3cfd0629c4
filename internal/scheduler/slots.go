// Package scheduler holds the slot and queue arithmetic for appointment
// booking. It is pure: persistence lives in the repository layer.
package scheduler

import "localgov-backend/internal/models"

// CandidateSlots is the fixed list of bookable times. Counters open 09:00,
// close 16:30, with the 11:30-14:00 lunch break in between (the 11:30 slot
// itself is still served).
var CandidateSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// SlotMinutes is the assumed handling time per queue position.
const SlotMinutes = 30

// HasWindow reports whether the service is open at all on the given weekday
// (e.g. "Monday"). Services with no configured windows are closed every day.
func HasWindow(windows []models.ServiceWindow, weekday string) bool {
	for _, w := range windows {
		if w.Day == weekday {
			return true
		}
	}
	return false
}

// AvailableSlots returns the candidate slots minus the already-booked ones
// for a service/date, or nothing when the weekday has no configured window.
// The start/end/duration fields of the window are deliberately not used to
// generate candidates; the list above is the product-approved set.
func AvailableSlots(windows []models.ServiceWindow, weekday string, booked []string) []string {
	free := []string{}
	if !HasWindow(windows, weekday) {
		return free
	}

	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	for _, slot := range CandidateSlots {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free
}

// IsCandidate reports whether a requested time slot is one we serve at all.
func IsCandidate(slot string) bool {
	for _, s := range CandidateSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// WaitEstimate converts a queue number into an estimated wait in minutes.
// Position 1 waits nothing, each position behind adds SlotMinutes.
func WaitEstimate(queueNumber int) int {
	if queueNumber <= 1 {
		return 0
	}
	return (queueNumber - 1) * SlotMinutes
}
