// Package detect decides whether a structured vacancy report differs enough
// from the previous run to be worth a notification.
package detect

import "github.com/amishk599/roomwatch/internal/model"

// Reason names the first difference found between two reports.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoPrevious    Reason = "no previous state"
	ReasonStatusChanged Reason = "vacancy status changed"
	ReasonCountChanged  Reason = "vacancy count changed"
	ReasonRoomsChanged  Reason = "room list changed"
)

// Compare reports why current differs from previous, or ReasonNone. Room
// order and room details are ignored; only the set of room identifiers counts.
func Compare(current model.VacancyReport, previous *model.PersistedState) Reason {
	if previous == nil {
		return ReasonNoPrevious
	}
	if current.HasVacancies != previous.HasVacancies {
		return ReasonStatusChanged
	}
	if current.VacancyCount != previous.VacancyCount {
		return ReasonCountChanged
	}
	if !sameRoomSet(current.Rooms, previous.Rooms) {
		return ReasonRoomsChanged
	}
	return ReasonNone
}

// HasChanges reports whether current should trigger a notification.
func HasChanges(current model.VacancyReport, previous *model.PersistedState) bool {
	return Compare(current, previous) != ReasonNone
}

func roomSet(rooms []model.Room) map[string]struct{} {
	set := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		set[r.Room] = struct{}{}
	}
	return set
}

func sameRoomSet(a, b []model.Room) bool {
	sa, sb := roomSet(a), roomSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for id := range sa {
		if _, ok := sb[id]; !ok {
			return false
		}
	}
	return true
}
