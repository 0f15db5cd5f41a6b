package appointments

import (
	"sort"
	"time"
)

// Partition splits appointments around now: upcoming holds everything at or
// after now in ascending order, past holds everything before now in
// descending order. Every input appointment lands in exactly one half.
func Partition(appts []Appointment, now time.Time) (upcoming, past []Appointment) {
	for _, a := range appts {
		if a.DateTime.Before(now) {
			past = append(past, a)
		} else {
			upcoming = append(upcoming, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DateTime.Before(upcoming[j].DateTime)
	})
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].DateTime.After(past[j].DateTime)
	})
	return upcoming, past
}

// FilterByStatus keeps only the appointments in the given status,
// preserving order. It backs the dashboard's Booked/Completed/Cancelled
// filter buttons; "all" is expressed by not filtering.
func FilterByStatus(appts []Appointment, status Status) []Appointment {
	var out []Appointment
	for _, a := range appts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}
