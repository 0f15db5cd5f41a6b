package appointments

import "time"

// SeedDemo loads the demo appointments for the demo patient, anchored
// relative to now so the dashboard always shows one upcoming, one past, and
// one same-day booking.
func (s *Store) SeedDemo(now time.Time) {
	at := func(dayOffset, hour int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location()).
			AddDate(0, 0, dayOffset)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = append(s.appointments,
		Appointment{
			ID:                   "appt1",
			DoctorID:             "doc1",
			DoctorName:           "Dr. Emily Carter",
			DoctorSpecialization: "Cardiology",
			PatientID:            "user1",
			PatientName:          "Alex Johnson",
			DateTime:             at(1, 14),
			Reason:               "Follow-up consultation",
			Status:               StatusBooked,
		},
		Appointment{
			ID:                   "appt2",
			DoctorID:             "doc2",
			DoctorName:           "Dr. Ben Adams",
			DoctorSpecialization: "Neurologist",
			PatientID:            "user1",
			PatientName:          "Alex Johnson",
			DateTime:             at(-2, 10),
			Reason:               "Migraine Check",
			Status:               StatusCompleted,
		},
		Appointment{
			ID:                   "appt3",
			DoctorID:             "doc1",
			DoctorName:           "Dr. Emily Carter",
			DoctorSpecialization: "Cardiology",
			PatientID:            "user1",
			PatientName:          "Alex Johnson",
			DateTime:             at(0, 9),
			Reason:               "Routine Checkup",
			Status:               StatusBooked,
		},
	)
}
