package appointments

import "time"

// Business hours for the weekly calendar grid, inclusive on both ends.
const (
	calendarStartHour = 8
	calendarEndHour   = 18
)

// CalendarCell is one weekday-by-hour slot in the weekly grid.
type CalendarCell struct {
	Occupied      bool   `json:"occupied"`
	AppointmentID string `json:"appointment_id,omitempty"`
	PatientName   string `json:"patient_name,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// WeekGrid is the doctor-facing weekly occupancy view. Cells are indexed
// [hour][day] with days running Sunday through Saturday.
type WeekGrid struct {
	Days  []string         `json:"days"`
	Hours []int            `json:"hours"`
	Cells [][]CalendarCell `json:"cells"`
}

// ProjectWeek derives the weekly occupancy grid from a doctor's
// appointments. The grid is a recurring weekly template: a cell is occupied
// when any Booked appointment falls on that weekday and hour, regardless of
// which calendar week it belongs to. Minutes are ignored and the first
// matching appointment fills the cell; later matches on the same slot are
// not an error.
func ProjectWeek(appts []Appointment) *WeekGrid {
	grid := &WeekGrid{
		Days: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
	for h := calendarStartHour; h <= calendarEndHour; h++ {
		grid.Hours = append(grid.Hours, h)
	}

	grid.Cells = make([][]CalendarCell, len(grid.Hours))
	for i, hour := range grid.Hours {
		row := make([]CalendarCell, len(grid.Days))
		for day := range row {
			for _, a := range appts {
				if a.Status != StatusBooked {
					continue
				}
				if a.DateTime.Weekday() == time.Weekday(day) && a.DateTime.Hour() == hour {
					row[day] = CalendarCell{
						Occupied:      true,
						AppointmentID: a.ID,
						PatientName:   a.PatientName,
						Reason:        a.Reason,
					}
					break
				}
			}
		}
		grid.Cells[i] = row
	}
	return grid
}
