package negotiation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBadSlotLabel is returned when a slot label carries no parseable time.
var ErrBadSlotLabel = errors.New("unparseable slot label")

var slotLabelRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?`)

// ParseSlotLabel converts a 12-hour display label such as "10:00 AM" into a
// 24-hour hour and minute. The AM/PM marker is matched case-insensitively;
// 12 AM maps to hour 0 and 12 PM stays 12. Labels without a marker are
// taken as already 24-hour.
func ParseSlotLabel(label string) (hour, minute int, err error) {
	m := slotLabelRe.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, ErrBadSlotLabel
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	upper := strings.ToUpper(label)
	switch {
	case strings.Contains(upper, "PM") && hour != 12:
		hour += 12
	case strings.Contains(upper, "AM") && hour == 12:
		hour = 0
	}

	if hour > 23 || minute > 59 {
		return 0, 0, ErrBadSlotLabel
	}
	return hour, minute, nil
}

// SlotDateTime combines a YYYY-MM-DD date with a display label into one
// point in time. The label is parsed at confirmation time, not when the
// slot was suggested.
func SlotDateTime(date, label string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseSlotLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
