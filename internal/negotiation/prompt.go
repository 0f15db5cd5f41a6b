package negotiation

import (
	"fmt"
	"strings"
	"time"

	"github.com/medibook/medibook/internal/directory"
)

func buildSlotPrompt(doctor *directory.Doctor, date, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Context: A patient wants to book an appointment with %s (%s) on %s.\n",
		doctor.Name, doctor.Specialization, date)
	fmt.Fprintf(&b, "Reason for visit: %q.\n\n", reason)
	b.WriteString("Task: Generate 3 realistic available time slots for this appointment.\n")
	b.WriteString("The slots should be appropriate for a clinic (e.g., between 9 AM and 5 PM).\n\n")
	b.WriteString(`Return a JSON array of strings, e.g. ["10:00 AM", "02:30 PM", "04:15 PM"].`)
	return b.String()
}

func buildParsePrompt(doctors []directory.Doctor, userRequest string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current Date: %s\n\n", now.Format("Mon Jan 2 2006"))
	b.WriteString("You are an intelligent booking agent for a clinic.\n")
	b.WriteString("Available Doctors:\n")
	for _, d := range doctors {
		fmt.Fprintf(&b, "%s (ID: %s, Specialization: %s)\n", d.Name, d.ID, d.Specialization)
	}
	fmt.Fprintf(&b, "\nUser Request: %q\n\n", userRequest)
	b.WriteString("Task:\n")
	b.WriteString("1. Identify the most suitable doctor based on the user's medical need (e.g., heart -> Cardiology).\n")
	b.WriteString("2. Extract the desired date and time. If vague (e.g., \"next Monday morning\"), pick a specific logical slot (e.g., 10:00 AM).\n")
	b.WriteString("3. Summarize the reason.\n")
	b.WriteString("4. Report a confidence level between 0 and 1.\n\n")
	b.WriteString(`Return a JSON object with keys "foundDoctorId", "suggestedDateISO" (ISO 8601), "reason", and "confidence".`)
	return b.String()
}
