package directory

import "strings"

// Role distinguishes the two account types.
type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// DoctorProfile holds the optional practice fields a doctor may fill in.
// Empty values are normal and rendered with fallback text by clients.
type DoctorProfile struct {
	LicenseNumber     string `json:"license_number,omitempty"`
	YearsExperience   string `json:"years_experience,omitempty"`
	MedicalSchool     string `json:"medical_school,omitempty"`
	ClinicName        string `json:"clinic_name,omitempty"`
	ClinicAddress     string `json:"clinic_address,omitempty"`
	ClinicContact     string `json:"clinic_contact,omitempty"`
	ConsultationHours string `json:"consultation_hours,omitempty"`
	Bio               string `json:"bio,omitempty"`
}

// PatientProfile holds the optional medical fields a patient may fill in.
type PatientProfile struct {
	BloodType             string `json:"blood_type,omitempty"`
	Allergies             string `json:"allergies,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
}

// Account is the identity record for a patient or doctor. The credential is
// kept only in the store's internal record type, so an Account value can
// never leak a password.
type Account struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
	DOB            string `json:"dob,omitempty"`
	DoctorProfile
	PatientProfile
}

// Doctor is the browsable directory projection of a doctor account.
// Every Doctor corresponds to exactly one Account with RoleDoctor and the
// two are written together.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	DoctorProfile
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
	DOB            string `json:"dob,omitempty"`
	DoctorProfile
	PatientProfile
}

// Validate checks the structural requirements for registration.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	if !r.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// ProfileUpdate is a shallow merge patch: set pointers overwrite the
// corresponding account field, nil pointers leave it untouched. Email and
// role are immutable and deliberately absent.
type ProfileUpdate struct {
	Name              *string `json:"name,omitempty"`
	Specialization    *string `json:"specialization,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	DOB               *string `json:"dob,omitempty"`
	LicenseNumber     *string `json:"license_number,omitempty"`
	YearsExperience   *string `json:"years_experience,omitempty"`
	MedicalSchool     *string `json:"medical_school,omitempty"`
	ClinicName        *string `json:"clinic_name,omitempty"`
	ClinicAddress     *string `json:"clinic_address,omitempty"`
	ClinicContact     *string `json:"clinic_contact,omitempty"`
	ConsultationHours *string `json:"consultation_hours,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	BloodType         *string `json:"blood_type,omitempty"`
	Allergies         *string `json:"allergies,omitempty"`
	EmergencyContact  *string `json:"emergency_contact_name,omitempty"`
	EmergencyPhone    *string `json:"emergency_contact_phone,omitempty"`
}

func (u *ProfileUpdate) applyToAccount(a *Account) {
	setString(u.Name, &a.Name)
	setString(u.Specialization, &a.Specialization)
	setString(u.Phone, &a.Phone)
	setString(u.DOB, &a.DOB)
	u.applyDoctorProfile(&a.DoctorProfile)
	setString(u.BloodType, &a.BloodType)
	setString(u.Allergies, &a.Allergies)
	setString(u.EmergencyContact, &a.EmergencyContactName)
	setString(u.EmergencyPhone, &a.EmergencyContactPhone)
}

func (u *ProfileUpdate) applyToDoctor(d *Doctor) {
	setString(u.Name, &d.Name)
	setString(u.Specialization, &d.Specialization)
	u.applyDoctorProfile(&d.DoctorProfile)
}

func (u *ProfileUpdate) applyDoctorProfile(p *DoctorProfile) {
	setString(u.LicenseNumber, &p.LicenseNumber)
	setString(u.YearsExperience, &p.YearsExperience)
	setString(u.MedicalSchool, &p.MedicalSchool)
	setString(u.ClinicName, &p.ClinicName)
	setString(u.ClinicAddress, &p.ClinicAddress)
	setString(u.ClinicContact, &p.ClinicContact)
	setString(u.ConsultationHours, &p.ConsultationHours)
	setString(u.Bio, &p.Bio)
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}
