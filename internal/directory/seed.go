package directory

// SeedDemo loads the demo roster used in local development: eight doctors
// across common specialties and one patient account. All demo credentials
// share the same password.
func (s *Store) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	const demoPassword = "password123"

	doctors := []Doctor{
		{
			ID: "doc1", Name: "Dr. Emily Carter", Specialization: "Cardiology", Email: "carter@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Dr. Emily Carter is a friendly Cardiologist with extensive experience in preventive care.",
				ClinicName:        "Sunnyvale Heart Clinic",
				ClinicAddress:     "123 Main St, Sunnyvale, CA",
				ClinicContact:     "(555) 123-4567",
				ConsultationHours: "Mon-Fri, 9AM-5PM",
				YearsExperience:   "12",
			},
		},
		{
			ID: "doc2", Name: "Dr. Ben Adams", Specialization: "Neurologist", Email: "adams@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Specialist in migraines and neurological disorders.",
				ClinicName:        "Adams Neuro Center",
				ConsultationHours: "Mon-Thu, 8AM-4PM",
				YearsExperience:   "8",
			},
		},
		{
			ID: "doc3", Name: "Dr. Chloe Davis", Specialization: "Pediatrician", Email: "davis@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Caring for children from infancy through adolescence.",
				ClinicName:        "Little Stars Pediatrics",
				ConsultationHours: "Mon-Fri, 8AM-6PM",
				YearsExperience:   "5",
			},
		},
		{
			ID: "doc4", Name: "Dr. Pradeep Raghuvanshi", Specialization: "General physician", Email: "pradeep@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Comprehensive primary care for the whole family.",
				ClinicName:        "City General Health",
				ConsultationHours: "Daily, 9AM-9PM",
				YearsExperience:   "15",
			},
		},
		{
			ID: "doc5", Name: "Dr. Lokesh", Specialization: "Gastroenterologist", Email: "lokesh@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Expert in digestive health and endoscopic procedures.",
				ClinicName:        "Digestive Health Inst",
				ConsultationHours: "Mon-Sat, 10AM-4PM",
				YearsExperience:   "10",
			},
		},
		{
			ID: "doc6", Name: "Dr. Anmol Alhawat", Specialization: "Dermatologist", Email: "anmol@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Specializing in medical and cosmetic dermatology.",
				ClinicName:        "Clear Skin Institute",
				ConsultationHours: "Tue-Sat, 10AM-6PM",
				YearsExperience:   "7",
			},
		},
		{
			ID: "doc7", Name: "Dr. Sarah Smith", Specialization: "Gynecologist", Email: "sarah@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Dedicated to women's health and wellness.",
				ClinicName:        "Women's Wellness Center",
				ConsultationHours: "Mon-Fri, 9AM-5PM",
				YearsExperience:   "14",
			},
		},
		{
			ID: "doc8", Name: "Dr. James Wilson", Specialization: "General physician", Email: "james@clinic.com",
			DoctorProfile: DoctorProfile{
				Bio:               "Experienced in treating chronic conditions.",
				ClinicName:        "Wilson Family Practice",
				ConsultationHours: "Mon-Sat, 8AM-12PM",
				YearsExperience:   "20",
			},
		},
	}

	s.accounts = append(s.accounts, storedAccount{
		Account: Account{
			ID:    "user1",
			Name:  "Alex Johnson",
			Email: "alex@patient.com",
			Role:  RolePatient,
		},
		password: demoPassword,
	})

	for _, d := range doctors {
		s.accounts = append(s.accounts, storedAccount{
			Account: Account{
				ID:             d.ID,
				Name:           d.Name,
				Email:          d.Email,
				Role:           RoleDoctor,
				Specialization: d.Specialization,
				DoctorProfile:  d.DoctorProfile,
			},
			password: demoPassword,
		})
		s.doctors = append(s.doctors, d)
	}
}
