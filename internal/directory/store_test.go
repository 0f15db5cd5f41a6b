package directory

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore() *Store {
	s := NewStore()
	s.SeedDemo()
	return s
}

func TestFindByCredentials(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	t.Run("matches email case-insensitively", func(t *testing.T) {
		acc, err := store.FindByCredentials(ctx, "ALEX@Patient.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "user1", acc.ID)
		assert.Equal(t, RolePatient, acc.Role)
	})

	t.Run("wrong password fails uniformly", func(t *testing.T) {
		_, err := store.FindByCredentials(ctx, "alex@patient.com", "PASSWORD123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails uniformly", func(t *testing.T) {
		_, err := store.FindByCredentials(ctx, "nobody@patient.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("returned account never carries the password", func(t *testing.T) {
		acc, err := store.FindByCredentials(ctx, "carter@clinic.com", "password123")
		require.NoError(t, err)

		raw, err := json.Marshal(acc)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToLower(string(raw)), "password")
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a patient account", func(t *testing.T) {
		store := NewStore()
		acc, err := store.Register(ctx, &RegisterRequest{
			Name:     "Jamie Rivera",
			Email:    "jamie@patient.com",
			Password: "secret",
			Role:     RolePatient,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, acc.ID)

		got, err := store.FindByCredentials(ctx, "jamie@patient.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, acc.ID, got.ID)
	})

	t.Run("rejects duplicate email case-insensitively", func(t *testing.T) {
		store := newSeededStore()
		_, err := store.Register(ctx, &RegisterRequest{
			Name:     "Impostor",
			Email:    "ALEX@PATIENT.COM",
			Password: "x",
			Role:     RolePatient,
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("doctor registration appears in the directory", func(t *testing.T) {
		store := NewStore()
		acc, err := store.Register(ctx, &RegisterRequest{
			Name:           "Dr. New",
			Email:          "new@clinic.com",
			Password:       "secret",
			Role:           RoleDoctor,
			Specialization: "Orthopedics",
		})
		require.NoError(t, err)

		doctors, err := store.ListDoctors(ctx)
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, acc.ID, doctors[0].ID)
		assert.Equal(t, "Orthopedics", doctors[0].Specialization)
	})

	t.Run("doctor without specialization defaults to General Practice", func(t *testing.T) {
		store := NewStore()
		_, err := store.Register(ctx, &RegisterRequest{
			Name:     "Dr. Blank",
			Email:    "blank@clinic.com",
			Password: "secret",
			Role:     RoleDoctor,
		})
		require.NoError(t, err)

		doctors, err := store.ListDoctors(ctx)
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "General Practice", doctors[0].Specialization)
	})

	t.Run("patient registration does not touch the directory", func(t *testing.T) {
		store := NewStore()
		_, err := store.Register(ctx, &RegisterRequest{
			Name:     "Pat",
			Email:    "pat@patient.com",
			Password: "secret",
			Role:     RolePatient,
		})
		require.NoError(t, err)

		doctors, err := store.ListDoctors(ctx)
		require.NoError(t, err)
		assert.Empty(t, doctors)
	})

	t.Run("validates required fields", func(t *testing.T) {
		store := NewStore()
		cases := []struct {
			req  RegisterRequest
			want error
		}{
			{RegisterRequest{Email: "a@b.com", Password: "x", Role: RolePatient}, ErrMissingName},
			{RegisterRequest{Name: "A", Password: "x", Role: RolePatient}, ErrMissingEmail},
			{RegisterRequest{Name: "A", Email: "a@b.com", Role: RolePatient}, ErrMissingPassword},
			{RegisterRequest{Name: "A", Email: "a@b.com", Password: "x", Role: "Admin"}, ErrInvalidRole},
		}
		for _, tc := range cases {
			_, err := store.Register(ctx, &tc.req)
			assert.ErrorIs(t, err, tc.want)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("merges set fields and keeps the rest", func(t *testing.T) {
		store := newSeededStore()
		phone := "555-0100"
		acc, err := store.UpdateProfile(ctx, "user1", &ProfileUpdate{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "555-0100", acc.Phone)
		assert.Equal(t, "Alex Johnson", acc.Name)
		assert.Equal(t, "alex@patient.com", acc.Email)
	})

	t.Run("doctor edits propagate to the directory", func(t *testing.T) {
		store := newSeededStore()
		name := "Dr. Emily Carter-Reyes"
		clinic := "Sunnyvale Heart Institute"
		_, err := store.UpdateProfile(ctx, "doc1", &ProfileUpdate{Name: &name, ClinicName: &clinic})
		require.NoError(t, err)

		doc, err := store.GetDoctor(ctx, "doc1")
		require.NoError(t, err)
		assert.Equal(t, name, doc.Name)
		assert.Equal(t, clinic, doc.ClinicName)
		assert.Equal(t, "Cardiology", doc.Specialization)
	})

	t.Run("unknown account errors", func(t *testing.T) {
		store := newSeededStore()
		name := "x"
		_, err := store.UpdateProfile(ctx, "ghost", &ProfileUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestListDoctorsOrderAndIsolation(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	doctors, err := store.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 8)
	assert.Equal(t, "doc1", doctors[0].ID)
	assert.Equal(t, "doc8", doctors[7].ID)

	// Mutating the snapshot must not affect the store.
	doctors[0].Name = "mutated"
	again, err := store.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Emily Carter", again[0].Name)
}

func TestStoreLatencyCancellation(t *testing.T) {
	store := NewStore(WithLatency(500 * time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.ListDoctors(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
