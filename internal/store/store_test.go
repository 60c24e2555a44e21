package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/laskin-api/internal/models"
)

func plainHash(pw string) (string, error) { return "hashed:" + pw, nil }

func TestNewSeeded_Roster(t *testing.T) {
	t.Parallel()

	s, err := NewSeeded(plainHash)
	require.NoError(t, err)

	users := s.Users()
	require.Len(t, users, 2)

	ana, err := s.FindUserByEmail("anaperez@laskin.com.co")
	require.NoError(t, err)
	assert.Equal(t, "hashed:Anaoperez19*", ana.Password)
	assert.Equal(t, models.RolePersonal, ana.Role)
	assert.Equal(t, "Dermatólogo", ana.RoleType)
	require.NotNil(t, ana.Permissions)
	_, templates := DefaultRoleTemplates()
	assert.Equal(t, templates["Dermatólogo"].Permissions, *ana.Permissions)

	admin, err := s.FindUserByEmail("administrador@laskin.com.co")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, allPermissions(), *admin.Permissions)

	assert.Equal(t, []string{"Dermatólogo", "Esteticista", "Personal Administrativo", "Call Center"}, s.RoleTypes())
	assert.Empty(t, s.Patients())
	assert.Empty(t, s.Alerts())
	assert.Equal(t, DefaultClinicConfiguration(), s.ClinicConfig())
}

func TestNewSeeded_HashError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := NewSeeded(func(string) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestFindUserByEmail_ExactMatch(t *testing.T) {
	t.Parallel()

	s, err := NewSeeded(plainHash)
	require.NoError(t, err)

	_, err = s.FindUserByEmail("AnaPerez@laskin.com.co")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindUserByEmail(" anaperez@laskin.com.co")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	t.Parallel()

	s, err := NewSeeded(plainHash)
	require.NoError(t, err)

	u, err := s.FindUserByEmail("anaperez@laskin.com.co")
	require.NoError(t, err)
	u.Permissions.Billing.ApplyDiscounts = true
	u.Name = "Otra"

	again, err := s.FindUserByEmail("anaperez@laskin.com.co")
	require.NoError(t, err)
	assert.False(t, again.Permissions.Billing.ApplyDiscounts)
	assert.Equal(t, "Ana Pérez", again.Name)
}

func TestSetPermissionsForRoleType_IndependentCopies(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	s.AddUser(&models.User{Email: "a@x", RoleType: "Esteticista"})
	s.AddUser(&models.User{Email: "b@x", RoleType: "Esteticista"})
	s.AddUser(&models.User{Email: "c@x", RoleType: "Call Center"})

	p := models.UserPermissions{Billing: models.BillingPermissions{ViewPaymentHistory: true}}
	n := s.SetPermissionsForRoleType("Esteticista", p)
	assert.Equal(t, 2, n)

	p.Billing.ViewPaymentHistory = false
	for _, u := range s.UsersByRoleType("Esteticista") {
		assert.True(t, u.Permissions.Billing.ViewPaymentHistory, u.Email)
	}
	c, err := s.FindUserByEmail("c@x")
	require.NoError(t, err)
	assert.Nil(t, c.Permissions)
}

func TestRoleTemplates(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	s.AddRoleTemplate("Call Center", models.RoleTemplate{Description: "desc"})

	err := s.SetRoleTemplatePermissions("Recepción", models.UserPermissions{})
	assert.ErrorIs(t, err, ErrNotFound)

	perms := models.UserPermissions{AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true}}
	require.NoError(t, s.SetRoleTemplatePermissions("Call Center", perms))
	tpl, err := s.RoleTemplate("Call Center")
	require.NoError(t, err)
	assert.Equal(t, perms, tpl.Permissions)
	assert.Equal(t, "desc", tpl.Description)

	s.AddRoleTemplate("Call Center", models.RoleTemplate{Description: "again"})
	assert.Equal(t, []string{"Call Center"}, s.RoleTypes())
}

func TestAddPatient_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	first := s.AddPatient(&models.Patient{Name: "Laura"})
	second := s.AddPatient(&models.Patient{Name: "Carlos"})
	kept := s.AddPatient(&models.Patient{ID: "P-custom", Name: "Marta"})

	assert.Equal(t, "P789-1234", first.ID)
	assert.Equal(t, "P789-1235", second.ID)
	assert.Equal(t, "P-custom", kept.ID)

	got, err := s.Patient("P789-1235")
	require.NoError(t, err)
	assert.Equal(t, "Carlos", got.Name)
}

func TestAddPatient_ConcurrentIDsAreUnique(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids <- s.AddPatient(&models.Patient{Name: fmt.Sprintf("p%d", i)}).ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestUpdatePatient(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	p := s.AddPatient(&models.Patient{Name: "Laura"})

	require.NoError(t, s.UpdatePatient(p.ID, func(p *models.Patient) {
		p.Notes = append(p.Notes, models.Note{ID: "N-1"})
	}))
	got, err := s.Patient(p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 1)

	err = s.UpdatePatient("P789-9999", func(*models.Patient) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAlert(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	s.AddAlert(&models.Alert{ID: "A-1", Status: models.AlertNueva})

	rejected := errors.New("rejected")
	_, err := s.UpdateAlert("A-1", func(a *models.Alert) error { return rejected })
	assert.ErrorIs(t, err, rejected)

	a, err := s.UpdateAlert("A-1", func(a *models.Alert) error {
		a.Status = models.AlertRevisada
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.AlertRevisada, a.Status)

	stored, err := s.Alert("A-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertRevisada, stored.Status)

	_, err = s.UpdateAlert("A-404", func(*models.Alert) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTreatmentsForPatient(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	s.AddTreatment(&models.Treatment{ID: "T-1", PatientID: "P1"})
	s.AddTreatment(&models.Treatment{ID: "T-2", PatientID: "P2"})
	s.AddTreatment(&models.Treatment{ID: "T-3", PatientID: "P1"})

	got := s.TreatmentsForPatient("P1")
	require.Len(t, got, 2)
	assert.Equal(t, "T-1", got[0].ID)
	assert.Equal(t, "T-3", got[1].ID)
	assert.Len(t, s.Treatments(), 3)
}

func TestRecordTreatment(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	p := s.AddPatient(&models.Patient{Name: "Laura"})

	called := false
	err := s.RecordTreatment(
		&models.Treatment{ID: "T-1", PatientID: "P789-9999"},
		&models.Appointment{ID: "APT-1", PatientID: "P789-9999"},
		func(*models.Patient) { called = true },
	)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
	assert.Empty(t, s.Treatments(), "nothing is written for a missing patient")
	assert.Empty(t, s.Appointments())

	err = s.RecordTreatment(
		&models.Treatment{ID: "T-2", PatientID: p.ID},
		&models.Appointment{ID: "APT-2", PatientID: p.ID},
		func(pt *models.Patient) { pt.LastVisit = "2024-07-05" },
	)
	require.NoError(t, err)
	assert.Len(t, s.Treatments(), 1)
	assert.Len(t, s.Appointments(), 1)
	got, err := s.Patient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-05", got.LastVisit)

	require.NoError(t, s.RecordTreatment(&models.Treatment{ID: "T-3", PatientID: p.ID}, nil, func(*models.Patient) {}))
	assert.Len(t, s.Treatments(), 2)
	assert.Len(t, s.Appointments(), 1)
}

func TestUpdateClinicConfig(t *testing.T) {
	t.Parallel()

	s := New(DefaultClinicConfiguration())
	cfg := s.UpdateClinicConfig(func(c *models.ClinicConfiguration) { c.CenterName = "Laskin Norte" })
	assert.Equal(t, "Laskin Norte", cfg.CenterName)
	assert.Equal(t, "Laskin Norte", s.ClinicConfig().CenterName)
	assert.Equal(t, 50, s.ClinicConfig().AISensitivity)
}
