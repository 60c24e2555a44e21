package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

func TestGenerateAllergyAlerts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		allergies string
		wantAlert bool
	}{
		{"", false},
		{"   ", false},
		{"Ninguna", false},
		{"NINGUNA", false},
		{" ninguna ", false},
		{"Penicilina", true},
		{"ninguna conocida", true},
	}
	for _, tt := range tests {
		st := store.New(store.DefaultClinicConfiguration())
		e := newTestAlertEngine(st)

		a := e.GenerateAllergyAlerts(&models.Patient{Name: "Laura", Allergies: tt.allergies})
		if !tt.wantAlert {
			assert.Nil(t, a, "%q", tt.allergies)
			assert.Empty(t, st.Alerts(), "%q", tt.allergies)
			continue
		}
		require.NotNil(t, a, "%q", tt.allergies)
		assert.Equal(t, models.PriorityAlta, a.Priority)
		assert.Equal(t, models.AlertNueva, a.Status)
		assert.Equal(t, "Laura", a.PatientName)
		assert.Equal(t, "5/7/2024", a.Date)
		assert.Equal(t, "Alergias conocidas: "+tt.allergies+". Verificar antes de cualquier tratamiento.", a.Description)
		assert.Len(t, st.Alerts(), 1)
	}
}

func TestGenerateFollowUpAlert_UsesBothTemplates(t *testing.T) {
	t.Parallel()
	st := store.New(store.DefaultClinicConfiguration())
	e := newTestAlertEngine(st)

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		a := e.GenerateFollowUpAlert("P789-1234", "Laura", "Peeling químico")
		switch a.Priority {
		case models.PriorityMedia:
			assert.Equal(t, "Seguimiento recomendado: Revisar evolución del tratamiento de Peeling químico", a.Description)
		case models.PriorityBaja:
			assert.Equal(t, "Recordatorio: Programar cita de control post-Peeling químico", a.Description)
		default:
			t.Fatalf("unexpected priority %q", a.Priority)
		}
		assert.Equal(t, models.AlertNueva, a.Status)
		seen[a.Priority] = true
	}
	assert.Len(t, seen, 2)
	assert.Len(t, st.Alerts(), 64)
}

func TestAlertTransitions(t *testing.T) {
	t.Parallel()

	newAlert := func(e *AlertEngine) string {
		return e.GenerateAllergyAlerts(&models.Patient{Name: "Laura", Allergies: "Látex"}).ID
	}

	t.Run("review then dismiss", func(t *testing.T) {
		t.Parallel()
		e := newTestAlertEngine(store.New(store.DefaultClinicConfiguration()))
		id := newAlert(e)

		a, err := e.Review(id)
		require.NoError(t, err)
		assert.Equal(t, models.AlertRevisada, a.Status)

		_, err = e.Review(id)
		assert.ErrorIs(t, err, ErrInvalidAlertTransition)

		a, err = e.Dismiss(id)
		require.NoError(t, err)
		assert.Equal(t, models.AlertDescartada, a.Status)
	})

	t.Run("dismissed is terminal", func(t *testing.T) {
		t.Parallel()
		e := newTestAlertEngine(store.New(store.DefaultClinicConfiguration()))
		id := newAlert(e)

		_, err := e.Dismiss(id)
		require.NoError(t, err)

		_, err = e.Dismiss(id)
		assert.ErrorIs(t, err, ErrInvalidAlertTransition)
		_, err = e.Review(id)
		assert.ErrorIs(t, err, ErrInvalidAlertTransition)
	})

	t.Run("unknown alert", func(t *testing.T) {
		t.Parallel()
		e := newTestAlertEngine(store.New(store.DefaultClinicConfiguration()))

		_, err := e.Review("A-404")
		assert.ErrorIs(t, err, ErrAlertNotFound)
		_, err = e.Dismiss("A-404")
		assert.ErrorIs(t, err, ErrAlertNotFound)
	})
}

func TestAlertList_Filters(t *testing.T) {
	t.Parallel()
	st := store.New(store.DefaultClinicConfiguration())
	e := newTestAlertEngine(st)

	laura := e.GenerateAllergyAlerts(&models.Patient{Name: "Laura Gómez", Allergies: "Penicilina"})
	carlos := e.GenerateAllergyAlerts(&models.Patient{Name: "Carlos Ruiz", Allergies: "Látex"})
	followUp := e.GenerateFollowUpAlert("P2", "Carlos Ruiz", "Botox")
	_, err := e.Review(carlos.ID)
	require.NoError(t, err)

	ids := func(alerts []*models.Alert) []string {
		out := []string{}
		for _, a := range alerts {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []string{laura.ID, carlos.ID, followUp.ID}, ids(e.List(AlertFilter{})))
	assert.Equal(t, []string{laura.ID, carlos.ID, followUp.ID}, ids(e.List(AlertFilter{Status: FilterAll, Priority: FilterAll})))
	assert.Equal(t, []string{carlos.ID, followUp.ID}, ids(e.List(AlertFilter{Search: "carlos"})))
	assert.Equal(t, []string{laura.ID}, ids(e.List(AlertFilter{Search: strings.ToUpper("penicilina")})))
	assert.Equal(t, []string{carlos.ID}, ids(e.List(AlertFilter{Status: models.AlertRevisada})))
	assert.Equal(t, []string{laura.ID, carlos.ID}, ids(e.List(AlertFilter{Priority: models.PriorityAlta})))
	assert.Equal(t, []string{laura.ID}, ids(e.List(AlertFilter{Priority: models.PriorityAlta, Status: models.AlertNueva})))
	assert.NotNil(t, e.List(AlertFilter{Search: "nadie"}))
	assert.Empty(t, e.List(AlertFilter{Search: "nadie"}))

	assert.Equal(t, 2, e.ActiveCount())
}
