package services

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

// FilterAll disables a status or priority filter.
const FilterAll = "Todas"

type AlertFilter struct {
	Search   string
	Status   string
	Priority string
}

type followUpTemplate struct {
	priority string
	format   func(treatment string) string
}

var followUpTemplates = []followUpTemplate{
	{
		priority: models.PriorityMedia,
		format: func(t string) string {
			return "Seguimiento recomendado: Revisar evolución del tratamiento de " + t
		},
	},
	{
		priority: models.PriorityBaja,
		format: func(t string) string {
			return "Recordatorio: Programar cita de control post-" + t
		},
	},
}

// AlertEngine derives alerts from patient data and treatment events and
// drives their review lifecycle. Alerts are only ever appended.
type AlertEngine struct {
	store  *store.Store
	logger zerolog.Logger
	now    Clock

	mu  sync.Mutex
	rng *rand.Rand
}

type AlertEngineOption func(*AlertEngine)

func WithAlertClock(c Clock) AlertEngineOption {
	return func(e *AlertEngine) { e.now = c }
}

func WithAlertRand(r *rand.Rand) AlertEngineOption {
	return func(e *AlertEngine) { e.rng = r }
}

func NewAlertEngine(st *store.Store, logger zerolog.Logger, opts ...AlertEngineOption) *AlertEngine {
	e := &AlertEngine{
		store:  st,
		logger: logger.With().Str("component", "alerts").Logger(),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *AlertEngine) newAlert(priority, patientName, description string) *models.Alert {
	a := &models.Alert{
		ID:          "A-" + uuid.NewString(),
		Priority:    priority,
		PatientName: patientName,
		Description: description,
		Date:        clinicToday(e.store, e.now),
		Status:      models.AlertNueva,
	}
	e.store.AddAlert(a)
	e.logger.Info().Str("alert_id", a.ID).Str("priority", priority).Msg("alert created")
	return a
}

// GenerateAllergyAlerts raises one high-priority alert when the patient
// declares allergies. Blank values and "ninguna" in any case declare none.
func (e *AlertEngine) GenerateAllergyAlerts(p *models.Patient) *models.Alert {
	allergies := strings.TrimSpace(p.Allergies)
	if allergies == "" || strings.EqualFold(allergies, "ninguna") {
		return nil
	}
	return e.newAlert(
		models.PriorityAlta,
		p.Name,
		"Alergias conocidas: "+p.Allergies+". Verificar antes de cualquier tratamiento.",
	)
}

// GenerateFollowUpAlert suggests either a review of the treatment's
// evolution or a control visit, chosen uniformly at random.
func (e *AlertEngine) GenerateFollowUpAlert(patientID, patientName, treatmentName string) *models.Alert {
	e.mu.Lock()
	tpl := followUpTemplates[e.rng.Intn(len(followUpTemplates))]
	e.mu.Unlock()

	a := e.newAlert(tpl.priority, patientName, tpl.format(treatmentName))
	e.logger.Debug().Str("patient_id", patientID).Str("alert_id", a.ID).Msg("follow-up alert for treatment")
	return a
}

// Review marks a new alert as reviewed.
func (e *AlertEngine) Review(id string) (*models.Alert, error) {
	return e.transition(id, models.AlertRevisada, func(from string) bool {
		return from == models.AlertNueva
	})
}

// Dismiss discards an alert that has not been discarded yet.
func (e *AlertEngine) Dismiss(id string) (*models.Alert, error) {
	return e.transition(id, models.AlertDescartada, func(from string) bool {
		return from == models.AlertNueva || from == models.AlertRevisada
	})
}

func (e *AlertEngine) transition(id, to string, allowed func(from string) bool) (*models.Alert, error) {
	a, err := e.store.UpdateAlert(id, func(a *models.Alert) error {
		if !allowed(a.Status) {
			return ErrInvalidAlertTransition
		}
		a.Status = to
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	e.logger.Info().Str("alert_id", id).Str("status", to).Msg("alert status changed")
	return a, nil
}

// List returns alerts in creation order, narrowed by f.
func (e *AlertEngine) List(f AlertFilter) []*models.Alert {
	term := strings.ToLower(f.Search)
	out := []*models.Alert{}
	for _, a := range e.store.Alerts() {
		if term != "" &&
			!strings.Contains(strings.ToLower(a.PatientName), term) &&
			!strings.Contains(strings.ToLower(a.Description), term) {
			continue
		}
		if f.Status != "" && f.Status != FilterAll && a.Status != f.Status {
			continue
		}
		if f.Priority != "" && f.Priority != FilterAll && a.Priority != f.Priority {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ActiveCount counts alerts still waiting for review.
func (e *AlertEngine) ActiveCount() int {
	n := 0
	for _, a := range e.store.Alerts() {
		if a.Status == models.AlertNueva {
			n++
		}
	}
	return n
}

// Active returns alerts still waiting for review in creation order, at most
// limit of them when limit is positive.
func (e *AlertEngine) Active(limit int) []*models.Alert {
	out := []*models.Alert{}
	for _, a := range e.store.Alerts() {
		if a.Status != models.AlertNueva {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out
}
