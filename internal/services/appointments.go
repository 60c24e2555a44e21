package services

import (
	"sort"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

// AppointmentFilter narrows the schedule. Dates are inclusive YYYY-MM-DD
// bounds; empty fields do not filter.
type AppointmentFilter struct {
	StartDate string
	EndDate   string
	PatientID string
}

type AppointmentService struct {
	store *store.Store
}

func NewAppointmentService(st *store.Store) *AppointmentService {
	return &AppointmentService{store: st}
}

// List returns matching appointments ordered by date, then time.
func (s *AppointmentService) List(f AppointmentFilter) []*models.Appointment {
	out := []*models.Appointment{}
	for _, a := range s.store.Appointments() {
		if f.StartDate != "" && a.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && a.Date > f.EndDate {
			continue
		}
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		out = append(out, a)
	}
	sortAppointments(out)
	return out
}

func sortAppointments(apts []*models.Appointment) {
	sort.SliceStable(apts, func(i, j int) bool {
		if apts[i].Date != apts[j].Date {
			return apts[i].Date < apts[j].Date
		}
		return timeBefore(apts[i].Time, apts[j].Time)
	})
}

// timeBefore orders parseable times by time of day, ahead of anything that
// does not parse.
func timeBefore(a, b string) bool {
	ma, okA := parseClockTime(a)
	mb, okB := parseClockTime(b)
	switch {
	case okA && okB:
		return ma < mb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
