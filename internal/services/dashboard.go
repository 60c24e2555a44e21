package services

import (
	"sort"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

const (
	recentPatientsLimit       = 3
	upcomingAppointmentsLimit = 5
	activeAlertsLimit         = 5
)

type DashboardSummary struct {
	TotalPatients        int                   `json:"totalPatients"`
	TotalTreatments      int                   `json:"totalTreatments"`
	ActiveAlertCount     int                   `json:"activeAlertCount"`
	ActiveAlerts         []*models.Alert       `json:"activeAlerts"`
	RecentPatients       []*models.Patient     `json:"recentPatients"`
	UpcomingAppointments []*models.Appointment `json:"upcomingAppointments"`
}

type DashboardService struct {
	store  *store.Store
	alerts *AlertEngine
}

func NewDashboardService(st *store.Store, alerts *AlertEngine) *DashboardService {
	return &DashboardService{store: st, alerts: alerts}
}

func (s *DashboardService) Summary() DashboardSummary {
	patients := s.store.Patients()
	total := len(patients)
	sort.SliceStable(patients, func(i, j int) bool {
		return parseVisitDate(patients[i].LastVisit).After(parseVisitDate(patients[j].LastVisit))
	})
	if len(patients) > recentPatientsLimit {
		patients = patients[:recentPatientsLimit]
	}

	apts := s.store.Appointments()
	sortAppointments(apts)
	if len(apts) > upcomingAppointmentsLimit {
		apts = apts[:upcomingAppointmentsLimit]
	}

	return DashboardSummary{
		TotalPatients:        total,
		TotalTreatments:      len(s.store.Treatments()),
		ActiveAlertCount:     s.alerts.ActiveCount(),
		ActiveAlerts:         s.alerts.Active(activeAlertsLimit),
		RecentPatients:       patients,
		UpcomingAppointments: apts,
	}
}
