// Package store keeps the clinic's working data in memory. Every read hands
// out copies and every write goes through a method, so callers never share
// records with each other.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harentsoaR/laskin-api/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
)

type Store struct {
	mu sync.RWMutex

	users         []*models.User
	roleTemplates map[string]*models.RoleTemplate
	roleOrder     []string
	patients      []*models.Patient
	treatments    []*models.Treatment
	appointments  []*models.Appointment
	alerts        []*models.Alert
	clinic        models.ClinicConfiguration
}

// New returns an empty store with the given clinic configuration.
func New(clinic models.ClinicConfiguration) *Store {
	return &Store{
		roleTemplates: make(map[string]*models.RoleTemplate),
		clinic:        clinic,
	}
}

// --- users ---

func (s *Store) AddUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u.Clone())
}

func (s *Store) Users() []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out
}

// FindUserByEmail scans the roster for an exact email match.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
}

func (s *Store) UsersByRoleType(roleType string) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.User
	for _, u := range s.users {
		if u.RoleType == roleType {
			out = append(out, u.Clone())
		}
	}
	return out
}

// SetPermissionsForRoleType gives every user of roleType its own copy of p
// and reports how many users were touched.
func (s *Store) SetPermissionsForRoleType(roleType string, p models.UserPermissions) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.users {
		if u.RoleType == roleType {
			cp := p
			u.Permissions = &cp
			n++
		}
	}
	return n
}

// --- role templates ---

func (s *Store) AddRoleTemplate(roleType string, t models.RoleTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roleTemplates[roleType]; !ok {
		s.roleOrder = append(s.roleOrder, roleType)
	}
	s.roleTemplates[roleType] = &t
}

// RoleTypes lists template names in registration order.
func (s *Store) RoleTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roleOrder...)
}

func (s *Store) RoleTemplate(roleType string) (models.RoleTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.roleTemplates[roleType]
	if !ok {
		return models.RoleTemplate{}, fmt.Errorf("role template %q: %w", roleType, ErrNotFound)
	}
	return *t, nil
}

// SetRoleTemplatePermissions replaces the template's permissions wholesale.
func (s *Store) SetRoleTemplatePermissions(roleType string, p models.UserPermissions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.roleTemplates[roleType]
	if !ok {
		return fmt.Errorf("role template %q: %w", roleType, ErrNotFound)
	}
	t.Permissions = p
	return nil
}

// --- patients ---

// AddPatient stores p and returns the stored copy. A patient without an id
// gets the clinic's numbering, P789-<1234 + count>.
func (s *Store) AddPatient(p *models.Patient) *models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p.Clone()
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("P789-%d", 1234+len(s.patients))
	}
	s.patients = append(s.patients, cp)
	return cp.Clone()
}

func (s *Store) Patient(id string) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, fmt.Errorf("patient %q: %w", id, ErrNotFound)
}

func (s *Store) Patients() []*models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p.Clone())
	}
	return out
}

// UpdatePatient runs fn on the stored record under the write lock.
func (s *Store) UpdatePatient(id string, fn func(p *models.Patient)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.ID == id {
			fn(p)
			return nil
		}
	}
	return fmt.Errorf("patient %q: %w", id, ErrNotFound)
}

// --- treatments and appointments ---

func (s *Store) AddTreatment(t *models.Treatment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.treatments = append(s.treatments, t.Clone())
}

func (s *Store) Treatments() []*models.Treatment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Treatment, 0, len(s.treatments))
	for _, t := range s.treatments {
		out = append(out, t.Clone())
	}
	return out
}

func (s *Store) TreatmentsForPatient(patientID string) []*models.Treatment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Treatment
	for _, t := range s.treatments {
		if t.PatientID == patientID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// RecordTreatment stores t, and apt when set, and runs fn on the treated
// patient under one write lock. Nothing is written when the patient is
// missing. fn must not call back into the store.
func (s *Store) RecordTreatment(t *models.Treatment, apt *models.Appointment, fn func(p *models.Patient)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var patient *models.Patient
	for _, p := range s.patients {
		if p.ID == t.PatientID {
			patient = p
			break
		}
	}
	if patient == nil {
		return fmt.Errorf("patient %q: %w", t.PatientID, ErrNotFound)
	}

	s.treatments = append(s.treatments, t.Clone())
	if apt != nil {
		cp := *apt
		s.appointments = append(s.appointments, &cp)
	}
	fn(patient)
	return nil
}

func (s *Store) AddAppointment(a *models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.appointments = append(s.appointments, &cp)
}

func (s *Store) Appointments() []*models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

// --- alerts ---

func (s *Store) AddAlert(a *models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.alerts = append(s.alerts, &cp)
}

func (s *Store) Alerts() []*models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

func (s *Store) Alert(id string) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("alert %q: %w", id, ErrNotFound)
}

// UpdateAlert runs fn on the stored alert under the write lock; an error from
// fn aborts without further changes and is returned as is.
func (s *Store) UpdateAlert(id string, fn func(a *models.Alert) error) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id {
			if err := fn(a); err != nil {
				return nil, err
			}
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("alert %q: %w", id, ErrNotFound)
}

// --- clinic configuration ---

func (s *Store) ClinicConfig() models.ClinicConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clinic
}

func (s *Store) UpdateClinicConfig(fn func(c *models.ClinicConfiguration)) models.ClinicConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.clinic)
	return s.clinic
}
