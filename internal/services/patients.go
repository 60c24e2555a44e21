package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
	"github.com/harentsoaR/laskin-api/internal/utils"
)

const requiredFieldMsg = "Este campo es obligatorio"

// Upload is a file already converted to a data URL.
type Upload struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

type RegisterPatientInput struct {
	Name          string  `json:"name"`
	DocumentType  string  `json:"documentType"`
	DocumentID    string  `json:"documentId"`
	BirthDate     string  `json:"birthDate"`
	Gender        string  `json:"gender"`
	MaritalStatus string  `json:"maritalStatus"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	ConsultReason string  `json:"consultReason"`
	Allergies     string  `json:"allergies"`
	Medications   string  `json:"medications"`
	ConsentSigned bool    `json:"consentSigned"`
	Consent       *Upload `json:"consent"`
}

// PatientRecord is a patient's clinical history as shown on its detail page.
type PatientRecord struct {
	Patient         *models.Patient     `json:"patient"`
	Treatments      []*models.Treatment `json:"treatments"`
	NextAppointment *models.Appointment `json:"nextAppointment,omitempty"`
}

type PatientService struct {
	store  *store.Store
	alerts *AlertEngine
	logger zerolog.Logger
	now    Clock
}

func NewPatientService(st *store.Store, alerts *AlertEngine, logger zerolog.Logger, now Clock) *PatientService {
	if now == nil {
		now = time.Now
	}
	return &PatientService{
		store:  st,
		alerts: alerts,
		logger: logger.With().Str("component", "patients").Logger(),
		now:    now,
	}
}

func validatePatient(in RegisterPatientInput) error {
	errs := fieldErrors{}
	errs.require("name", in.Name, requiredFieldMsg)
	errs.require("documentId", in.DocumentID, requiredFieldMsg)
	errs.require("birthDate", in.BirthDate, requiredFieldMsg)
	errs.require("gender", in.Gender, requiredFieldMsg)
	errs.require("maritalStatus", in.MaritalStatus, requiredFieldMsg)
	errs.require("phone", in.Phone, requiredFieldMsg)
	errs.require("email", in.Email, requiredFieldMsg)
	return errs.err()
}

// Register creates a patient with its signed consent on file and raises the
// allergy alert when one applies.
func (s *PatientService) Register(ctx context.Context, in RegisterPatientInput) (*models.Patient, error) {
	if err := validatePatient(in); err != nil {
		return nil, err
	}
	if !in.ConsentSigned || in.Consent == nil || in.Consent.DataURL == "" {
		return nil, ErrConsentRequired
	}
	if !utils.IsDataURL(in.Consent.DataURL, "image/", "application/pdf") {
		return nil, &ValidationError{Fields: map[string]string{"consent": "El consentimiento debe ser una imagen o un PDF"}}
	}

	docType := in.DocumentType
	if docType == "" {
		docType = "CC"
	}
	today := clinicToday(s.store, s.now)

	p := &models.Patient{
		Name:          in.Name,
		DocumentType:  docType,
		DocumentID:    in.DocumentID,
		BirthDate:     in.BirthDate,
		Gender:        in.Gender,
		MaritalStatus: in.MaritalStatus,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		ConsultReason: in.ConsultReason,
		Allergies:     in.Allergies,
		Medications:   in.Medications,
		ConsentSigned: in.ConsentSigned,
		FileUploaded:  true,
		LastVisit:     today,
		Documents: []models.Document{{
			ID:         "DOC-" + uuid.NewString(),
			Name:       in.Consent.Name,
			URL:        in.Consent.DataURL,
			UploadDate: today,
		}},
	}
	p = s.store.AddPatient(p)
	s.logger.Info().Str("patient_id", p.ID).Msg("patient registered")

	s.alerts.GenerateAllergyAlerts(p)
	return p, nil
}

// Search matches the term against name, email and id, ignoring case.
func (s *PatientService) Search(term string) []*models.Patient {
	term = strings.ToLower(term)
	out := []*models.Patient{}
	for _, p := range s.store.Patients() {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Email), term) ||
			strings.Contains(strings.ToLower(p.ID), term) {
			out = append(out, p)
		}
	}
	return out
}

func (s *PatientService) Get(id string) (*PatientRecord, error) {
	p, err := s.store.Patient(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	rec := &PatientRecord{Patient: p, Treatments: s.store.TreatmentsForPatient(id)}
	if rec.Treatments == nil {
		rec.Treatments = []*models.Treatment{}
	}
	apts := s.store.Appointments()
	sortAppointments(apts)
	for _, a := range apts {
		if a.PatientID == id {
			rec.NextAppointment = a
			break
		}
	}
	return rec, nil
}

// AddNote appends a clinical note; blank content is rejected.
func (s *PatientService) AddNote(id, content, author string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "La nota no puede estar vacía"}}
	}
	note := models.Note{
		ID:      "N-" + uuid.NewString(),
		Content: content,
		Date:    clinicToday(s.store, s.now),
		Author:  author,
	}
	err := s.store.UpdatePatient(id, func(p *models.Patient) {
		p.Notes = append(p.Notes, note)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &note, nil
}
