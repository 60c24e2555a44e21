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

const defaultFollowUpTime = "10:00 AM"

type RegisterTreatmentInput struct {
	PatientID       string           `json:"patientId"`
	Date            string           `json:"date"`
	Professional    string           `json:"professional"`
	TreatmentName   string           `json:"treatmentName"`
	Zones           string           `json:"zones"`
	Description     string           `json:"description"`
	Products        []models.Product `json:"products"`
	Observations    string           `json:"observations"`
	Recommendations string           `json:"recommendations"`
	FollowUpDate    string           `json:"followUpDate"`
	FollowUpTime    string           `json:"followUpTime"`
	Notes           string           `json:"notes"`
	BeforeImage     string           `json:"beforeImage"`
	AfterImage      string           `json:"afterImage"`
}

type TreatmentService struct {
	store    *store.Store
	alerts   *AlertEngine
	notifier FollowUpNotifier
	logger   zerolog.Logger
	now      Clock
}

func NewTreatmentService(st *store.Store, alerts *AlertEngine, notifier FollowUpNotifier, logger zerolog.Logger, now Clock) *TreatmentService {
	if now == nil {
		now = time.Now
	}
	return &TreatmentService{
		store:    st,
		alerts:   alerts,
		notifier: notifier,
		logger:   logger.With().Str("component", "treatments").Logger(),
		now:      now,
	}
}

func validateTreatment(in RegisterTreatmentInput) error {
	errs := fieldErrors{}
	errs.require("patientId", in.PatientID, "Debe seleccionar un paciente")
	errs.require("date", in.Date, "Debe ingresar la fecha del tratamiento")
	errs.require("professional", in.Professional, "Debe ingresar el profesional a cargo")
	errs.require("treatmentName", in.TreatmentName, "Debe ingresar el nombre del tratamiento")
	errs.require("zones", in.Zones, "Debe ingresar las zonas tratadas")
	errs.require("description", in.Description, "Debe ingresar la descripción del procedimiento")
	if in.BeforeImage != "" && !utils.IsDataURL(in.BeforeImage, "image/") {
		errs["beforeImage"] = "La foto debe ser una imagen"
	}
	if in.AfterImage != "" && !utils.IsDataURL(in.AfterImage, "image/") {
		errs["afterImage"] = "La foto debe ser una imagen"
	}
	return errs.err()
}

// Register records a procedure against a patient. A follow-up date books an
// appointment, and every treatment raises a follow-up alert.
func (s *TreatmentService) Register(ctx context.Context, in RegisterTreatmentInput) (*models.Treatment, error) {
	if err := validateTreatment(in); err != nil {
		return nil, err
	}

	patient, err := s.store.Patient(in.PatientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error().Str("patient_id", in.PatientID).Msg("treatment for unknown patient")
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	products := []models.Product{}
	for _, p := range in.Products {
		if p.Name != "" {
			products = append(products, p)
		}
	}

	t := &models.Treatment{
		ID:              "T-" + uuid.NewString(),
		PatientID:       patient.ID,
		PatientName:     patient.Name,
		Date:            in.Date,
		Professional:    in.Professional,
		TreatmentName:   in.TreatmentName,
		Zones:           in.Zones,
		Description:     in.Description,
		Products:        products,
		Observations:    in.Observations,
		Recommendations: in.Recommendations,
		FollowUpDate:    in.FollowUpDate,
		FollowUpTime:    in.FollowUpTime,
		BeforeImage:     in.BeforeImage,
		AfterImage:      in.AfterImage,
	}

	var apt *models.Appointment
	if in.FollowUpDate != "" {
		aptTime := in.FollowUpTime
		if aptTime == "" {
			aptTime = defaultFollowUpTime
		}
		apt = &models.Appointment{
			ID:           "APT-" + uuid.NewString(),
			Date:         in.FollowUpDate,
			Time:         aptTime,
			PatientName:  patient.Name,
			PatientID:    patient.ID,
			Treatment:    in.TreatmentName,
			Professional: in.Professional,
		}
	}

	today := clinicToday(s.store, s.now)
	err = s.store.RecordTreatment(t, apt, func(p *models.Patient) {
		p.Treatments = append(p.Treatments, *t.Clone())
		if in.Notes != "" {
			p.Notes = append(p.Notes, models.Note{
				ID:      "N-" + uuid.NewString(),
				Content: in.Notes,
				Date:    today,
				Author:  in.Professional,
			})
		}
		if apt != nil {
			p.Appointments = append(p.Appointments, *apt)
		}
		p.LastVisit = in.Date
		patient = p.Clone()
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("treatment_id", t.ID).Str("patient_id", patient.ID).Msg("treatment registered")

	if apt != nil && s.notifier != nil {
		s.notifier.SendFollowUpConfirmation(patient, apt)
	}
	s.alerts.GenerateFollowUpAlert(patient.ID, patient.Name, t.TreatmentName)
	return t, nil
}

// List returns treatments in registration order whose patient name,
// treatment name or professional contains term, ignoring case.
func (s *TreatmentService) List(term string) []*models.Treatment {
	term = strings.ToLower(term)
	out := []*models.Treatment{}
	for _, t := range s.store.Treatments() {
		if term == "" ||
			strings.Contains(strings.ToLower(t.PatientName), term) ||
			strings.Contains(strings.ToLower(t.TreatmentName), term) ||
			strings.Contains(strings.ToLower(t.Professional), term) {
			out = append(out, t)
		}
	}
	return out
}
