package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
)

// FollowUpNotifier is told about every follow-up appointment a treatment
// creates.
type FollowUpNotifier interface {
	SendFollowUpConfirmation(patient *models.Patient, apt *models.Appointment)
}

// NotificationService sends SMS confirmations through a Textbelt-compatible
// endpoint.
type NotificationService struct {
	apiURL string
	apiKey string
	client *http.Client
	logger zerolog.Logger
	wg     sync.WaitGroup
}

func NewNotificationService(apiURL, apiKey string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With().Str("component", "notifications").Logger(),
	}
}

// SendFollowUpConfirmation sends in the background so the request that
// registered the treatment does not wait on the SMS provider.
func (s *NotificationService) SendFollowUpConfirmation(patient *models.Patient, apt *models.Appointment) {
	if patient.Phone == "" {
		s.logger.Info().Str("patient_id", patient.ID).Msg("SMS not sent: patient has no phone number")
		return
	}
	if s.apiKey == "" {
		s.logger.Debug().Msg("SMS not sent: no API key configured")
		return
	}

	body := fmt.Sprintf(
		"Cita de control confirmada: %s para %s el %s a las %s.",
		apt.Treatment,
		patient.Name,
		apt.Date,
		apt.Time,
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.sendSMS(ctx, patient.Phone, body); err != nil {
			s.logger.Error().Err(err).Str("patient_id", patient.ID).Msg("SMS delivery failed")
			return
		}
		s.logger.Info().Str("patient_id", patient.ID).Msg("SMS sent")
	}()
}

// Wait blocks until every in-flight SMS has finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) sendSMS(ctx context.Context, phone, message string) error {
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to SMS provider: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding SMS provider response: %w", err)
	}
	if !result.Success {
		return errors.New("SMS provider refused message: " + result.Error)
	}
	return nil
}
