package services

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
	"github.com/harentsoaR/laskin-api/internal/utils"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

var fixedNow = time.Date(2024, time.July, 5, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewSeeded(utils.PasswordHasher(bcrypt.MinCost))
	require.NoError(t, err)
	return st
}

func newTestAlertEngine(st *store.Store) *AlertEngine {
	return NewAlertEngine(st, zerolog.Nop(),
		WithAlertClock(fixedClock),
		WithAlertRand(rand.New(rand.NewSource(1))),
	)
}

func validPatientInput() RegisterPatientInput {
	return RegisterPatientInput{
		Name:          "Laura Gómez",
		DocumentID:    "1020304050",
		BirthDate:     "1990-04-12",
		Gender:        "Femenino",
		MaritalStatus: "Soltera",
		Phone:         "+573001234567",
		Email:         "laura@example.com",
		Allergies:     "Ninguna",
		ConsentSigned: true,
		Consent:       &Upload{Name: "consentimiento.png", DataURL: pngDataURL},
	}
}

type recordedNotification struct {
	patient *models.Patient
	apt     *models.Appointment
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []recordedNotification
}

func (f *fakeNotifier) SendFollowUpConfirmation(p *models.Patient, apt *models.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedNotification{patient: p, apt: apt})
}
