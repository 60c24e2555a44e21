package services

import (
	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

type ClinicService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewClinicService(st *store.Store, logger zerolog.Logger) *ClinicService {
	return &ClinicService{store: st, logger: logger.With().Str("component", "clinic").Logger()}
}

func (s *ClinicService) Get() models.ClinicConfiguration {
	return s.store.ClinicConfig()
}

// Update is a shallow merge: provided fields overwrite, omitted fields keep
// their value, and an explicit null logo clears the logo.
func (s *ClinicService) Update(patch models.ClinicConfigPatch) models.ClinicConfiguration {
	cfg := s.store.UpdateClinicConfig(func(c *models.ClinicConfiguration) {
		if patch.CenterName != nil {
			c.CenterName = *patch.CenterName
		}
		if patch.Address != nil {
			c.Address = *patch.Address
		}
		if patch.Logo.Set {
			c.Logo = patch.Logo.Value
		}
		if patch.Language != nil {
			c.Language = *patch.Language
		}
		if patch.Timezone != nil {
			c.Timezone = *patch.Timezone
		}
		if patch.DateFormat != nil {
			c.DateFormat = *patch.DateFormat
		}
		if patch.TimeFormat != nil {
			c.TimeFormat = *patch.TimeFormat
		}
		if patch.AISensitivity != nil {
			c.AISensitivity = *patch.AISensitivity
		}
	})
	s.logger.Info().Msg("clinic configuration updated")
	return cfg
}
