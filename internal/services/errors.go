package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials     = errors.New("correo o contraseña incorrectos")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrSessionNotFound        = errors.New("session not found")
	ErrRoleTemplateNotFound   = errors.New("role template not found")
	ErrAlertNotFound          = errors.New("alert not found")
	ErrInvalidAlertTransition = errors.New("invalid alert status transition")
	ErrPatientNotFound        = errors.New("paciente no encontrado")
	ErrConsentRequired        = errors.New("debe cargar el consentimiento informado y marcar la casilla")
)

// ValidationError maps each offending form field to its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

type fieldErrors map[string]string

func (f fieldErrors) require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
