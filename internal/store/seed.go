package store

import (
	"fmt"

	"github.com/harentsoaR/laskin-api/internal/models"
)

// PasswordHasher turns a plaintext seed password into its stored form.
type PasswordHasher func(password string) (string, error)

type seedUser struct {
	email    string
	password string
	role     string
	name     string
	title    string
	roleType string
}

var seedUsers = []seedUser{
	{
		email:    "anaperez@laskin.com.co",
		password: "Anaoperez19*",
		role:     models.RolePersonal,
		name:     "Ana Pérez",
		title:    "Dermatóloga",
		roleType: "Dermatólogo",
	},
	{
		email:    "administrador@laskin.com.co",
		password: "administrador19*",
		role:     models.RoleAdmin,
		name:     "Admin Laskin",
		roleType: "Admin",
	},
}

func DefaultClinicConfiguration() models.ClinicConfiguration {
	return models.ClinicConfiguration{
		CenterName:    "Centro Estético Laskin",
		Address:       "Av. Principal 123, Ciudad, País",
		Language:      "es",
		Timezone:      "utc-5",
		DateFormat:    "dmy",
		TimeFormat:    "24",
		AISensitivity: 50,
	}
}

// DefaultRoleTemplates returns the four built-in roles in display order.
func DefaultRoleTemplates() ([]string, map[string]models.RoleTemplate) {
	order := []string{"Dermatólogo", "Esteticista", "Personal Administrativo", "Call Center"}
	templates := map[string]models.RoleTemplate{
		"Dermatólogo": {
			Description: "Acceso completo a historias clínicas y tratamientos.",
			Permissions: models.UserPermissions{
				PatientManagement:       models.PatientManagementPermissions{ViewClinicalHistory: true, AddNotesAndPhotos: true, EditPatientInfo: true},
				AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true, ViewOthersSchedule: true, AddTreatmentOrPatient: true},
				Billing:                 models.BillingPermissions{ViewPaymentHistory: true},
			},
		},
		"Esteticista": {
			Description: "Acceso a agenda, registro de tratamientos y notas.",
			Permissions: models.UserPermissions{
				PatientManagement:       models.PatientManagementPermissions{ViewClinicalHistory: true, EditPatientInfo: true},
				AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true, AddTreatmentOrPatient: true},
			},
		},
		"Personal Administrativo": {
			Description: "Gestión de citas, facturación y datos de pacientes.",
			Permissions: models.UserPermissions{
				PatientManagement:       models.PatientManagementPermissions{EditPatientInfo: true},
				AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true, ViewOthersSchedule: true},
				Billing:                 models.BillingPermissions{ViewPaymentHistory: true, GenerateInvoices: true, ApplyDiscounts: true},
			},
		},
		"Call Center": {
			Description: "Acceso limitado para agendar y confirmar citas.",
			Permissions: models.UserPermissions{
				AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true},
			},
		},
	}
	return order, templates
}

func allPermissions() models.UserPermissions {
	return models.UserPermissions{
		PatientManagement:       models.PatientManagementPermissions{ViewClinicalHistory: true, AddNotesAndPhotos: true, EditPatientInfo: true},
		AppointmentsAndSchedule: models.AppointmentsPermissions{ViewOwnSchedule: true, ViewOthersSchedule: true, AddTreatmentOrPatient: true},
		Billing:                 models.BillingPermissions{ViewPaymentHistory: true, GenerateInvoices: true, ApplyDiscounts: true},
	}
}

// NewSeeded builds the store the clinic starts with: four role templates, the
// two-user staff roster and empty clinical collections.
func NewSeeded(hash PasswordHasher) (*Store, error) {
	s := New(DefaultClinicConfiguration())

	order, templates := DefaultRoleTemplates()
	for _, name := range order {
		s.AddRoleTemplate(name, templates[name])
	}

	for _, su := range seedUsers {
		hashed, err := hash(su.password)
		if err != nil {
			return nil, fmt.Errorf("hashing seed password for %s: %w", su.email, err)
		}
		var perms models.UserPermissions
		if t, ok := templates[su.roleType]; ok {
			perms = t.Permissions
		} else {
			perms = allPermissions()
		}
		s.AddUser(&models.User{
			Email:       su.email,
			Password:    hashed,
			Role:        su.role,
			Name:        su.name,
			Title:       su.title,
			RoleType:    su.roleType,
			Permissions: &perms,
		})
	}
	return s, nil
}
