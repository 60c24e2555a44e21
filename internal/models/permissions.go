package models

// Permission categories.
const (
	CategoryPatientManagement       = "patientManagement"
	CategoryAppointmentsAndSchedule = "appointmentsAndSchedule"
	CategoryBilling                 = "billing"
)

// Permission names, grouped by category.
const (
	PermViewClinicalHistory = "viewClinicalHistory"
	PermAddNotesAndPhotos   = "addNotesAndPhotos"
	PermEditPatientInfo     = "editPatientInfo"

	PermViewOwnSchedule       = "viewOwnSchedule"
	PermViewOthersSchedule    = "viewOthersSchedule"
	PermAddTreatmentOrPatient = "addTreatmentOrPatient"

	PermViewPaymentHistory = "viewPaymentHistory"
	PermGenerateInvoices   = "generateInvoices"
	PermApplyDiscounts     = "applyDiscounts"
)

type PatientManagementPermissions struct {
	ViewClinicalHistory bool `json:"viewClinicalHistory"`
	AddNotesAndPhotos   bool `json:"addNotesAndPhotos"`
	EditPatientInfo     bool `json:"editPatientInfo"`
}

type AppointmentsPermissions struct {
	ViewOwnSchedule       bool `json:"viewOwnSchedule"`
	ViewOthersSchedule    bool `json:"viewOthersSchedule"`
	AddTreatmentOrPatient bool `json:"addTreatmentOrPatient"`
}

type BillingPermissions struct {
	ViewPaymentHistory bool `json:"viewPaymentHistory"`
	GenerateInvoices   bool `json:"generateInvoices"`
	ApplyDiscounts     bool `json:"applyDiscounts"`
}

// UserPermissions is a closed set of boolean flags. All fields are values,
// so copying the struct yields an independent permission set.
type UserPermissions struct {
	PatientManagement       PatientManagementPermissions `json:"patientManagement"`
	AppointmentsAndSchedule AppointmentsPermissions      `json:"appointmentsAndSchedule"`
	Billing                 BillingPermissions           `json:"billing"`
}

// Lookup resolves a flag by category and permission name. ok is false when
// the pair does not name a known flag.
func (p UserPermissions) Lookup(category, permission string) (value bool, ok bool) {
	switch category {
	case CategoryPatientManagement:
		switch permission {
		case PermViewClinicalHistory:
			return p.PatientManagement.ViewClinicalHistory, true
		case PermAddNotesAndPhotos:
			return p.PatientManagement.AddNotesAndPhotos, true
		case PermEditPatientInfo:
			return p.PatientManagement.EditPatientInfo, true
		}
	case CategoryAppointmentsAndSchedule:
		switch permission {
		case PermViewOwnSchedule:
			return p.AppointmentsAndSchedule.ViewOwnSchedule, true
		case PermViewOthersSchedule:
			return p.AppointmentsAndSchedule.ViewOthersSchedule, true
		case PermAddTreatmentOrPatient:
			return p.AppointmentsAndSchedule.AddTreatmentOrPatient, true
		}
	case CategoryBilling:
		switch permission {
		case PermViewPaymentHistory:
			return p.Billing.ViewPaymentHistory, true
		case PermGenerateInvoices:
			return p.Billing.GenerateInvoices, true
		case PermApplyDiscounts:
			return p.Billing.ApplyDiscounts, true
		}
	}
	return false, false
}

// Flatten lists every flag as "category.permission" → value.
func (p UserPermissions) Flatten() map[string]bool {
	return map[string]bool{
		CategoryPatientManagement + "." + PermViewClinicalHistory:         p.PatientManagement.ViewClinicalHistory,
		CategoryPatientManagement + "." + PermAddNotesAndPhotos:           p.PatientManagement.AddNotesAndPhotos,
		CategoryPatientManagement + "." + PermEditPatientInfo:             p.PatientManagement.EditPatientInfo,
		CategoryAppointmentsAndSchedule + "." + PermViewOwnSchedule:       p.AppointmentsAndSchedule.ViewOwnSchedule,
		CategoryAppointmentsAndSchedule + "." + PermViewOthersSchedule:    p.AppointmentsAndSchedule.ViewOthersSchedule,
		CategoryAppointmentsAndSchedule + "." + PermAddTreatmentOrPatient: p.AppointmentsAndSchedule.AddTreatmentOrPatient,
		CategoryBilling + "." + PermViewPaymentHistory:                    p.Billing.ViewPaymentHistory,
		CategoryBilling + "." + PermGenerateInvoices:                      p.Billing.GenerateInvoices,
		CategoryBilling + "." + PermApplyDiscounts:                        p.Billing.ApplyDiscounts,
	}
}
