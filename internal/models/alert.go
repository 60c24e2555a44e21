package models

const (
	PriorityAlta  = "Alta"
	PriorityMedia = "Media"
	PriorityBaja  = "Baja"
)

const (
	AlertNueva      = "Nueva"
	AlertRevisada   = "Revisada"
	AlertDescartada = "Descartada"
)

type Alert struct {
	ID          string `json:"id"`
	Priority    string `json:"priority"`
	PatientName string `json:"patientName"`
	Description string `json:"description"`
	Date        string `json:"date"` // es-ES d/m/yyyy
	Status      string `json:"status"`
}
