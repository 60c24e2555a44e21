package models

// Appointment is created implicitly when a treatment carries a follow-up date.
type Appointment struct {
	ID           string `json:"id"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"`
	PatientName  string `json:"patientName"`
	PatientID    string `json:"patientId"`
	Treatment    string `json:"treatment"`
	Professional string `json:"professional"`
}
