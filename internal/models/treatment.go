package models

type Product struct {
	Name     string `json:"name"`
	Lot      string `json:"lot"`
	Quantity string `json:"quantity"`
}

type Treatment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	Date            string    `json:"date"`
	Professional    string    `json:"professional"`
	TreatmentName   string    `json:"treatmentName"`
	Zones           string    `json:"zones"`
	Description     string    `json:"description"`
	Products        []Product `json:"products"`
	Observations    string    `json:"observations"`
	Recommendations string    `json:"recommendations"`
	FollowUpDate    string    `json:"followUpDate,omitempty"`
	FollowUpTime    string    `json:"followUpTime,omitempty"`
	BeforeImage     string    `json:"beforeImage,omitempty"` // data URL
	AfterImage      string    `json:"afterImage,omitempty"`  // data URL
}

func (t *Treatment) Clone() *Treatment {
	c := *t
	if t.Products != nil {
		c.Products = make([]Product, len(t.Products))
		copy(c.Products, t.Products)
	}
	return &c
}
