package models

type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"` // data URL
	UploadDate string `json:"uploadDate"`
}

type Note struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Author  string `json:"author"`
}

type Patient struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	DocumentType  string        `json:"documentType"`
	DocumentID    string        `json:"documentId"`
	BirthDate     string        `json:"birthDate"`
	Gender        string        `json:"gender"`
	MaritalStatus string        `json:"maritalStatus"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	ConsultReason string        `json:"consultReason"`
	Allergies     string        `json:"allergies"`
	Medications   string        `json:"medications"`
	ConsentSigned bool          `json:"consentSigned"`
	FileUploaded  bool          `json:"fileUploaded"`
	LastVisit     string        `json:"lastVisit,omitempty"`
	Documents     []Document    `json:"documents,omitempty"`
	Treatments    []Treatment   `json:"treatments,omitempty"`
	Notes         []Note        `json:"notes,omitempty"`
	Appointments  []Appointment `json:"appointments,omitempty"`
}

// Clone copies the patient together with its collections.
func (p *Patient) Clone() *Patient {
	if p == nil {
		return nil
	}
	c := *p
	c.Documents = append([]Document(nil), p.Documents...)
	c.Notes = append([]Note(nil), p.Notes...)
	c.Appointments = append([]Appointment(nil), p.Appointments...)
	c.Treatments = nil
	for _, t := range p.Treatments {
		c.Treatments = append(c.Treatments, *t.Clone())
	}
	return &c
}
