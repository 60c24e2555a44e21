package models

import (
	"bytes"
	"encoding/json"
)

type ClinicConfiguration struct {
	CenterName    string  `json:"centerName"`
	Address       string  `json:"address"`
	Logo          *string `json:"logo,omitempty"`
	Language      string  `json:"language"`
	Timezone      string  `json:"timezone"`
	DateFormat    string  `json:"dateFormat"`
	TimeFormat    string  `json:"timeFormat"`
	AISensitivity int     `json:"aiSensitivity"`
}

// ClinicConfigPatch is a partial update. A nil field leaves the stored value
// alone; Logo distinguishes "absent" from an explicit null, which clears it.
type ClinicConfigPatch struct {
	CenterName    *string        `json:"centerName"`
	Address       *string        `json:"address"`
	Logo          OptionalString `json:"logo"`
	Language      *string        `json:"language"`
	Timezone      *string        `json:"timezone"`
	DateFormat    *string        `json:"dateFormat"`
	TimeFormat    *string        `json:"timeFormat"`
	AISensitivity *int           `json:"aiSensitivity"`
}

// OptionalString records whether a JSON key was present at all.
type OptionalString struct {
	Set   bool
	Value *string
}

func SomeString(s string) OptionalString { return OptionalString{Set: true, Value: &s} }

func NullString() OptionalString { return OptionalString{Set: true} }

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
