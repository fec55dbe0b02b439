package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference the backend sends either as a bare id or as an embedded
// object. Name is filled from whichever label field the object carries.
type Ref struct {
	ID       string
	Name     string
	Embedded bool
}

// UnmarshalJSON accepts "id", {"_id": "...", "name"|"sector"|"fullname": "..."} or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID       string `json:"_id"`
		Name     string `json:"name"`
		Sector   string `json:"sector"`
		FullName string `json:"fullname"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Embedded = true
	switch {
	case obj.Name != "":
		r.Name = obj.Name
	case obj.Sector != "":
		r.Name = obj.Sector
	default:
		r.Name = obj.FullName
	}
	return nil
}

// MarshalJSON always writes the bare id.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
