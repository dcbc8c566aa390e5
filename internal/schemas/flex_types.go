package schemas

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an entity identifier. The backend sends integers while the legacy mock
// payloads send strings, so both are accepted and kept in string form.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as used in request paths.
func (id ID) String() string {
	return string(id)
}

// Number is a float that also accepts numeric strings ("4.50").
type Number float64

// UnmarshalJSON accepts a JSON number, a numeric string, an empty string or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// SkillRef is a skill reference as found on the wire: either a bare name or an
// object carrying the name under one of several keys.
type SkillRef struct {
	Name string
}

type skillObject struct {
	Name      string `json:"name"`
	SkillName string `json:"skill_name"`
	Title     string `json:"title"`
	Skill     *struct {
		Name string `json:"name"`
	} `json:"skill"`
}

// UnmarshalJSON extracts a display name from any of the known skill shapes.
// Shapes it does not understand yield an empty name rather than an error.
func (s *SkillRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s.Name = ""
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &s.Name)
	case '{':
		var obj skillObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		s.Name = firstNonEmpty(obj.Name, obj.SkillName, obj.Title)
		if s.Name == "" && obj.Skill != nil {
			s.Name = obj.Skill.Name
		}
	}
	return nil
}

// MarshalJSON encodes the reference as its bare name.
func (s SkillRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
