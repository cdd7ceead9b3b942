package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSON-encoded list of strings stored in a text column
// (cadastral numbers, features, communications). Encoding happens here,
// at the storage edge, so the rest of the code only ever sees []string.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// FileAttachment is a document linked from a plot description.
type FileAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Description is the structured plot description: free text plus attached
// documents. Stored as one JSON column.
type Description struct {
	Text        string           `json:"text"`
	Attachments []FileAttachment `json:"attachments"`
}

func (d Description) Value() (driver.Value, error) {
	if d.Attachments == nil {
		d.Attachments = []FileAttachment{}
	}
	return json.Marshal(d)
}

func (d *Description) Scan(value interface{}) error {
	if value == nil {
		*d = Description{Attachments: []FileAttachment{}}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into Description", value)
	}
}
