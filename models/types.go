package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageURLList is stored as a JSON-encoded text column so the same schema
// works on postgres and sqlite.
type ImageURLList []string

func (l ImageURLList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageURLList{}
	}
	return json.Marshal(l)
}

func (l *ImageURLList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageURLList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for image url list: %T", value)
	}
}
