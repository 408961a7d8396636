package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SlotList stores the master slot template as a JSON column so the
// template keeps its order across Postgres and sqlite.
type SlotList []string

func (s SlotList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SlotList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into SlotList", value)
	}
}

// AppointmentOption is a treatment with its master slot template. The
// template is date-agnostic; occupancy is computed per date at read time.
type AppointmentOption struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique"`
	Slots     SlotList  `json:"slots" gorm:"type:text"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
