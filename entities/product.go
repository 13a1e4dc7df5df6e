package entities

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Barcode         string    `json:"barcode,omitempty"`
	Category        string    `json:"category"`
	Created         int64     `json:"created"`          // epoch millis
	Expires         int64     `json:"expires"`          // epoch millis, 0 = does not expire
	Location        string    `json:"location"`
	ProductName     string    `json:"product_name"`
	HouseholdID     uuid.UUID `gorm:"type:uuid;index" json:"household_id"`
	Wasted          bool      `json:"wasted"`
	WastedTimestamp int64     `json:"wasted_timestamp"` // epoch millis, 0 = not wasted
	Note            string    `json:"note"`
	ImageURL        string    `json:"image_url,omitempty"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
}

func (p *Product) DoesExpire() bool {
	return p.Expires != 0
}

func (p *Product) IsExpired() bool {
	return p.DoesExpire() && p.Expires < time.Now().UnixMilli()
}
