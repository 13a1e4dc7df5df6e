package entities

import (
	"github.com/google/uuid"
)

type ShoppingListItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductName        string    `json:"product_name"`
	HouseholdID        uuid.UUID `gorm:"type:uuid;index" json:"household_id"`
	AddedBy            uuid.UUID `gorm:"type:uuid" json:"added_by"`
	AddedTimestamp     int64     `json:"added_timestamp"`     // epoch millis
	Completed          bool      `json:"completed"`
	CompletedTimestamp int64     `json:"completed_timestamp"` // epoch millis, 0 = open
	Note               string    `json:"note"`
	Quantity           int       `json:"quantity"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
}
