package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultCategories and DefaultLocations seed a household's label lists when
// none were supplied.
var (
	DefaultCategories = []string{"Veggies", "Fruits", "Baking", "Spices", "Others"}
	DefaultLocations  = []string{"Pantry", "Fridge", "Freezer"}
)

type Household struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerUID   uuid.UUID      `gorm:"type:uuid;index" json:"owner_uid"`
	Name       string         `json:"name"`
	Categories datatypes.JSON `json:"categories"`
	Locations  datatypes.JSON `json:"locations"`

	Participants []*HouseholdParticipant `gorm:"foreignKey:HouseholdID"`
	Timestamp
}

// ParticipantUIDs returns the participant user ids in insertion order.
func (h *Household) ParticipantUIDs() []string {
	uids := make([]string, 0, len(h.Participants))
	for _, p := range h.Participants {
		uids = append(uids, p.UserID.String())
	}
	return uids
}

// HasParticipant reports whether uid is a member of the household.
func (h *Household) HasParticipant(uid string) bool {
	for _, p := range h.Participants {
		if p.UserID.String() == uid {
			return true
		}
	}
	return false
}

type HouseholdParticipant struct {
	HouseholdID uuid.UUID `gorm:"type:uuid;primary_key" json:"household_id"`
	UserID      uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
	User      *User      `gorm:"foreignKey:UserID"`
	Timestamp
}
