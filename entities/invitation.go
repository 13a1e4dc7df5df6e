package entities

import (
	"github.com/google/uuid"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

// Invitation carries a denormalized household name so pending invitations can
// be listed without fetching the household. Status only ever leaves pending.
type Invitation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	HouseholdID   uuid.UUID `gorm:"type:uuid;index" json:"household_id"`
	HouseholdName string    `json:"household_name"`
	InviterUID    uuid.UUID `gorm:"type:uuid" json:"inviter_uid"`
	InviteeEmail  string    `gorm:"index" json:"invitee_email"`
	Status        string    `json:"status"`
	CreatedAt     int64     `json:"created_at"` // epoch seconds, set by gorm

	Household *Household `gorm:"foreignKey:HouseholdID"`
}
