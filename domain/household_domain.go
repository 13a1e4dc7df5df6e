package domain

import (
	"errors"
)

var (
	MessageSuccessGetHousehold      = "household retrieved successfully"
	MessageSuccessGetHouseholds     = "households retrieved successfully"
	MessageSuccessCreateHousehold   = "household created successfully"
	MessageSuccessUpdateHousehold   = "household updated successfully"
	MessageSuccessDeleteHousehold   = "household deleted successfully"
	MessageSuccessCreateInvitation  = "invitation created successfully"
	MessageSuccessAcceptInvitation  = "invitation accepted successfully"
	MessageSuccessRejectInvitation  = "invitation rejected successfully"
	MessageSuccessGetInvitations    = "pending invitations retrieved successfully"

	MessageFailedGetHousehold     = "failed to retrieve household"
	MessageFailedGetHouseholds    = "failed to retrieve households"
	MessageFailedCreateHousehold  = "failed to create household"
	MessageFailedUpdateHousehold  = "failed to update household"
	MessageFailedDeleteHousehold  = "failed to delete household"
	MessageFailedCreateInvitation = "failed to create invitation"
	MessageFailedAcceptInvitation = "failed to accept invitation"
	MessageFailedRejectInvitation = "failed to reject invitation"
	MessageFailedGetInvitations   = "failed to retrieve pending invitations"

	ErrHouseholdNotFound         = errors.New("household not found")
	ErrHouseholdNameRequired     = errors.New("household name must not be empty")
	ErrHouseholdOwnerRequired    = errors.New("household owner must not be empty")
	ErrNotHouseholdOwner         = errors.New("only the owner can delete a household")
	ErrNotParticipant            = errors.New("user is not a participant of this household")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationNotPending      = errors.New("invitation is no longer pending")
	ErrInviteeEmailRequired      = errors.New("invitee email must not be empty")
	ErrInvitationAlreadyAccepted = errors.New("an invitation for this email was already accepted")
	ErrInvitationWrongEmail      = errors.New("this invitation is not for your email address")
)

type (
	CreateHouseholdRequest struct {
		Name string `json:"name" validate:"required"`
	}

	UpdateHouseholdRequest struct {
		Name       string   `json:"name" validate:"omitempty"`
		Categories []string `json:"categories" validate:"omitempty,dive,required"`
		Locations  []string `json:"locations" validate:"omitempty,dive,required"`
	}

	HouseholdResponse struct {
		ID           string   `json:"id"`
		OwnerUID     string   `json:"owner_uid"`
		Name         string   `json:"name"`
		Participants []string `json:"participants"`
		Categories   []string `json:"categories"`
		Locations    []string `json:"locations"`
	}

	AddParticipantRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}

	CreateInvitationRequest struct {
		HouseholdID string `json:"household_id" validate:"required,uuid"`
		Email       string `json:"email" validate:"required,email"`
	}

	InvitationResponse struct {
		ID            string `json:"id"`
		HouseholdID   string `json:"household_id"`
		HouseholdName string `json:"household_name"`
		InviterUID    string `json:"inviter_uid"`
		InviterName   string `json:"inviter_name,omitempty"`
		InviteeEmail  string `json:"invitee_email"`
		Status        string `json:"status"`
		CreatedAt     int64  `json:"created_at"`
	}
)
