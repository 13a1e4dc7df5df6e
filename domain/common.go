package domain

import (
	"errors"
	"os"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// IsBusinessError reports whether err belongs to the recoverable taxonomy
// (validation, not-found, authorization, illegal state). Anything else is
// treated as an infrastructure failure by the transport layer.
func IsBusinessError(err error) bool {
	for _, candidate := range businessErrors {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

var businessErrors = []error{
	ErrParseUUID,
	ErrUserNotAllowed,
	ErrTokenExpired,
	ErrTokenInvalid,
	ErrHouseholdNotFound,
	ErrHouseholdNameRequired,
	ErrHouseholdOwnerRequired,
	ErrNotHouseholdOwner,
	ErrNotParticipant,
	ErrInvitationNotFound,
	ErrInvitationNotPending,
	ErrInviteeEmailRequired,
	ErrInvitationAlreadyAccepted,
	ErrInvitationWrongEmail,
	ErrProductNotFound,
	ErrInvalidExpirationDate,
	ErrBarcodeRequired,
	ErrBarcodeNameRequired,
	ErrBarcodeNameNotFound,
	ErrUserNotFound,
	ErrEmailAlreadyRegistered,
	ErrInvalidCredentials,
	ErrNoIngredients,
	ErrShoppingListItemNotFound,
}
