package household

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/internal/utils"
	"github.com/pantry-guardian/backend/internal/utils/mailing"
	"gorm.io/gorm"
)

type (
	// UserDirectory is the slice of the user store the membership manager
	// needs: resolving a user id to its profile (email, display name).
	UserDirectory interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	HouseholdService interface {
		GetHousehold(ctx context.Context, householdID, userID string) (domain.HouseholdResponse, error)
		GetHouseholdsForUser(ctx context.Context, userID string) ([]domain.HouseholdResponse, error)
		CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error)
		UpdateHousehold(ctx context.Context, householdID string, req domain.UpdateHouseholdRequest, userID string) (domain.HouseholdResponse, error)
		DeleteHousehold(ctx context.Context, householdID, userID string) error
		UserHasHousehold(ctx context.Context, userID, householdID string) (bool, error)
		AddParticipant(ctx context.Context, householdID, actingUserID, newUserID string) error

		CreateInvitation(ctx context.Context, req domain.CreateInvitationRequest, inviterID string) (domain.InvitationResponse, error)
		AcceptInvitation(ctx context.Context, invitationID, userID string) (string, error)
		RejectInvitation(ctx context.Context, invitationID, userID string) error
		GetPendingInvitations(ctx context.Context, userID string) ([]domain.InvitationResponse, error)
	}

	householdService struct {
		householdRepository HouseholdRepository
		users               UserDirectory
	}
)

func NewHouseholdService(householdRepository HouseholdRepository, users UserDirectory) HouseholdService {
	return &householdService{
		householdRepository: householdRepository,
		users:               users,
	}
}

func (s *householdService) GetHousehold(ctx context.Context, householdID, userID string) (domain.HouseholdResponse, error) {
	household, err := s.householdRepository.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HouseholdResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.HouseholdResponse{}, err
	}

	if !household.HasParticipant(userID) {
		return domain.HouseholdResponse{}, domain.ErrNotParticipant
	}

	return householdToResponse(household), nil
}

func (s *householdService) GetHouseholdsForUser(ctx context.Context, userID string) ([]domain.HouseholdResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	owned, err := s.householdRepository.GetOwnedHouseholds(ctx, uid)
	if err != nil {
		return nil, err
	}

	participant, err := s.householdRepository.GetParticipantHouseholds(ctx, uid)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(owned))
	response := make([]domain.HouseholdResponse, 0, len(owned)+len(participant))
	for _, h := range owned {
		seen[h.ID] = true
		response = append(response, householdToResponse(h))
	}
	for _, h := range participant {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		response = append(response, householdToResponse(h))
	}

	return response, nil
}

func (s *householdService) CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrParseUUID
	}
	if req.Name == "" {
		return domain.HouseholdResponse{}, domain.ErrHouseholdNameRequired
	}

	household := &entities.Household{
		ID:         uuid.New(),
		OwnerUID:   uid,
		Name:       req.Name,
		Categories: mustMarshalLabels(entities.DefaultCategories),
		Locations:  mustMarshalLabels(entities.DefaultLocations),
		Participants: []*entities.HouseholdParticipant{
			{UserID: uid},
		},
	}

	if err := s.householdRepository.SaveHousehold(ctx, household); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return householdToResponse(household), nil
}

func (s *householdService) UpdateHousehold(ctx context.Context, householdID string, req domain.UpdateHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	household, err := s.householdRepository.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HouseholdResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.HouseholdResponse{}, err
	}

	if !household.HasParticipant(userID) {
		return domain.HouseholdResponse{}, domain.ErrNotParticipant
	}

	if req.Name != "" {
		household.Name = req.Name
	}
	if req.Categories != nil {
		household.Categories = mustMarshalLabels(req.Categories)
	}
	if req.Locations != nil {
		household.Locations = mustMarshalLabels(req.Locations)
	}

	if household.OwnerUID == uuid.Nil {
		return domain.HouseholdResponse{}, domain.ErrHouseholdOwnerRequired
	}

	if err := s.householdRepository.SaveHousehold(ctx, household); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return householdToResponse(household), nil
}

func (s *householdService) DeleteHousehold(ctx context.Context, householdID, userID string) error {
	household, err := s.householdRepository.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrHouseholdNotFound
		}
		return err
	}

	if household.OwnerUID.String() != userID {
		return domain.ErrNotHouseholdOwner
	}

	// Products and invitations of the household are intentionally left behind.
	return s.householdRepository.DeleteHousehold(ctx, householdID)
}

func (s *householdService) UserHasHousehold(ctx context.Context, userID, householdID string) (bool, error) {
	household, err := s.householdRepository.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return household.HasParticipant(userID), nil
}

func (s *householdService) AddParticipant(ctx context.Context, householdID, actingUserID, newUserID string) error {
	newUID, err := uuid.Parse(newUserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	household, err := s.householdRepository.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrHouseholdNotFound
		}
		return err
	}

	if !household.HasParticipant(actingUserID) {
		return domain.ErrNotParticipant
	}

	if household.HasParticipant(newUserID) {
		return nil
	}

	return s.householdRepository.AddParticipant(ctx, household.ID, newUID)
}

func (s *householdService) CreateInvitation(ctx context.Context, req domain.CreateInvitationRequest, inviterID string) (domain.InvitationResponse, error) {
	inviterUID, err := uuid.Parse(inviterID)
	if err != nil {
		return domain.InvitationResponse{}, domain.ErrParseUUID
	}
	if req.Email == "" {
		return domain.InvitationResponse{}, domain.ErrInviteeEmailRequired
	}

	household, err := s.householdRepository.GetHousehold(ctx, req.HouseholdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InvitationResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.InvitationResponse{}, err
	}

	if !household.HasParticipant(inviterID) {
		return domain.InvitationResponse{}, domain.ErrNotParticipant
	}

	existing, err := s.householdRepository.GetEffectiveInvitationForEmail(ctx, req.Email, household.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.InvitationResponse{}, err
	}
	if existing != nil {
		switch existing.Status {
		case entities.InvitationPending:
			// Inviting the same email again is idempotent.
			return invitationToResponse(existing), nil
		case entities.InvitationAccepted:
			return domain.InvitationResponse{}, domain.ErrInvitationAlreadyAccepted
		}
	}
	// Rejected invitations are terminal; a fresh one starts the flow over.

	invitation := &entities.Invitation{
		ID:            uuid.New(),
		HouseholdID:   household.ID,
		HouseholdName: household.Name,
		InviterUID:    inviterUID,
		InviteeEmail:  req.Email,
		Status:        entities.InvitationPending,
	}

	if err := s.householdRepository.SaveInvitation(ctx, invitation); err != nil {
		return domain.InvitationResponse{}, err
	}

	s.sendInvitationMail(ctx, invitation)

	return invitationToResponse(invitation), nil
}

func (s *householdService) AcceptInvitation(ctx context.Context, invitationID, userID string) (string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	invitation, err := s.householdRepository.GetInvitation(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInvitationNotFound
		}
		return "", err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if invitation.InviteeEmail != user.Email {
		return "", domain.ErrInvitationWrongEmail
	}
	if invitation.Status != entities.InvitationPending {
		return "", domain.ErrInvitationNotPending
	}

	if err := s.householdRepository.AcceptInvitation(ctx, invitationID, uid); err != nil {
		return "", err
	}

	return invitation.HouseholdID.String(), nil
}

func (s *householdService) RejectInvitation(ctx context.Context, invitationID, userID string) error {
	invitation, err := s.householdRepository.GetInvitation(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvitationNotFound
		}
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if invitation.InviteeEmail != user.Email {
		return domain.ErrInvitationWrongEmail
	}
	if invitation.Status != entities.InvitationPending {
		return domain.ErrInvitationNotPending
	}

	invitation.Status = entities.InvitationRejected
	return s.householdRepository.SaveInvitation(ctx, invitation)
}

func (s *householdService) GetPendingInvitations(ctx context.Context, userID string) ([]domain.InvitationResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	invitations, err := s.householdRepository.GetPendingInvitationsForEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	response := make([]domain.InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		item := invitationToResponse(invitation)
		if inviter, err := s.users.GetUserByID(ctx, invitation.InviterUID.String()); err == nil {
			item.InviterName = inviter.Name
		} else {
			item.InviterName = "Unknown"
		}
		response = append(response, item)
	}

	return response, nil
}

// sendInvitationMail is fire-and-forget; delivery failures are only logged.
func (s *householdService) sendInvitationMail(ctx context.Context, invitation *entities.Invitation) {
	if utils.GetConfig("SMTP_HOST") == "" {
		return
	}

	inviterName := "Someone"
	if inviter, err := s.users.GetUserByID(ctx, invitation.InviterUID.String()); err == nil && inviter.Name != "" {
		inviterName = inviter.Name
	}

	go func(email, householdName, inviter string) {
		if err := mailing.SendInvitationMail(email, householdName, inviter); err != nil {
			log.Printf("unable to send invitation email to %s: %v", email, err)
		}
	}(invitation.InviteeEmail, invitation.HouseholdName, inviterName)
}

func householdToResponse(h *entities.Household) domain.HouseholdResponse {
	return domain.HouseholdResponse{
		ID:           h.ID.String(),
		OwnerUID:     h.OwnerUID.String(),
		Name:         h.Name,
		Participants: h.ParticipantUIDs(),
		Categories:   unmarshalLabels(h.Categories, entities.DefaultCategories),
		Locations:    unmarshalLabels(h.Locations, entities.DefaultLocations),
	}
}

func invitationToResponse(i *entities.Invitation) domain.InvitationResponse {
	return domain.InvitationResponse{
		ID:            i.ID.String(),
		HouseholdID:   i.HouseholdID.String(),
		HouseholdName: i.HouseholdName,
		InviterUID:    i.InviterUID.String(),
		InviteeEmail:  i.InviteeEmail,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
	}
}

func mustMarshalLabels(labels []string) []byte {
	data, err := json.Marshal(labels)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func unmarshalLabels(data []byte, fallback []string) []string {
	if len(data) == 0 {
		return fallback
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil || labels == nil {
		return fallback
	}
	return labels
}
