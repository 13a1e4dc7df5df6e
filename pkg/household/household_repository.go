package household

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	HouseholdRepository interface {
		GetHousehold(ctx context.Context, id string) (*entities.Household, error)
		GetOwnedHouseholds(ctx context.Context, uid uuid.UUID) ([]*entities.Household, error)
		GetParticipantHouseholds(ctx context.Context, uid uuid.UUID) ([]*entities.Household, error)
		SaveHousehold(ctx context.Context, household *entities.Household) error
		DeleteHousehold(ctx context.Context, id string) error
		AddParticipant(ctx context.Context, householdID, userID uuid.UUID) error

		GetInvitation(ctx context.Context, id string) (*entities.Invitation, error)
		GetEffectiveInvitationForEmail(ctx context.Context, email string, householdID uuid.UUID) (*entities.Invitation, error)
		GetPendingInvitationsForEmail(ctx context.Context, email string) ([]*entities.Invitation, error)
		SaveInvitation(ctx context.Context, invitation *entities.Invitation) error
		AcceptInvitation(ctx context.Context, invitationID string, userID uuid.UUID) error
	}

	householdRepository struct {
		db *gorm.DB
	}
)

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) GetHousehold(ctx context.Context, id string) (*entities.Household, error) {
	var household entities.Household
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) GetOwnedHouseholds(ctx context.Context, uid uuid.UUID) ([]*entities.Household, error) {
	var households []*entities.Household
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("owner_uid = ?", uid).
		Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (r *householdRepository) GetParticipantHouseholds(ctx context.Context, uid uuid.UUID) ([]*entities.Household, error) {
	var households []*entities.Household
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN household_participants ON household_participants.household_id = households.id").
		Where("household_participants.user_id = ?", uid).
		Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// SaveHousehold upserts the full household document and syncs the participant
// rows to exactly the ones on the entity.
func (r *householdRepository) SaveHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Save(household).Error; err != nil {
			return err
		}

		if len(household.Participants) == 0 {
			return domain.ErrHouseholdOwnerRequired
		}

		keep := make([]uuid.UUID, 0, len(household.Participants))
		for _, p := range household.Participants {
			p.HouseholdID = household.ID
			keep = append(keep, p.UserID)
		}

		if err := tx.Where("household_id = ? AND user_id NOT IN ?", household.ID, keep).
			Delete(&entities.HouseholdParticipant{}).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(household.Participants).Error
	})
}

func (r *householdRepository) DeleteHousehold(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("household_id = ?", id).
			Delete(&entities.HouseholdParticipant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Household{}).Error
	})
}

func (r *householdRepository) AddParticipant(ctx context.Context, householdID, userID uuid.UUID) error {
	participant := &entities.HouseholdParticipant{
		HouseholdID: householdID,
		UserID:      userID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant).Error
}

func (r *householdRepository) GetInvitation(ctx context.Context, id string) (*entities.Invitation, error) {
	var invitation entities.Invitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetEffectiveInvitationForEmail returns the invitation that still binds the
// (email, household) pair: the pending one if it exists, otherwise an accepted
// one. Rejected invitations are terminal and never count, so after a rejection
// this reports gorm.ErrRecordNotFound and a fresh invitation can be created.
func (r *householdRepository) GetEffectiveInvitationForEmail(ctx context.Context, email string, householdID uuid.UUID) (*entities.Invitation, error) {
	var invitation entities.Invitation
	err := r.db.WithContext(ctx).
		Where("invitee_email = ? AND household_id = ? AND status = ?", email, householdID, entities.InvitationPending).
		First(&invitation).Error
	if err == nil {
		return &invitation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("invitee_email = ? AND household_id = ? AND status = ?", email, householdID, entities.InvitationAccepted).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *householdRepository) GetPendingInvitationsForEmail(ctx context.Context, email string) ([]*entities.Invitation, error) {
	var invitations []*entities.Invitation
	if err := r.db.WithContext(ctx).
		Where("invitee_email = ? AND status = ?", email, entities.InvitationPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *householdRepository) SaveInvitation(ctx context.Context, invitation *entities.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

// AcceptInvitation performs the status write and the participant insert in a
// single transaction, so an accepted invitation always implies membership.
func (r *householdRepository) AcceptInvitation(ctx context.Context, invitationID string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation entities.Invitation
		if err := tx.Where("id = ?", invitationID).First(&invitation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvitationNotFound
			}
			return err
		}
		if invitation.Status != entities.InvitationPending {
			return domain.ErrInvitationNotPending
		}

		if err := tx.Model(&entities.Invitation{}).
			Where("id = ?", invitationID).
			Update("status", entities.InvitationAccepted).Error; err != nil {
			return err
		}

		participant := &entities.HouseholdParticipant{
			HouseholdID: invitation.HouseholdID,
			UserID:      userID,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(participant).Error
	})
}
