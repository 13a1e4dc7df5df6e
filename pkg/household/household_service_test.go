package household

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDirectory struct {
	users map[string]*entities.User
}

func (d *stubDirectory) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (d *stubDirectory) add(email, name string) *entities.User {
	u := &entities.User{ID: uuid.New(), Email: email, Name: name}
	d.users[u.ID.String()] = u
	return u
}

func setupHouseholdTest(t *testing.T) (HouseholdService, *stubDirectory) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Household{},
		&entities.HouseholdParticipant{},
		&entities.Invitation{},
	))

	directory := &stubDirectory{users: make(map[string]*entities.User)}
	return NewHouseholdService(NewHouseholdRepository(db), directory), directory
}

func TestCreateHouseholdOwnerBecomesParticipant(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")

	res, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Home", res.Name)
	assert.Equal(t, owner.ID.String(), res.OwnerUID)
	assert.Contains(t, res.Participants, owner.ID.String())
	assert.Equal(t, entities.DefaultCategories, res.Categories)
	assert.Equal(t, entities.DefaultLocations, res.Locations)
}

func TestCreateHouseholdRequiresName(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")

	_, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{}, owner.ID.String())
	assert.ErrorIs(t, err, domain.ErrHouseholdNameRequired)
}

func TestGetHouseholdsForUserDeduplicates(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	// Owner is also a participant; the household must appear once.
	households, err := svc.GetHouseholdsForUser(context.Background(), owner.ID.String())
	require.NoError(t, err)
	require.Len(t, households, 1)
	assert.Equal(t, created.ID, households[0].ID)
}

func TestUpdateHouseholdLabels(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	updated, err := svc.UpdateHousehold(context.Background(), created.ID, domain.UpdateHouseholdRequest{
		Name:       "Beach House",
		Categories: []string{"Drinks"},
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Beach House", updated.Name)
	assert.Equal(t, []string{"Drinks"}, updated.Categories)
	assert.Equal(t, entities.DefaultLocations, updated.Locations)
}

func TestDeleteHouseholdOwnerOnly(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	other := dir.add("other@example.com", "Other")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)
	require.NoError(t, svc.AddParticipant(context.Background(), created.ID, owner.ID.String(), other.ID.String()))

	err = svc.DeleteHousehold(context.Background(), created.ID, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotHouseholdOwner)

	require.NoError(t, svc.DeleteHousehold(context.Background(), created.ID, owner.ID.String()))

	_, err = svc.GetHousehold(context.Background(), created.ID, owner.ID.String())
	assert.ErrorIs(t, err, domain.ErrHouseholdNotFound)
}

func TestAddParticipantIdempotent(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	other := dir.add("other@example.com", "Other")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.AddParticipant(context.Background(), created.ID, owner.ID.String(), other.ID.String()))
	require.NoError(t, svc.AddParticipant(context.Background(), created.ID, owner.ID.String(), other.ID.String()))

	res, err := svc.GetHousehold(context.Background(), created.ID, owner.ID.String())
	require.NoError(t, err)
	assert.Len(t, res.Participants, 2)
}

func TestInvitationAcceptFlow(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	invitee := dir.add("invitee@example.com", "Invitee")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	invitation, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.InvitationPending, invitation.Status)
	assert.Equal(t, "Home", invitation.HouseholdName)

	pending, err := svc.GetPendingInvitations(context.Background(), invitee.ID.String())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Owner", pending[0].InviterName)

	householdID, err := svc.AcceptInvitation(context.Background(), invitation.ID, invitee.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, householdID)

	res, err := svc.GetHousehold(context.Background(), created.ID, invitee.ID.String())
	require.NoError(t, err)
	assert.Contains(t, res.Participants, invitee.ID.String())

	// Accepting twice must not work.
	_, err = svc.AcceptInvitation(context.Background(), invitation.ID, invitee.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvitationNotPending)
}

func TestAcceptInvitationWrongEmail(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	dir.add("invitee@example.com", "Invitee")
	stranger := dir.add("stranger@example.com", "Stranger")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	invitation, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       "invitee@example.com",
	}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(context.Background(), invitation.ID, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvitationWrongEmail)

	res, err := svc.GetHousehold(context.Background(), created.ID, owner.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, res.Participants, stranger.ID.String())
}

func TestCreateInvitationIdempotentWhilePending(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	first, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       "invitee@example.com",
	}, owner.ID.String())
	require.NoError(t, err)

	second, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       "invitee@example.com",
	}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateInvitationAfterAcceptFails(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	invitee := dir.add("invitee@example.com", "Invitee")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	invitation, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(context.Background(), invitation.ID, invitee.ID.String())
	require.NoError(t, err)

	_, err = svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvitationAlreadyAccepted)
}

func TestRejectInvitation(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	invitee := dir.add("invitee@example.com", "Invitee")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	invitation, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.RejectInvitation(context.Background(), invitation.ID, invitee.ID.String()))

	// Rejection leaves the membership untouched.
	res, err := svc.GetHousehold(context.Background(), created.ID, owner.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, res.Participants, invitee.ID.String())

	pending, err := svc.GetPendingInvitations(context.Background(), invitee.ID.String())
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = svc.RejectInvitation(context.Background(), invitation.ID, invitee.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvitationNotPending)
}

func TestCreateInvitationAfterReject(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	invitee := dir.add("invitee@example.com", "Invitee")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	first, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)
	require.NoError(t, svc.RejectInvitation(context.Background(), first.ID, invitee.ID.String()))

	// Rejection is terminal; a new invite creates a fresh pending invitation.
	second, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, entities.InvitationPending, second.Status)

	// Inviting again immediately, even within the same second, reuses the
	// fresh invitation instead of stacking another pending one.
	third, err := svc.CreateInvitation(context.Background(), domain.CreateInvitationRequest{
		HouseholdID: created.ID,
		Email:       invitee.Email,
	}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, second.ID, third.ID)

	pending, err := svc.GetPendingInvitations(context.Background(), invitee.ID.String())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestUserHasHousehold(t *testing.T) {
	svc, dir := setupHouseholdTest(t)
	owner := dir.add("owner@example.com", "Owner")
	other := dir.add("other@example.com", "Other")

	created, err := svc.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, owner.ID.String())
	require.NoError(t, err)

	ok, err := svc.UserHasHousehold(context.Background(), owner.ID.String(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.UserHasHousehold(context.Background(), other.ID.String(), created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.UserHasHousehold(context.Background(), owner.ID.String(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}
