package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/internal/api/presenters"
	"github.com/pantry-guardian/backend/pkg/household"
)

type (
	HouseholdHandler interface {
		GetHousehold(c *fiber.Ctx) error
		GetHouseholds(c *fiber.Ctx) error
		CreateHousehold(c *fiber.Ctx) error
		UpdateHousehold(c *fiber.Ctx) error
		DeleteHousehold(c *fiber.Ctx) error
		AddParticipant(c *fiber.Ctx) error
		CreateInvitation(c *fiber.Ctx) error
		AcceptInvitation(c *fiber.Ctx) error
		RejectInvitation(c *fiber.Ctx) error
		GetPendingInvitations(c *fiber.Ctx) error
	}

	householdHandler struct {
		householdService household.HouseholdService
		validator        *validator.Validate
	}
)

func NewHouseholdHandler(householdService household.HouseholdService, validator *validator.Validate) HouseholdHandler {
	return &householdHandler{
		householdService: householdService,
		validator:        validator,
	}
}

func (h *householdHandler) GetHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("id")

	res, err := h.householdService.GetHousehold(c.Context(), householdID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHousehold)
}

func (h *householdHandler) GetHouseholds(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.householdService.GetHouseholdsForUser(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHouseholds, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHouseholds)
}

func (h *householdHandler) CreateHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateHouseholdRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHousehold, err)
	}

	res, err := h.householdService.CreateHousehold(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHousehold)
}

func (h *householdHandler) UpdateHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("id")
	req := new(domain.UpdateHouseholdRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHousehold, err)
	}

	res, err := h.householdService.UpdateHousehold(c.Context(), householdID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateHousehold)
}

func (h *householdHandler) DeleteHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("id")

	if err := h.householdService.DeleteHousehold(c.Context(), householdID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteHousehold, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteHousehold)
}

func (h *householdHandler) AddParticipant(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	householdID := c.Params("id")
	req := new(domain.AddParticipantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHousehold, err)
	}

	if err := h.householdService.AddParticipant(c.Context(), householdID, userID, req.UserID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHousehold, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateHousehold)
}

func (h *householdHandler) CreateInvitation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateInvitationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateInvitation, err)
	}

	res, err := h.householdService.CreateInvitation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateInvitation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateInvitation)
}

func (h *householdHandler) AcceptInvitation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invitationID := c.Params("id")

	householdID, err := h.householdService.AcceptInvitation(c.Context(), invitationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAcceptInvitation, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"household_id": householdID}, fiber.StatusOK, domain.MessageSuccessAcceptInvitation)
}

func (h *householdHandler) RejectInvitation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	invitationID := c.Params("id")

	if err := h.householdService.RejectInvitation(c.Context(), invitationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectInvitation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectInvitation)
}

func (h *householdHandler) GetPendingInvitations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.householdService.GetPendingInvitations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInvitations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInvitations)
}
