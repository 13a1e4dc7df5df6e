package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/internal/api/presenters"
	"github.com/pantry-guardian/backend/pkg/barcode"
)

type (
	BarcodeHandler interface {
		GetProductName(c *fiber.Ctx) error
		AddBarcode(c *fiber.Ctx) error
	}

	barcodeHandler struct {
		barcodeService barcode.BarcodeService
		validator      *validator.Validate
	}
)

func NewBarcodeHandler(barcodeService barcode.BarcodeService, validator *validator.Validate) BarcodeHandler {
	return &barcodeHandler{
		barcodeService: barcodeService,
		validator:      validator,
	}
}

func (h *barcodeHandler) GetProductName(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	code := c.Params("code")
	householdID := c.Query("household_id")

	res, err := h.barcodeService.GetProductName(c.Context(), code, householdID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBarcodeName, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBarcodeName)
}

func (h *barcodeHandler) AddBarcode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddBarcodeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddBarcode, err)
	}

	if err := h.barcodeService.AddBarcode(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddBarcode, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAddBarcode)
}
