package domain

import (
	"errors"
)

var (
	MessageSuccessGetBarcodeName = "product name resolved successfully"
	MessageSuccessAddBarcode     = "barcode name added successfully"

	MessageFailedGetBarcodeName = "failed to resolve product name"
	MessageFailedAddBarcode     = "failed to add barcode name"

	ErrBarcodeRequired     = errors.New("barcode code must not be empty")
	ErrBarcodeNameRequired = errors.New("barcode name must not be empty")
	// ErrBarcodeNameNotFound means the code resolved to nothing, including the
	// cached "checked, found nothing" case. Lookup failures surface separately.
	ErrBarcodeNameNotFound = errors.New("no product name known for barcode")
)

type (
	AddBarcodeRequest struct {
		Code        string `json:"code" validate:"required"`
		Name        string `json:"name" validate:"required"`
		HouseholdID string `json:"household_id" validate:"required,uuid"`
	}

	BarcodeNameResponse struct {
		Code       string `json:"code"`
		Name       string `json:"name"`
		IsExternal bool   `json:"is_external"`
	}
)
