package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessAddProduct       = "product added successfully"
	MessageSuccessUpdateProduct    = "product updated successfully"
	MessageSuccessDeleteProduct    = "product deleted successfully"
	MessageSuccessGetProducts      = "products retrieved successfully"
	MessageSuccessMarkAsWasted     = "product marked as wasted"
	MessageSuccessUploadImage      = "product image uploaded successfully"

	MessageFailedAddProduct    = "failed to add product"
	MessageFailedUpdateProduct = "failed to update product"
	MessageFailedDeleteProduct = "failed to delete product"
	MessageFailedGetProducts   = "failed to retrieve products"
	MessageFailedMarkAsWasted  = "failed to mark product as wasted"
	MessageFailedUploadImage   = "failed to upload product image"

	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
)

type (
	AddProductRequest struct {
		HouseholdID    string `json:"household_id" validate:"required,uuid"`
		ProductName    string `json:"product_name" validate:"required"`
		Barcode        string `json:"barcode" validate:"omitempty"`
		Category       string `json:"category" validate:"omitempty"`
		Location       string `json:"location" validate:"omitempty"`
		ExpirationDate string `json:"expiration_date" validate:"omitempty"` // YYYY-MM-DD, empty = does not expire
		Note           string `json:"note" validate:"omitempty"`
	}

	UpdateProductRequest struct {
		ProductName    string `json:"product_name" validate:"omitempty"`
		Barcode        string `json:"barcode" validate:"omitempty"`
		Category       string `json:"category" validate:"omitempty"`
		Location       string `json:"location" validate:"omitempty"`
		ExpirationDate string `json:"expiration_date" validate:"omitempty"`
		Note           string `json:"note" validate:"omitempty"`
	}

	UploadProductImageRequest struct {
		ProductID string                `json:"product_id" form:"product_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ProductResponse struct {
		ID              string `json:"id"`
		Barcode         string `json:"barcode,omitempty"`
		Category        string `json:"category"`
		Created         int64  `json:"created"`
		Expires         int64  `json:"expires"`
		DoesExpire      bool   `json:"does_expire"`
		IsExpired       bool   `json:"is_expired"`
		Location        string `json:"location"`
		ProductName     string `json:"product_name"`
		HouseholdID     string `json:"household_id"`
		Wasted          bool   `json:"wasted"`
		WastedTimestamp int64  `json:"wasted_timestamp"`
		Note            string `json:"note"`
		ImageURL        string `json:"image_url,omitempty"`
	}
)
