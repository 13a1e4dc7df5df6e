package domain

import (
	"errors"
)

var (
	MessageSuccessGetShoppingList   = "shopping list retrieved successfully"
	MessageSuccessAddShoppingItem   = "shopping list item added successfully"
	MessageSuccessUpdateShoppingItem = "shopping list item updated successfully"
	MessageSuccessDeleteShoppingItem = "shopping list item deleted successfully"
	MessageSuccessCompleteShoppingItem = "shopping list item completed"

	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedAddShoppingItem    = "failed to add shopping list item"
	MessageFailedUpdateShoppingItem = "failed to update shopping list item"
	MessageFailedDeleteShoppingItem = "failed to delete shopping list item"
	MessageFailedCompleteShoppingItem = "failed to complete shopping list item"

	ErrShoppingListItemNotFound = errors.New("shopping list item not found")
)

type (
	AddShoppingItemRequest struct {
		HouseholdID string `json:"household_id" validate:"required,uuid"`
		ProductName string `json:"product_name" validate:"required"`
		Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
		Note        string `json:"note" validate:"omitempty"`
	}

	UpdateShoppingItemRequest struct {
		ProductName string `json:"product_name" validate:"omitempty"`
		Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
		Note        string `json:"note" validate:"omitempty"`
	}

	ShoppingItemResponse struct {
		ID                 string `json:"id"`
		ProductName        string `json:"product_name"`
		HouseholdID        string `json:"household_id"`
		AddedBy            string `json:"added_by"`
		AddedTimestamp     int64  `json:"added_timestamp"`
		Completed          bool   `json:"completed"`
		CompletedTimestamp int64  `json:"completed_timestamp"`
		Note               string `json:"note"`
		Quantity           int    `json:"quantity"`
	}
)
