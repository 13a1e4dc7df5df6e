package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateRecipe = "recipe generated successfully"
	MessageFailedGenerateRecipe  = "failed to generate recipe"

	ErrNoIngredients = errors.New("no ingredients available for recipe generation")
)

// RecipeFallbackMessage is returned whenever the text-generation service
// cannot produce a recipe.
var RecipeFallbackMessage = "Sorry, I cannot create a recipe at this time. Please try again later."

type (
	GenerateRecipeRequest struct {
		HouseholdID string `json:"household_id" validate:"required,uuid"`
	}

	GenerateRecipeResponse struct {
		Recipe string `json:"recipe"`
	}
)
