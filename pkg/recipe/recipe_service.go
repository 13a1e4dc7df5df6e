package recipe

import (
	"context"
	"log"
	"strings"

	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/pkg/household"
	"github.com/pantry-guardian/backend/pkg/product"
)

type (
	RecipeService interface {
		GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest, userID string) (domain.GenerateRecipeResponse, error)
	}

	recipeService struct {
		productRepository product.ProductRepository
		householdService  household.HouseholdService
		openAI            *OpenAIClient
	}
)

func NewRecipeService(productRepository product.ProductRepository, householdService household.HouseholdService, openAI *OpenAIClient) RecipeService {
	return &recipeService{
		productRepository: productRepository,
		householdService:  householdService,
		openAI:            openAI,
	}
}

// GenerateRecipe builds the ingredient list from the household's non-wasted
// products and asks the model for a recipe. Generation failures fall back to
// an apology message rather than an error so the client always has something
// to show.
func (s *recipeService) GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest, userID string) (domain.GenerateRecipeResponse, error) {
	ok, err := s.householdService.UserHasHousehold(ctx, userID, req.HouseholdID)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}
	if !ok {
		return domain.GenerateRecipeResponse{}, domain.ErrNotParticipant
	}

	products, err := s.productRepository.GetHouseholdProducts(ctx, req.HouseholdID)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}

	names := make([]string, 0, len(products))
	for _, p := range products {
		if p.Wasted || p.ProductName == "" {
			continue
		}
		names = append(names, p.ProductName)
	}
	if len(names) == 0 {
		return domain.GenerateRecipeResponse{}, domain.ErrNoIngredients
	}

	recipeText, err := s.openAI.GenerateRecipe(ctx, strings.Join(names, ", "))
	if err != nil {
		log.Printf("recipe generation failed: %v", err)
		return domain.GenerateRecipeResponse{Recipe: domain.RecipeFallbackMessage}, nil
	}
	if recipeText == "" {
		return domain.GenerateRecipeResponse{Recipe: domain.RecipeFallbackMessage}, nil
	}

	return domain.GenerateRecipeResponse{Recipe: recipeText}, nil
}
