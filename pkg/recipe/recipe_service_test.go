package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/pkg/household"
	"github.com/pantry-guardian/backend/pkg/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noDirectory struct{}

func (noDirectory) GetUserByID(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func setupRecipeTest(t *testing.T, handler http.HandlerFunc) (RecipeService, product.ProductService, household.HouseholdService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Household{},
		&entities.HouseholdParticipant{},
		&entities.Product{},
	))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	households := household.NewHouseholdService(household.NewHouseholdRepository(db), noDirectory{})
	productRepository := product.NewProductRepository(db)
	products := product.NewProductService(productRepository, households, nil, nil)
	client := &OpenAIClient{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		Client:  &http.Client{Timeout: time.Second},
	}

	return NewRecipeService(productRepository, households, client), products, households
}

func completionHandler(recipeText string, gotIngredients *string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if gotIngredients != nil {
			*gotIngredients = req.Messages[1].Content
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": recipeText}},
			},
		})
	}
}

func TestGenerateRecipeFromPantry(t *testing.T) {
	var ingredients string
	svc, products, households := setupRecipeTest(t, completionHandler("# Tomato Omelette\n...", &ingredients))

	uid := uuid.NewString()
	home, err := households.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, uid)
	require.NoError(t, err)

	for _, name := range []string{"Eggs", "Tomatoes"} {
		_, err := products.AddProduct(context.Background(), domain.AddProductRequest{
			HouseholdID: home.ID,
			ProductName: name,
		}, uid)
		require.NoError(t, err)
	}

	res, err := svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{HouseholdID: home.ID}, uid)
	require.NoError(t, err)
	assert.Equal(t, "# Tomato Omelette\n...", res.Recipe)
	assert.Equal(t, "Eggs, Tomatoes", ingredients)
}

func TestGenerateRecipeSkipsWastedProducts(t *testing.T) {
	svc, products, households := setupRecipeTest(t, completionHandler("recipe", nil))

	uid := uuid.NewString()
	home, err := households.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, uid)
	require.NoError(t, err)

	added, err := products.AddProduct(context.Background(), domain.AddProductRequest{
		HouseholdID: home.ID,
		ProductName: "Moldy Bread",
	}, uid)
	require.NoError(t, err)
	require.NoError(t, products.MarkAsWasted(context.Background(), added.ID, uid))

	_, err = svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{HouseholdID: home.ID}, uid)
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestGenerateRecipeFallsBackOnServiceFailure(t *testing.T) {
	svc, products, households := setupRecipeTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	uid := uuid.NewString()
	home, err := households.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, uid)
	require.NoError(t, err)

	_, err = products.AddProduct(context.Background(), domain.AddProductRequest{
		HouseholdID: home.ID,
		ProductName: "Eggs",
	}, uid)
	require.NoError(t, err)

	res, err := svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{HouseholdID: home.ID}, uid)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipeFallbackMessage, res.Recipe)
}

func TestGenerateRecipeRequiresMembership(t *testing.T) {
	svc, _, households := setupRecipeTest(t, completionHandler("recipe", nil))

	uid := uuid.NewString()
	home, err := households.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, uid)
	require.NoError(t, err)

	_, err = svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{HouseholdID: home.ID}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}
