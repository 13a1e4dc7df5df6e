package barcode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/pkg/household"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noDirectory struct{}

func (noDirectory) GetUserByID(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type barcodeFixture struct {
	service      BarcodeService
	households   household.HouseholdService
	lookupCalls  *int
	lookupServer *httptest.Server
}

// newBarcodeFixture wires the service against an in-memory database and a
// stand-in for the Open Food Facts API that serves the given names by code.
func newBarcodeFixture(t *testing.T, external map[string]string) *barcodeFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.Household{},
		&entities.HouseholdParticipant{},
		&entities.BarcodeName{},
	))

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		code := r.URL.Path[len("/api/v2/product/") : len(r.URL.Path)-len(".json")]
		name, ok := external[code]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"product":{"product_name":%q}}`, name)
	}))
	t.Cleanup(server.Close)

	households := household.NewHouseholdService(household.NewHouseholdRepository(db), noDirectory{})
	client := &OpenFoodFactsClient{BaseURL: server.URL, Client: &http.Client{Timeout: time.Second}}

	return &barcodeFixture{
		service:      NewBarcodeService(NewBarcodeRepository(db), households, client),
		households:   households,
		lookupCalls:  &calls,
		lookupServer: server,
	}
}

func (f *barcodeFixture) newHousehold(t *testing.T) (householdID, userID string) {
	t.Helper()
	uid := uuid.NewString()
	res, err := f.households.CreateHousehold(context.Background(), domain.CreateHouseholdRequest{Name: "Home"}, uid)
	require.NoError(t, err)
	return res.ID, uid
}

func TestGetProductNameFetchesAndCachesExternal(t *testing.T) {
	f := newBarcodeFixture(t, map[string]string{"737628064502": "Acme Beans"})
	householdID, userID := f.newHousehold(t)

	res, err := f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Beans", res.Name)
	assert.True(t, res.IsExternal)
	assert.Equal(t, 1, *f.lookupCalls)

	// Second scan is served from the cache.
	res, err = f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Beans", res.Name)
	assert.Equal(t, 1, *f.lookupCalls)
}

func TestHouseholdNameOverridesExternal(t *testing.T) {
	f := newBarcodeFixture(t, map[string]string{"737628064502": "Acme Beans"})
	householdID, userID := f.newHousehold(t)
	otherHouseholdID, otherUserID := f.newHousehold(t)

	_, err := f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.NoError(t, err)

	require.NoError(t, f.service.AddBarcode(context.Background(), domain.AddBarcodeRequest{
		Code:        "737628064502",
		Name:        "Bob's Beans",
		HouseholdID: householdID,
	}, userID))

	res, err := f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's Beans", res.Name)
	assert.False(t, res.IsExternal)

	// Other households keep seeing the shared external name.
	res, err = f.service.GetProductName(context.Background(), "737628064502", otherHouseholdID, otherUserID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Beans", res.Name)
	assert.True(t, res.IsExternal)
}

func TestUnknownCodeIsCheckedOnlyOnce(t *testing.T) {
	f := newBarcodeFixture(t, nil)
	householdID, userID := f.newHousehold(t)

	_, err := f.service.GetProductName(context.Background(), "000000000000", householdID, userID)
	assert.ErrorIs(t, err, domain.ErrBarcodeNameNotFound)
	assert.Equal(t, 1, *f.lookupCalls)

	// The empty result is cached; the external service is not asked again.
	_, err = f.service.GetProductName(context.Background(), "000000000000", householdID, userID)
	assert.ErrorIs(t, err, domain.ErrBarcodeNameNotFound)
	assert.Equal(t, 1, *f.lookupCalls)
}

func TestHouseholdNameShadowsCheckedEmptyResult(t *testing.T) {
	f := newBarcodeFixture(t, nil)
	householdID, userID := f.newHousehold(t)

	_, err := f.service.GetProductName(context.Background(), "000000000000", householdID, userID)
	assert.ErrorIs(t, err, domain.ErrBarcodeNameNotFound)

	require.NoError(t, f.service.AddBarcode(context.Background(), domain.AddBarcodeRequest{
		Code:        "000000000000",
		Name:        "Homemade Jam",
		HouseholdID: householdID,
	}, userID))

	res, err := f.service.GetProductName(context.Background(), "000000000000", householdID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Homemade Jam", res.Name)
	assert.False(t, res.IsExternal)
}

func TestLookupFailureIsNotCached(t *testing.T) {
	f := newBarcodeFixture(t, map[string]string{"737628064502": "Acme Beans"})
	householdID, userID := f.newHousehold(t)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	svc := f.service.(*barcodeService)
	svc.openFoodFacts.BaseURL = broken.URL

	_, err := f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBarcodeNameNotFound)

	// Once the service recovers, the name resolves and gets cached.
	svc.openFoodFacts.BaseURL = f.lookupServer.URL
	res, err := f.service.GetProductName(context.Background(), "737628064502", householdID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Beans", res.Name)
}

func TestGetProductNameRequiresMembership(t *testing.T) {
	f := newBarcodeFixture(t, map[string]string{"737628064502": "Acme Beans"})
	householdID, _ := f.newHousehold(t)

	_, err := f.service.GetProductName(context.Background(), "737628064502", householdID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
	assert.Equal(t, 0, *f.lookupCalls)
}

func TestAddBarcodeValidation(t *testing.T) {
	f := newBarcodeFixture(t, nil)
	householdID, userID := f.newHousehold(t)

	err := f.service.AddBarcode(context.Background(), domain.AddBarcodeRequest{Name: "X", HouseholdID: householdID}, userID)
	assert.ErrorIs(t, err, domain.ErrBarcodeRequired)

	err = f.service.AddBarcode(context.Background(), domain.AddBarcodeRequest{Code: "1", HouseholdID: householdID}, userID)
	assert.ErrorIs(t, err, domain.ErrBarcodeNameRequired)
}
