package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pantry-guardian/backend/internal/utils"
)

// OpenFoodFactsClient looks up product names in the Open Food Facts open
// database. A 404 means the product is unknown there, which is a valid,
// cacheable answer; anything else non-2xx is a lookup failure.
type OpenFoodFactsClient struct {
	BaseURL string
	Client  *http.Client
}

func NewOpenFoodFactsClient() *OpenFoodFactsClient {
	return &OpenFoodFactsClient{
		BaseURL: utils.GetConfig("OPENFOODFACTS_BASE_URL"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProductName returns the product name for code, or an empty string when
// Open Food Facts does not know the product.
func (c *OpenFoodFactsClient) FetchProductName(ctx context.Context, code string) (string, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", c.BaseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("open food facts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("open food facts returned status %s", resp.Status)
	}

	var body struct {
		Product struct {
			ProductName string `json:"product_name"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("unable to parse open food facts response: %w", err)
	}

	return body.Product.ProductName, nil
}
