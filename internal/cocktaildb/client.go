package cocktaildb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/windoze95/mixlist/internal/models"
)

// DefaultBaseURL is the public TheCocktailDB v1 endpoint.
const DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1"

// maxResponseBytes bounds how much of a lookup response is read.
const maxResponseBytes = 4 * 1024 * 1024

// Provider looks up drinks by name.
type Provider interface {
	SearchDrinks(ctx context.Context, query string) ([]models.Drink, error)
}

// Client implements Provider against TheCocktailDB search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchDrinks issues one GET to search.php. A nil slice with a nil error
// means the service reported no matches. Any non-2xx status or undecodable
// body is returned as an error.
func (c *Client) SearchDrinks(ctx context.Context, query string) ([]models.Drink, error) {
	params := url.Values{}
	params.Set("s", query)

	reqURL := fmt.Sprintf("%s/search.php?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lookup service returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return decodeSearchResponse(body)
}

// decodeSearchResponse reads the drinks array out of a search.php body. The
// service answers null, omits the field, or sends a string such as
// "no data found" when nothing matches; all of those mean no results.
func decodeSearchResponse(body []byte) ([]models.Drink, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse lookup response: invalid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("failed to parse lookup response: expected an object")
	}

	records := root.Get("drinks")
	if !records.IsArray() {
		return nil, nil
	}

	drinks := make([]models.Drink, 0, len(records.Array()))
	records.ForEach(func(_, rec gjson.Result) bool {
		drinks = append(drinks, recordToDrink(rec))
		return true
	})
	return drinks, nil
}

// recordToDrink maps the strDrink/strIngredientN field names onto a Drink.
// Slots that are null, missing, or not strings come through empty.
func recordToDrink(rec gjson.Result) models.Drink {
	ingredients := make([]string, models.MaxIngredients)
	for i := range ingredients {
		ingredients[i] = stringField(rec, "strIngredient"+strconv.Itoa(i+1))
	}
	return models.NewDrink(
		stringField(rec, "idDrink"),
		stringField(rec, "strDrink"),
		stringField(rec, "strDrinkThumb"),
		stringField(rec, "strInstructions"),
		ingredients,
	)
}

func stringField(rec gjson.Result, key string) string {
	v := rec.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
