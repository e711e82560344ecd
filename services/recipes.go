package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lewishowell/yacht-provisioning/models"
)

const spoonacularBaseURL = "https://api.spoonacular.com"

// RecipeClient looks up recipes on Spoonacular and normalizes the result
// into the ingredient shape used everywhere else. Without an API key the
// feature is disabled and every lookup fails.
type RecipeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewRecipeClient(apiKey string) *RecipeClient {
	return &RecipeClient{
		apiKey:     apiKey,
		baseURL:    spoonacularBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at a different host, used by tests.
func (c *RecipeClient) WithBaseURL(baseURL string) *RecipeClient {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *RecipeClient) Enabled() bool {
	return c.apiKey != ""
}

// RecipeSummary is one search hit.
type RecipeSummary struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Image          *string `json:"image"`
	Servings       int     `json:"servings"`
	ReadyInMinutes int     `json:"readyInMinutes"`
	Summary        string  `json:"summary"`
}

// RecipeIngredient is a normalized ingredient ready to attach to a meal.
type RecipeIngredient struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Category models.Category `json:"category"`
}

// RecipeDetail is a full recipe with normalized ingredients.
type RecipeDetail struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	Image          *string            `json:"image"`
	Servings       int                `json:"servings"`
	ReadyInMinutes int                `json:"readyInMinutes"`
	Summary        string             `json:"summary"`
	SourceURL      string             `json:"sourceUrl"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
}

type spoonacularIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Aisle  *string `json:"aisle"`
}

type spoonacularRecipe struct {
	ID                  int                     `json:"id"`
	Title               string                  `json:"title"`
	Image               *string                 `json:"image"`
	Servings            int                     `json:"servings"`
	ReadyInMinutes      int                     `json:"readyInMinutes"`
	Summary             string                  `json:"summary"`
	SourceURL           string                  `json:"sourceUrl"`
	ExtendedIngredients []spoonacularIngredient `json:"extendedIngredients"`
}

func (c *RecipeClient) Search(ctx context.Context, query string) ([]RecipeSummary, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("spoonacular API key not configured")
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("query", query)
	params.Set("number", "12")
	params.Set("addRecipeInformation", "true")

	var payload struct {
		Results []spoonacularRecipe `json:"results"`
	}
	if err := c.get(ctx, "/recipes/complexSearch?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	results := make([]RecipeSummary, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, RecipeSummary{
			ID:             r.ID,
			Title:          r.Title,
			Image:          r.Image,
			Servings:       r.Servings,
			ReadyInMinutes: r.ReadyInMinutes,
			Summary:        truncate(stripHTML(r.Summary), 300),
		})
	}
	return results, nil
}

func (c *RecipeClient) Detail(ctx context.Context, recipeID int) (*RecipeDetail, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("spoonacular API key not configured")
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	var r spoonacularRecipe
	path := fmt.Sprintf("/recipes/%d/information?%s", recipeID, params.Encode())
	if err := c.get(ctx, path, &r); err != nil {
		return nil, err
	}

	detail := &RecipeDetail{
		ID:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		Servings:       r.Servings,
		ReadyInMinutes: r.ReadyInMinutes,
		Summary:        truncate(stripHTML(r.Summary), 500),
		SourceURL:      r.SourceURL,
	}
	for _, ing := range r.ExtendedIngredients {
		detail.Ingredients = append(detail.Ingredients, RecipeIngredient{
			Name:     ing.Name,
			Quantity: Round2(ing.Amount),
			Unit:     normalizeUnit(ing.Unit),
			Category: aisleCategory(ing.Aisle),
		})
	}
	return detail, nil
}

func (c *RecipeClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spoonacular request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("spoonacular API error: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// aisleCategoryPrefixes maps Spoonacular aisle names onto the category enum.
// Matching is substring-based on the lowercased aisle; anything unknown is
// treated as food.
var aisleCategoryPrefixes = []struct {
	fragment string
	category models.Category
}{
	{"alcoholic beverages", models.CategoryBeverages},
	{"tea and coffee", models.CategoryBeverages},
	{"beverages", models.CategoryBeverages},
	{"cleaning products", models.CategoryCleaning},
}

func aisleCategory(aisle *string) models.Category {
	if aisle == nil {
		return models.CategoryFood
	}
	lower := strings.ToLower(*aisle)
	for _, entry := range aisleCategoryPrefixes {
		if strings.Contains(lower, entry.fragment) {
			return entry.category
		}
	}
	return models.CategoryFood
}

// unitAliases normalizes Spoonacular's free-text units into the short tokens
// the app uses. Unknown short units (g, ml, kg, L) pass through lowercased.
var unitAliases = map[string]string{
	"":             "pcs",
	"serving":      "pcs",
	"servings":     "pcs",
	"tablespoon":   "tbsp",
	"tablespoons":  "tbsp",
	"tbsp":         "tbsp",
	"tbsps":        "tbsp",
	"teaspoon":     "tsp",
	"teaspoons":    "tsp",
	"cup":          "cups",
	"ounce":        "oz",
	"ounces":       "oz",
	"pound":        "lbs",
	"pounds":       "lbs",
	"lb":           "lbs",
	"gallon":       "gal",
	"gallons":      "gal",
	"quart":        "qt",
	"quarts":       "qt",
	"fluid ounce":  "fl oz",
	"fluid ounces": "fl oz",
	"fl. oz.":      "fl oz",
	"clove":        "pcs",
	"cloves":       "pcs",
	"pinch":        "pcs",
	"dash":         "pcs",
	"large":        "pcs",
	"medium":       "pcs",
	"small":        "pcs",
	"piece":        "pcs",
	"pieces":       "pcs",
	"slice":        "pcs",
	"slices":       "pcs",
	"can":          "cans",
	"bottle":       "bottles",
	"bunch":        "pcs",
	"handful":      "pcs",
	"stalk":        "pcs",
	"stalks":       "pcs",
	"sprig":        "pcs",
	"sprigs":       "pcs",
	"leaf":         "pcs",
	"leaves":       "pcs",
}

func normalizeUnit(unit string) string {
	if normalized, ok := unitAliases[unit]; ok {
		return normalized
	}
	lower := strings.ToLower(unit)
	if normalized, ok := unitAliases[lower]; ok {
		return normalized
	}
	if lower == "" {
		return "pcs"
	}
	return lower
}
