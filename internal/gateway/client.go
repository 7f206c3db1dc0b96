// Package gateway implements the HTTP client for the remote recipe
// service. It satisfies domain.RecipeSource; the core never sees HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Client)(nil)

// ── Wire types ───────────────────────────────────────────────────

type recipeWire struct {
	ID               int              `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Rating           float64          `json:"rating"`
	PrepTime         int              `json:"prep_time"`
	Images           []imageWire      `json:"images"`
	Ingredients      []ingredientWire `json:"ingredients"`
	InstructionSteps []stepWire       `json:"instruction_steps"`
	BasicIngredients []string         `json:"basic_ingredients"`
}

type imageWire struct {
	URL   string `json:"url"`
	Width int    `json:"width"`
	ID    int    `json:"id"`
}

type ingredientWire struct {
	Amount     string `json:"amount"`
	Ingredient struct {
		ID     int         `json:"id"`
		Name   string      `json:"name"`
		Images []imageWire `json:"images"`
	} `json:"ingredient"`
}

type stepWire struct {
	ID     int         `json:"id"`
	Order  int         `json:"order"`
	Text   string      `json:"text"`
	Images []imageWire `json:"images"`
}

type recipeListItemWire struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type ingredientListItemWire struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client talks to the recipe service REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a recipe gateway client. baseURL is the service
// root, e.g. "https://recipes.example.com"; trailing slashes are
// stripped.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get fetches the full recipe record for a slug. Returns
// domain.ErrNotFound when the service reports 404.
func (c *Client) Get(ctx context.Context, slug string) (*domain.Recipe, error) {
	var wire recipeWire
	op := "get recipe"
	if err := c.getJSON(ctx, op, "/recipes/slug/"+url.PathEscape(slug), &wire); err != nil {
		return nil, err
	}
	r := wire.toDomain()
	c.log.Debug("gateway: fetched recipe %q (%d steps, %d ingredients)", r.Slug, len(r.InstructionSteps), len(r.Ingredients))
	return r, nil
}

// List returns summaries of every recipe the service knows about.
func (c *Client) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	var wire []recipeListItemWire
	if err := c.getJSON(ctx, "list recipes", "/recipes/list", &wire); err != nil {
		return nil, err
	}
	out := make([]domain.RecipeSummary, len(wire))
	for i, w := range wire {
		out[i] = domain.RecipeSummary{Slug: w.Slug, Title: w.Title}
	}
	c.log.Debug("gateway: listed %d recipes", len(out))
	return out, nil
}

// ListIngredients returns summaries of every known ingredient.
func (c *Client) ListIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	var wire []ingredientListItemWire
	if err := c.getJSON(ctx, "list ingredients", "/ingredients/list", &wire); err != nil {
		return nil, err
	}
	out := make([]domain.IngredientSummary, len(wire))
	for i, w := range wire {
		out[i] = domain.IngredientSummary{ID: w.ID, Name: w.Name}
	}
	c.log.Debug("gateway: listed %d ingredients", len(out))
	return out, nil
}

// ListByIngredient returns summaries of recipes using an ingredient.
func (c *Client) ListByIngredient(ctx context.Context, ingredientID int) ([]domain.RecipeSummary, error) {
	var wire []recipeListItemWire
	path := "/recipes/by-ingredient/" + strconv.Itoa(ingredientID)
	if err := c.getJSON(ctx, "list recipes by ingredient", path, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.RecipeSummary, len(wire))
	for i, w := range wire {
		out[i] = domain.RecipeSummary{Slug: w.Slug, Title: w.Title}
	}
	c.log.Debug("gateway: ingredient %d matches %d recipes", ingredientID, len(out))
	return out, nil
}

// getJSON performs a GET and decodes the JSON body into dst.
func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("gateway: GET %s", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return &domain.TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (w recipeWire) toDomain() *domain.Recipe {
	r := &domain.Recipe{
		ID:               w.ID,
		Slug:             w.Slug,
		Title:            w.Title,
		Rating:           w.Rating,
		PrepTimeMinutes:  w.PrepTime,
		Images:           imagesToDomain(w.Images),
		BasicIngredients: w.BasicIngredients,
	}
	for _, ing := range w.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{
			Amount: ing.Amount,
			Ingredient: domain.IngredientDetail{
				ID:     ing.Ingredient.ID,
				Name:   ing.Ingredient.Name,
				Images: imagesToDomain(ing.Ingredient.Images),
			},
		})
	}
	for _, st := range w.InstructionSteps {
		r.InstructionSteps = append(r.InstructionSteps, domain.InstructionStep{
			ID:     st.ID,
			Order:  st.Order,
			Text:   st.Text,
			Images: imagesToDomain(st.Images),
		})
	}
	return r
}

func imagesToDomain(in []imageWire) []domain.RecipeImage {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.RecipeImage, len(in))
	for i, img := range in {
		out[i] = domain.RecipeImage{URL: img.URL, Width: img.Width, ID: img.ID}
	}
	return out
}
