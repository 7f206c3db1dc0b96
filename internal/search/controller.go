// Package search implements the progressive search controller: the
// state machine over the four search modes, the reveal window with its
// load-more progression, and the last-submitted-wins discipline for
// in-flight gateway calls.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
	"github.com/hammamikhairi/forager/internal/match"
)

// Option configures the controller.
type Option func(*Controller)

// WithPageSize sets the reveal window page size.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSuggestionLimit sets the maximum dropdown suggestion count.
func WithSuggestionLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.suggestionLimit = n
		}
	}
}

// WithShuffle replaces the discovery shuffle, letting tests pin the
// permutation.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(c *Controller) { c.shuffle = fn }
}

// Controller owns one search session. Methods that reach the gateway
// block and are meant to run on their own goroutine (the TUI wraps them
// in Bubble Tea commands); state mutation happens under a single lock,
// and a completion whose generation has been superseded by a newer user
// action is dropped, never applied.
type Controller struct {
	source          domain.RecipeSource
	log             *logger.Logger
	pageSize        int
	suggestionLimit int
	shuffle         func(n int, swap func(i, j int))

	mu          sync.Mutex
	gen         uint64
	session     domain.SearchSession
	recipes     []domain.RecipeSummary     // name-suggestion cache
	ingredients []domain.IngredientSummary // ingredient-suggestion cache
}

// New creates a search controller with the given dependencies and options.
func New(source domain.RecipeSource, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:          source,
		log:             log,
		pageSize:        6,
		suggestionLimit: 5,
		shuffle:         rand.Shuffle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current session state for projection.
func (c *Controller) Snapshot() domain.SearchSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Preload warms the suggestion caches. A failure of either list call
// degrades only that search mode and is reported in the returned error
// without touching session state.
func (c *Controller) Preload(ctx context.Context) error {
	var errs []error

	recipes, err := c.source.List(ctx)
	if err != nil {
		c.log.Warn("preload: recipe list unavailable, name search degraded: %v", err)
		errs = append(errs, fmt.Errorf("recipe list: %w", err))
	}

	ingredients, err := c.source.ListIngredients(ctx)
	if err != nil {
		c.log.Warn("preload: ingredient list unavailable, ingredient search degraded: %v", err)
		errs = append(errs, fmt.Errorf("ingredient list: %w", err))
	}

	c.mu.Lock()
	if recipes != nil {
		c.recipes = recipes
	}
	if ingredients != nil {
		c.ingredients = ingredients
	}
	c.mu.Unlock()

	c.log.Info("preloaded %d recipes, %d ingredients", len(recipes), len(ingredients))
	return errors.Join(errs...)
}

// SetMode switches the active search mode and resets the session:
// query, focused recipe, reveal window, and error are all cleared.
// Legal from any state.
func (c *Controller) SetMode(mode domain.SearchMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++ // orphan any in-flight operation
	c.session = domain.SearchSession{Mode: mode}
	c.log.Debug("mode set to %s", mode)
}

// UpdateQuery stores the raw query text and returns the dropdown
// suggestions for it. Suggestions are derived on every call, never
// stored: name mode matches the recipe cache, ingredient mode the
// ingredient cache, and the other modes have no dropdown.
func (c *Controller) UpdateQuery(text string) []domain.SearchableItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Query = text

	switch c.session.Mode {
	case domain.ModeName:
		items := make([]domain.SearchableItem, len(c.recipes))
		for i, s := range c.recipes {
			items[i] = domain.RecipeItem(s)
		}
		return match.Top(text, items, domain.SearchableItem.Key, c.suggestionLimit)
	case domain.ModeIngredient:
		items := make([]domain.SearchableItem, len(c.ingredients))
		for i, s := range c.ingredients {
			items[i] = domain.IngredientItem(s)
		}
		return match.Top(text, items, domain.SearchableItem.Key, c.suggestionLimit)
	default:
		return nil
	}
}

// SelectSuggestion resolves a picked dropdown item: a recipe suggestion
// fetches the full record into the single-recipe view, an ingredient
// suggestion replaces the reveal window with that ingredient's recipes
// and fills the first page.
func (c *Controller) SelectSuggestion(ctx context.Context, item domain.SearchableItem) error {
	switch item.Kind {
	case domain.ItemRecipe:
		return c.fetchSingle(ctx, item.Recipe.Slug, true)
	case domain.ItemIngredient:
		gen := c.begin()
		candidates, err := c.source.ListByIngredient(ctx, item.Ingredient.ID)
		if err != nil {
			c.fail(gen, err)
			return err
		}
		return c.fillWindow(ctx, gen, candidates, func(s *domain.SearchSession) {
			s.Query = ""
		})
	default:
		return nil
	}
}

// Submit acts on the raw query text. In URL mode the text must be an
// absolute URL whose last path segment is the recipe slug; malformed
// input fails without a gateway call. Name mode relies on suggestion
// selection, so a bare submit is a no-op; the remaining modes have no
// free-text submit.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	mode, text := c.session.Mode, c.session.Query
	c.mu.Unlock()

	if mode != domain.ModeURL {
		return nil
	}

	slug, err := slugFromURL(text)
	if err != nil {
		c.mu.Lock()
		c.gen++
		c.session.Single = nil
		c.session.Window = domain.ResultWindow{}
		c.session.ErrMsg = "that doesn't look like a recipe URL"
		c.session.Busy = false
		c.session.LoadingMore = false
		c.mu.Unlock()
		return err
	}

	return c.fetchSingle(ctx, slug, false)
}

// Discover fetches a fresh recipe list, shuffles it uniformly, and
// fills the first page of the reveal window. An empty list is a silent
// no-op, not an error. The session switches to discovery mode without
// requiring a prior SetMode.
func (c *Controller) Discover(ctx context.Context) error {
	gen := c.begin()

	list, err := c.source.List(ctx)
	if err != nil {
		c.fail(gen, err)
		return err
	}

	candidates := make([]domain.RecipeSummary, len(list))
	copy(candidates, list)
	c.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) == 0 {
		c.apply(gen, func(s *domain.SearchSession) {
			s.Mode = domain.ModeDiscovery
			s.Single = nil
			s.Window = domain.ResultWindow{}
		})
		return nil
	}

	return c.fillWindow(ctx, gen, candidates, func(s *domain.SearchSession) {
		s.Mode = domain.ModeDiscovery
	})
}

// LoadMore reveals the next page of the current candidate set, fetching
// the full records concurrently. It is a no-op when nothing remains or
// another operation is in flight. The window advances by the number of
// candidates attempted even when some fetches fail, so an unrecoverable
// item can never wedge the progression.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.session.Busy || c.session.LoadingMore || !c.session.Window.HasMore() {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	c.session.LoadingMore = true
	c.session.ErrMsg = ""
	start := c.session.Window.Revealed
	end := min(start+c.pageSize, len(c.session.Window.Candidates))
	page := make([]domain.RecipeSummary, end-start)
	copy(page, c.session.Window.Candidates[start:end])
	c.mu.Unlock()

	fetched, failed := c.fetchPage(ctx, page)

	var batchErr error
	if failed == len(page) && len(page) > 0 {
		batchErr = &domain.BatchError{Attempted: len(page), Failed: failed}
	}

	c.apply(gen, func(s *domain.SearchSession) {
		s.Window.Revealed += len(page)
		s.Window.Fetched = append(s.Window.Fetched, fetched...)
		if batchErr != nil {
			s.ErrMsg = "couldn't load more recipes"
		}
	})
	return batchErr
}

// ── Internals ────────────────────────────────────────────────────

// begin registers a new state-replacing operation: it supersedes any
// in-flight one and marks the session busy for its whole span.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.session.Busy = true
	c.session.LoadingMore = false
	c.session.ErrMsg = ""
	return c.gen
}

// apply runs fn against the session unless the operation has been
// superseded, in which case the completion is dropped wholesale.
func (c *Controller) apply(gen uint64, fn func(s *domain.SearchSession)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("dropping superseded completion (gen %d, current %d)", gen, c.gen)
		return false
	}
	c.session.Busy = false
	c.session.LoadingMore = false
	fn(&c.session)
	return true
}

// fail records an operation failure: the error message replaces any
// stale result.
func (c *Controller) fail(gen uint64, err error) {
	msg := "something went wrong talking to the recipe service"
	if errors.Is(err, domain.ErrNotFound) {
		msg = "no recipe found for that link"
	}
	c.apply(gen, func(s *domain.SearchSession) {
		s.Single = nil
		s.Window = domain.ResultWindow{}
		s.ErrMsg = msg
	})
	c.log.Warn("operation failed: %v", err)
}

// fetchSingle resolves one recipe by slug into the single-recipe view.
func (c *Controller) fetchSingle(ctx context.Context, slug string, clearQuery bool) error {
	gen := c.begin()

	r, err := c.source.Get(ctx, slug)
	if err != nil {
		c.fail(gen, err)
		return err
	}

	c.apply(gen, func(s *domain.SearchSession) {
		s.Single = r
		s.Window = domain.ResultWindow{}
		if clearQuery {
			s.Query = ""
		}
	})
	c.log.Info("showing recipe %q", r.Slug)
	return nil
}

// fillWindow replaces the candidate set and fetches its first page.
// extra runs inside the same guarded apply as the window swap.
func (c *Controller) fillWindow(ctx context.Context, gen uint64, candidates []domain.RecipeSummary, extra func(s *domain.SearchSession)) error {
	end := min(c.pageSize, len(candidates))
	page := candidates[:end]

	fetched, failed := c.fetchPage(ctx, page)

	var batchErr error
	if failed == len(page) && len(page) > 0 {
		batchErr = &domain.BatchError{Attempted: len(page), Failed: failed}
	}

	c.apply(gen, func(s *domain.SearchSession) {
		s.Single = nil
		s.Window = domain.ResultWindow{
			Candidates: candidates,
			Revealed:   end,
			Fetched:    fetched,
		}
		if extra != nil {
			extra(s)
		}
		if batchErr != nil {
			s.ErrMsg = "couldn't load those recipes"
		}
	})
	c.log.Info("result window: %d candidates, %d revealed, %d fetched", len(candidates), end, len(fetched))
	return batchErr
}

// fetchPage fetches the full records for a page of candidates
// concurrently, bounding latency to the slowest item. Failed items are
// dropped; the survivors keep candidate order. Returns the fetched
// records and the failure count.
func (c *Controller) fetchPage(ctx context.Context, page []domain.RecipeSummary) ([]*domain.Recipe, int) {
	if len(page) == 0 {
		return nil, 0
	}

	results := make([]*domain.Recipe, len(page))
	fails := make([]error, len(page))

	g, ctx := errgroup.WithContext(ctx)
	for i, summary := range page {
		g.Go(func() error {
			r, err := c.source.Get(ctx, summary.Slug)
			if err != nil {
				// Swallowed per item: the window advances past
				// failures instead of retrying them forever.
				c.log.Warn("batch fetch %q failed: %v", summary.Slug, err)
				fails[i] = err
				return nil
			}
			results[i] = r
			return nil
		})
	}
	g.Wait()

	fetched := make([]*domain.Recipe, 0, len(page))
	failed := 0
	for i, r := range results {
		if fails[i] != nil {
			failed++
			continue
		}
		fetched = append(fetched, r)
	}
	return fetched, failed
}

// slugFromURL extracts the recipe slug from an absolute URL: the last
// non-empty path segment.
func slugFromURL(text string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse recipe URL %q: %w", text, domain.ErrInvalidInput)
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], nil
		}
	}
	return "", fmt.Errorf("recipe URL %q has no path: %w", text, domain.ErrInvalidInput)
}
