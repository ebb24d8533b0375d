package viewer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/models"
)

// DefaultPageSize is the listing grid capacity (4 columns by 5 rows).
const DefaultPageSize = 20

// LoadLimit is how many open markets a Load requests.
const LoadLimit = 100

// Phase is the coarse controller state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	// PhaseSampleData means the last load failed and the embedded sample
	// set is on display.
	PhaseSampleData
)

// Source supplies market data. The polymarket client implements it; tests
// supply fakes.
type Source interface {
	OpenMarkets(ctx context.Context, limit int) ([]models.Market, error)
	MarketByID(ctx context.Context, id string) (*models.Market, error)
}

// Controller owns the full market collection and the currently visible
// filtered, paginated slice. It is single-goroutine: every mutation happens
// inside one of its methods, in response to a discrete command.
type Controller struct {
	source Source
	rules  []models.CategoryRule

	all      []models.Market
	filtered []models.Market
	filters  Filters
	page     int
	pageSize int

	phase  Phase
	notice string
}

// Option configures a Controller.
type Option func(*Controller)

// WithCategoryRules overrides the built-in keyword rules.
func WithCategoryRules(rules []models.CategoryRule) Option {
	return func(c *Controller) { c.rules = rules }
}

// WithPageSize overrides the default page size.
func WithPageSize(size int) Option {
	return func(c *Controller) { c.pageSize = size }
}

// New creates a Controller in the Idle phase.
func New(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		rules:    models.DefaultCategoryRules,
		page:     1,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the open-market collection. On failure it installs the
// embedded sample set and a visible notice instead of leaving the listing
// empty; the fallback is announced, never silent.
func (c *Controller) Load(ctx context.Context) {
	c.phase = PhaseLoading
	c.notice = ""

	markets, err := c.source.OpenMarkets(ctx, LoadLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load markets")
		c.all = models.SampleMarkets()
		c.phase = PhaseSampleData
		c.notice = "The market API is currently unavailable. Showing sample data for demonstration purposes."
	} else {
		c.all = markets
		c.phase = PhaseLoaded
	}

	SortByVolume(c.all)
	c.page = 1
	c.recompute()

	log.Info().
		Int("count", len(c.all)).
		Bool("sample", c.phase == PhaseSampleData).
		Msg("Markets loaded")
}

// Refresh re-runs Load with the current filters kept.
func (c *Controller) Refresh(ctx context.Context) {
	c.Load(ctx)
}

// SetSearch updates the search predicate.
func (c *Controller) SetSearch(term string) {
	c.filters.Search = term
	c.filtersChanged()
}

// SetCategory updates the category predicate.
func (c *Controller) SetCategory(category string) {
	c.filters.Category = category
	c.filtersChanged()
}

// SetStatus updates the status predicate (StatusAny, StatusActive or
// StatusClosed).
func (c *Controller) SetStatus(status string) {
	c.filters.Status = status
	c.filtersChanged()
}

// SetVolumeBounds updates the inclusive min/max volume predicates. Values
// that do not parse as numbers act as "no constraint".
func (c *Controller) SetVolumeBounds(min, max string) {
	c.filters.MinVolume = min
	c.filters.MaxVolume = max
	c.filtersChanged()
}

// ClearFilters drops every predicate and restores the full volume-sorted
// collection at page 1.
func (c *Controller) ClearFilters() {
	c.filters = Filters{}
	c.filtersChanged()
}

func (c *Controller) filtersChanged() {
	c.page = 1
	c.recompute()
}

// NextPage advances one page; past the last page it is a no-op.
func (c *Controller) NextPage() {
	if c.page < TotalPages(len(c.filtered), c.pageSize) {
		c.page++
	}
}

// PrevPage goes back one page; at page 1 it is a no-op.
func (c *Controller) PrevPage() {
	if c.page > 1 {
		c.page--
	}
}

func (c *Controller) recompute() {
	c.filtered = Apply(c.all, c.filters, c.rules)
	c.page = ClampPage(c.page, TotalPages(len(c.filtered), c.pageSize))
}

// CurrentPage builds the renderable page from current state.
func (c *Controller) CurrentPage() Page {
	total := TotalPages(len(c.filtered), c.pageSize)
	visible := PageSlice(c.filtered, c.page, c.pageSize)

	cards := make([]Card, 0, len(visible))
	for _, m := range visible {
		cards = append(cards, NewCard(m, c.filters.Search))
	}

	return Page{
		Cards:      cards,
		Number:     c.page,
		TotalPages: total,
		HasPrev:    c.page > 1,
		HasNext:    c.page < total,
		NoResults:  len(c.filtered) == 0,
	}
}

// OpenMarket fetches the full record for one market and builds the detail
// view. A failure is non-fatal and leaves the listing state untouched.
func (c *Controller) OpenMarket(ctx context.Context, id string) (*Detail, error) {
	market, err := c.source.MarketByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to load market details")
		return nil, err
	}
	detail := NewDetail(*market)
	return &detail, nil
}

// Categories returns the selectable category options for the loaded
// collection.
func (c *Controller) Categories() []string {
	return Categories(c.all, c.rules)
}

// Stats returns the summary statistics for the current state.
func (c *Controller) Stats() Stats {
	return ComputeStats(c.all, c.filtered)
}

// Filters returns a copy of the active predicates.
func (c *Controller) Filters() Filters {
	return c.filters
}

// Phase returns the coarse controller state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Notice returns the user-facing notice text, "" when there is none.
func (c *Controller) Notice() string {
	return c.notice
}
