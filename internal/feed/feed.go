// Package feed holds the state of the home recipe grid: the current
// batch, the active category and search, and any load error.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/matt-dz/recipehub/internal/category"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

// Messages shown in place of the grid.
const (
	QuotaMessage        = "API quota exceeded. Please try again later."
	SearchFailedMessage = "Failed to search recipes"
	RandomFailedMessage = "Failed to fetch recipes"
)

var ErrNoRecipe = errors.New("no recipe returned")

// Source is the part of the recipe API the feed reads.
type Source interface {
	Search(ctx context.Context, params spoonacular.SearchParams) (spoonacular.SearchResult, error)
	Random(ctx context.Context, count int) ([]recipe.Record, error)
}

type State struct {
	Recipes  []recipe.Summary  `json:"recipes"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
	Category category.Category `json:"category"`
	Query    string            `json:"query,omitempty"`
	Offset   int               `json:"offset"`
	Total    int               `json:"totalResults"`
}

type Options struct {
	PageSize int
	Logger   *slog.Logger
}

// Feed is safe for concurrent use. Results of a request are dropped when
// a newer request started meanwhile, or once the feed is closed.
type Feed struct {
	source   Source
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	closed     bool
}

func New(source Source, opts Options) *Feed {
	if opts.PageSize <= 0 {
		opts.PageSize = spoonacular.DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = log.NullLogger()
	}
	return &Feed{
		source:   source,
		pageSize: opts.PageSize,
		logger:   opts.Logger,
		state:    State{Recipes: []recipe.Summary{}, Category: category.All},
	}
}

// State returns a copy of the current state.
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Feed) snapshot() State {
	s := f.state
	s.Recipes = append([]recipe.Summary{}, f.state.Recipes...)
	return s
}

// Close marks the feed as no longer displayed. Outstanding results are
// discarded.
func (f *Feed) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// begin starts a request and returns its generation.
func (f *Feed) begin(update func(*State)) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.state.Loading = true
	f.state.Error = ""
	update(&f.state)
	return f.generation
}

// finish applies the outcome of request gen unless it was superseded.
func (f *Feed) finish(gen uint64, records []recipe.Record, total int, errMsg string) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || gen != f.generation {
		return f.snapshot()
	}
	f.state.Loading = false
	f.state.Error = errMsg
	f.state.Total = total
	f.state.Recipes = make([]recipe.Summary, 0, len(records))
	for _, r := range records {
		f.state.Recipes = append(f.state.Recipes, recipe.Summarize(r))
	}
	return f.snapshot()
}

func failureMessage(err error, fallback string) string {
	if errors.Is(err, spoonacular.ErrQuotaExceeded) {
		return QuotaMessage
	}
	return fallback
}

// LoadRandom replaces the grid with a random batch and resets the
// category and search.
func (f *Feed) LoadRandom(ctx context.Context) State {
	gen := f.begin(func(s *State) {
		s.Category = category.All
		s.Query = ""
		s.Offset = 0
	})

	records, err := f.source.Random(ctx, f.pageSize)
	if err != nil {
		f.logger.ErrorContext(ctx, "loading random recipes", slog.Any("error", err))
		return f.finish(gen, nil, 0, failureMessage(err, RandomFailedMessage))
	}
	return f.finish(gen, records, len(records), "")
}

// Search runs query under the active category. A blank query on All
// loads a random batch instead.
func (f *Feed) Search(ctx context.Context, query string, offset int) State {
	query = strings.TrimSpace(query)
	f.mu.Lock()
	active := f.state.Category
	f.mu.Unlock()

	if query == "" && active == category.All {
		return f.LoadRandom(ctx)
	}
	gen := f.begin(func(s *State) {
		s.Query = query
		s.Offset = offset
	})
	return f.search(ctx, gen, active, query, offset)
}

func (f *Feed) search(ctx context.Context, gen uint64, active category.Category, query string, offset int) State {
	result, err := f.source.Search(ctx, spoonacular.SearchParams{
		Query:  query,
		Offset: offset,
		Number: f.pageSize,
		Type:   active.APIType(),
	})
	if err != nil {
		f.logger.ErrorContext(ctx, "searching recipes",
			slog.String("query", query), slog.String("category", string(active)), slog.Any("error", err))
		return f.finish(gen, nil, 0, failureMessage(err, SearchFailedMessage))
	}
	return f.finish(gen, category.Filter(active, result.Results), result.TotalResults, "")
}

// SelectCategory switches the active category. All clears the search
// and fetches a fresh unfiltered batch; any other category re-runs the
// current search narrowed to it.
func (f *Feed) SelectCategory(ctx context.Context, c category.Category) State {
	if c == category.All {
		return f.LoadRandom(ctx)
	}
	var query string
	gen := f.begin(func(s *State) {
		s.Category = c
		s.Offset = 0
		query = s.Query
	})
	return f.search(ctx, gen, c, query, 0)
}

// Show sets the category and the search together, the way a page load
// carrying both does.
func (f *Feed) Show(ctx context.Context, c category.Category, query string, offset int) State {
	query = strings.TrimSpace(query)
	if c == category.All && query == "" {
		return f.LoadRandom(ctx)
	}
	gen := f.begin(func(s *State) {
		s.Category = c
		s.Query = query
		s.Offset = offset
	})
	return f.search(ctx, gen, c, query, offset)
}

// SurpriseMe picks one random recipe id to open. The grid is untouched.
func (f *Feed) SurpriseMe(ctx context.Context) (int64, error) {
	records, err := f.source.Random(ctx, 1)
	if err != nil {
		return 0, fmt.Errorf("picking a random recipe: %w", err)
	}
	if len(records) == 0 {
		return 0, ErrNoRecipe
	}
	return records[0].ID, nil
}
