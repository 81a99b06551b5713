// Package spoonacular is a client for the Spoonacular recipe API.
package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	mHttp "github.com/matt-dz/recipehub/internal/http"
	mJson "github.com/matt-dz/recipehub/internal/json"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
)

const (
	DefaultBaseURL  = "https://api.spoonacular.com"
	DefaultPageSize = 12
	// SuggestionCount is how many type-ahead hits Suggest asks for.
	SuggestionCount = 5
	// MinSuggestPrefix is the shortest prefix Suggest sends upstream.
	MinSuggestPrefix = 3
)

type Config struct {
	APIKey  string
	BaseURL string
	HTTP    mHttp.HTTPDoer
	Logger  *slog.Logger
}

type Client struct {
	apiKey  string
	baseURL string
	http    mHttp.HTTPDoer
	logger  *slog.Logger
}

func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTP == nil {
		config.HTTP = mHttp.New(mHttp.DefaultConfig())
	}
	if config.Logger == nil {
		config.Logger = log.NullLogger()
	}
	return &Client{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    config.HTTP,
		logger:  config.Logger,
	}
}

type SearchParams struct {
	Query  string
	Offset int
	// Number defaults to DefaultPageSize.
	Number int
	// Type is the API's coarse dish type, e.g. "dessert".
	Type string
}

type SearchResult struct {
	Results      []recipe.Record
	Offset       int
	Number       int
	TotalResults int
}

type Suggestion struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type apiRecipe struct {
	ID                   int64               `json:"id"`
	Title                string              `json:"title"`
	Image                string              `json:"image"`
	ReadyInMinutes       int                 `json:"readyInMinutes"`
	Servings             int                 `json:"servings"`
	DishTypes            []string            `json:"dishTypes"`
	ExtendedIngredients  []recipe.Ingredient `json:"extendedIngredients"`
	AnalyzedInstructions []instructionSet    `json:"analyzedInstructions"`
}

type instructionSet struct {
	Name  string        `json:"name"`
	Steps []recipe.Step `json:"steps"`
}

type searchResponse struct {
	Results      []apiRecipe `json:"results"`
	Offset       int         `json:"offset"`
	Number       int         `json:"number"`
	TotalResults int         `json:"totalResults"`
}

type randomResponse struct {
	Recipes []apiRecipe `json:"recipes"`
}

func (a apiRecipe) record() recipe.Record {
	return recipe.Record{
		ID:                  a.ID,
		Title:               a.Title,
		Image:               a.Image,
		ReadyInMinutes:      a.ReadyInMinutes,
		Servings:            a.Servings,
		ExtendedIngredients: a.ExtendedIngredients,
		Steps:               flattenSteps(a.AnalyzedInstructions),
		DishTypes:           a.DishTypes,
		Source:              recipe.SourceExternal,
	}
}

func records(in []apiRecipe) []recipe.Record {
	out := make([]recipe.Record, 0, len(in))
	for _, a := range in {
		out = append(out, a.record())
	}
	return out
}

// flattenSteps joins the steps of every instruction set. The API numbers
// steps per set, so they are renumbered.
func flattenSteps(sets []instructionSet) []recipe.Step {
	var steps []recipe.Step
	for _, set := range sets {
		for _, step := range set.Steps {
			steps = append(steps, recipe.Step{Number: len(steps) + 1, Step: step.Step})
		}
	}
	return steps
}

// Search runs a complex search.
func (c *Client) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	const op = "search"
	if params.Number <= 0 {
		params.Number = DefaultPageSize
	}
	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("offset", strconv.Itoa(params.Offset))
	query.Set("number", strconv.Itoa(params.Number))
	query.Set("addRecipeInformation", "true")
	query.Set("fillIngredients", "true")
	if params.Type != "" {
		query.Set("type", params.Type)
	}

	var resp searchResponse
	if err := c.get(ctx, op, "/recipes/complexSearch", query, &resp); err != nil {
		return SearchResult{}, err
	}
	if resp.Results == nil {
		return SearchResult{}, c.malformed(ctx, op, errors.New("missing results"))
	}
	return SearchResult{
		Results:      records(resp.Results),
		Offset:       resp.Offset,
		Number:       resp.Number,
		TotalResults: resp.TotalResults,
	}, nil
}

// GetByID fetches the full information of one recipe.
func (c *Client) GetByID(ctx context.Context, id int64) (recipe.Record, error) {
	const op = "information"
	var resp apiRecipe
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.get(ctx, op, path, url.Values{}, &resp); err != nil {
		return recipe.Record{}, err
	}
	if resp.ID == 0 || resp.Title == "" {
		return recipe.Record{}, c.malformed(ctx, op, errors.New("missing id or title"))
	}
	return resp.record(), nil
}

// GetInstructions fetches the analyzed steps of one recipe.
func (c *Client) GetInstructions(ctx context.Context, id int64) ([]recipe.Step, error) {
	const op = "analyzedInstructions"
	var resp []instructionSet
	path := fmt.Sprintf("/recipes/%d/analyzedInstructions", id)
	if err := c.get(ctx, op, path, url.Values{}, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, c.malformed(ctx, op, errors.New("missing instruction list"))
	}
	return flattenSteps(resp), nil
}

// Random fetches count random recipes.
func (c *Client) Random(ctx context.Context, count int) ([]recipe.Record, error) {
	const op = "random"
	if count <= 0 {
		count = DefaultPageSize
	}
	query := url.Values{}
	query.Set("number", strconv.Itoa(count))

	var resp randomResponse
	if err := c.get(ctx, op, "/recipes/random", query, &resp); err != nil {
		return nil, err
	}
	if resp.Recipes == nil {
		return nil, c.malformed(ctx, op, errors.New("missing recipes"))
	}
	return records(resp.Recipes), nil
}

// SearchByIngredients finds recipes using the given ingredients.
func (c *Client) SearchByIngredients(ctx context.Context, ingredients []string) ([]recipe.Record, error) {
	const op = "findByIngredients"
	query := url.Values{}
	query.Set("ingredients", strings.Join(ingredients, ","))
	query.Set("number", strconv.Itoa(DefaultPageSize))

	var resp []apiRecipe
	if err := c.get(ctx, op, "/recipes/findByIngredients", query, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, c.malformed(ctx, op, errors.New("missing result list"))
	}
	return records(resp), nil
}

// Suggest returns type-ahead titles for prefix. Prefixes shorter than
// MinSuggestPrefix return nothing without calling the API.
func (c *Client) Suggest(ctx context.Context, prefix string) ([]Suggestion, error) {
	const op = "autocomplete"
	prefix = strings.TrimSpace(prefix)
	if len([]rune(prefix)) < MinSuggestPrefix {
		return []Suggestion{}, nil
	}
	query := url.Values{}
	query.Set("query", prefix)
	query.Set("number", strconv.Itoa(SuggestionCount))

	var resp []Suggestion
	if err := c.get(ctx, op, "/recipes/autocomplete", query, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, c.malformed(ctx, op, errors.New("missing suggestion list"))
	}
	if len(resp) > SuggestionCount {
		resp = resp[:SuggestionCount]
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Op: op, Err: ErrRequestFailed, Detail: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "recipe API request failed", slog.String("op", op), slog.Any("error", err))
		return &Error{Op: op, Err: ErrRequestFailed, Detail: err}
	}
	if err := mHttp.ExpectStatus2xx(resp); err != nil {
		var statusErr *mHttp.StatusError
		if !errors.As(err, &statusErr) {
			return &Error{Op: op, Err: ErrRequestFailed, Detail: err}
		}
		sentinel := ErrRequestFailed
		switch statusErr.StatusCode {
		case http.StatusPaymentRequired:
			sentinel = ErrQuotaExceeded
		case http.StatusNotFound:
			sentinel = ErrNotFound
		}
		c.logger.WarnContext(ctx, "recipe API returned an error status",
			slog.String("op", op), slog.Int("status", statusErr.StatusCode))
		return &Error{Op: op, Status: statusErr.StatusCode, Err: sentinel, Detail: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := mJson.Decode(resp.Body, dst); err != nil {
		return c.malformed(ctx, op, err)
	}
	return nil
}

func (c *Client) malformed(ctx context.Context, op string, detail error) error {
	c.logger.ErrorContext(ctx, "malformed recipe API response", slog.String("op", op), slog.Any("error", detail))
	return &Error{Op: op, Err: ErrMalformedResponse, Detail: detail}
}
