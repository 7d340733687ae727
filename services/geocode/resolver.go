// Package geocode wraps the external geocoding service used for address
// autocomplete on the order form.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"laundrify/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrNoResults means the geocoder returned zero candidates.
	ErrNoResults = errors.New("No results found for the provided address.")
	// ErrSelectionFailed means the second lookup on selection came back empty.
	ErrSelectionFailed = errors.New("Failed to get geocoding details for the selected address.")
	// ErrStaleResponse marks a response that was superseded by a newer query
	// before it arrived. Callers drop it silently.
	ErrStaleResponse = errors.New("geocode: stale response discarded")
)

// Resolver turns free-text addresses into coordinate suggestions. The scope
// identifies one typing session (a draft or a user); staleness tracking is
// per scope so concurrent sessions never discard each other's responses.
//
// Selection deliberately re-queries the geocoder: the displayed suggestion
// list only carries coarse results, and the contract is that selecting an
// address always yields authoritative coordinates before geofence
// validation runs.
type Resolver interface {
	Search(ctx context.Context, scope, query string) ([]models.GeocodeSuggestion, error)
	Resolve(ctx context.Context, displayName string) (*models.GeocodeSuggestion, error)
}

// nominatimResult is the wire shape of one geocoder hit. Coordinates arrive
// as strings.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimResolver resolves addresses against a Nominatim-style endpoint,
// caching query results in Redis.
type NominatimResolver struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *redis.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger

	// seqs tags each search per scope so late responses for superseded
	// queries can be discarded instead of overwriting newer suggestions.
	// One counter per scope keeps concurrent sessions independent.
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewNominatimResolver(baseURL string, cache *redis.Client, logger *zap.Logger) *NominatimResolver {
	return &NominatimResolver{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Cache:      cache,
		CacheTTL:   10 * time.Minute,
		Logger:     logger,
		seqs:       make(map[string]uint64),
	}
}

func (r *NominatimResolver) bump(scope string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seqs == nil {
		r.seqs = make(map[string]uint64)
	}
	r.seqs[scope]++
	return r.seqs[scope]
}

func (r *NominatimResolver) current(scope string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seqs[scope]
}

// Search returns suggestions for a free-text address. An empty query returns
// no suggestions and makes no network call; the caller clears any previously
// resolved coordinates.
func (r *NominatimResolver) Search(ctx context.Context, scope, query string) ([]models.GeocodeSuggestion, error) {
	if query == "" {
		return nil, nil
	}

	tag := r.bump(scope)

	if cached := r.fromCache(ctx, query); cached != nil {
		return cached, nil
	}

	results, err := r.lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	if r.current(scope) != tag {
		return nil, ErrStaleResponse
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	suggestions := toSuggestions(results)
	r.toCache(ctx, query, suggestions)
	return suggestions, nil
}

// Resolve re-queries the geocoder for the selected display name and returns
// the first hit as the authoritative coordinates.
func (r *NominatimResolver) Resolve(ctx context.Context, displayName string) (*models.GeocodeSuggestion, error) {
	results, err := r.lookup(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrSelectionFailed
	}
	suggestions := toSuggestions(results[:1])
	return &suggestions[0], nil
}

func (r *NominatimResolver) lookup(ctx context.Context, query string) ([]nominatimResult, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&q=%s", r.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to build request: %w", err)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	return results, nil
}

func toSuggestions(results []nominatimResult) []models.GeocodeSuggestion {
	suggestions := make([]models.GeocodeSuggestion, 0, len(results))
	for _, res := range results {
		lat, errLat := strconv.ParseFloat(res.Lat, 64)
		lon, errLon := strconv.ParseFloat(res.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		suggestions = append(suggestions, models.GeocodeSuggestion{
			DisplayName: res.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
		})
	}
	return suggestions
}

func cacheKey(query string) string {
	return "geocode:" + query
}

func (r *NominatimResolver) fromCache(ctx context.Context, query string) []models.GeocodeSuggestion {
	if r.Cache == nil {
		return nil
	}
	data, err := r.Cache.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil
	}
	var suggestions []models.GeocodeSuggestion
	if err := json.Unmarshal([]byte(data), &suggestions); err != nil {
		return nil
	}
	return suggestions
}

func (r *NominatimResolver) toCache(ctx context.Context, query string, suggestions []models.GeocodeSuggestion) {
	if r.Cache == nil {
		return
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, cacheKey(query), data, r.CacheTTL).Err(); err != nil && r.Logger != nil {
		r.Logger.Warn("failed to cache geocode result", zap.String("query", query), zap.Error(err))
	}
}
