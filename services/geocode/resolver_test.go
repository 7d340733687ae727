package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func geocoderStub(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		body, ok := responses[q]
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func newTestResolver(baseURL string) *NominatimResolver {
	r := NewNominatimResolver(baseURL, nil, zap.NewNop())
	return r
}

func TestSearch_ReturnsParsedSuggestions(t *testing.T) {
	srv := geocoderStub(t, map[string]string{
		"indiranagar": `[
			{"display_name": "Indiranagar, Bengaluru", "lat": "12.9784", "lon": "77.6408"},
			{"display_name": "Indiranagar, Chennai", "lat": "13.0012", "lon": "80.2565"}
		]`,
	})
	defer srv.Close()

	r := newTestResolver(srv.URL)
	suggestions, err := r.Search(context.Background(), "draft_1", "indiranagar")

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Indiranagar, Bengaluru", suggestions[0].DisplayName)
	assert.Equal(t, 12.9784, suggestions[0].Latitude)
	assert.Equal(t, 77.6408, suggestions[0].Longitude)
}

func TestSearch_EmptyQueryMakesNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	suggestions, err := r.Search(context.Background(), "draft_1", "")

	require.NoError(t, err)
	assert.Nil(t, suggestions)
	assert.False(t, called)
}

func TestSearch_NoResults(t *testing.T) {
	srv := geocoderStub(t, nil)
	defer srv.Close()

	r := newTestResolver(srv.URL)
	_, err := r.Search(context.Background(), "draft_1", "nowhere at all")

	require.ErrorIs(t, err, ErrNoResults)
	assert.Equal(t, "No results found for the provided address.", err.Error())
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The partial query stalls until the full query has completed.
		if r.URL.Query().Get("q") == "kora" {
			close(entered)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"display_name": "Koramangala, Bengaluru", "lat": "12.9352", "lon": "77.6245"}]`)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)

	done := make(chan error, 1)
	go func() {
		_, err := r.Search(context.Background(), "draft_1", "kora")
		done <- err
	}()
	<-entered

	// A newer query supersedes the in-flight one.
	suggestions, err := r.Search(context.Background(), "draft_1", "koramangala")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	close(release)
	require.ErrorIs(t, <-done, ErrStaleResponse)
}

func TestSearch_ScopesTrackStalenessIndependently(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The first caller's query stalls while another session searches.
		if r.URL.Query().Get("q") == "kora" {
			close(entered)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"display_name": "Koramangala, Bengaluru", "lat": "12.9352", "lon": "77.6245"}]`)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)

	done := make(chan error, 1)
	go func() {
		_, err := r.Search(context.Background(), "draft_1", "kora")
		done <- err
	}()
	<-entered

	// A different session searching in parallel must not invalidate the
	// first session's in-flight query.
	suggestions, err := r.Search(context.Background(), "draft_2", "koramangala")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	close(release)
	require.NoError(t, <-done)
}

func TestResolve_FirstHitWins(t *testing.T) {
	srv := geocoderStub(t, map[string]string{
		"Indiranagar, Bengaluru": `[
			{"display_name": "Indiranagar, Bengaluru", "lat": "12.9784", "lon": "77.6408"},
			{"display_name": "Indiranagar 2nd Stage, Bengaluru", "lat": "12.9750", "lon": "77.6400"}
		]`,
	})
	defer srv.Close()

	r := newTestResolver(srv.URL)
	resolved, err := r.Resolve(context.Background(), "Indiranagar, Bengaluru")

	require.NoError(t, err)
	assert.Equal(t, "Indiranagar, Bengaluru", resolved.DisplayName)
	assert.Equal(t, 12.9784, resolved.Latitude)
}

func TestResolve_EmptyResultFails(t *testing.T) {
	srv := geocoderStub(t, nil)
	defer srv.Close()

	r := newTestResolver(srv.URL)
	_, err := r.Resolve(context.Background(), "gone address")

	require.ErrorIs(t, err, ErrSelectionFailed)
	assert.Equal(t, "Failed to get geocoding details for the selected address.", err.Error())
}

func TestSearch_SkipsUnparsableCoordinates(t *testing.T) {
	srv := geocoderStub(t, map[string]string{
		"mixed": `[
			{"display_name": "Bad", "lat": "not-a-number", "lon": "77.6"},
			{"display_name": "Good", "lat": "12.97", "lon": "77.59"}
		]`,
	})
	defer srv.Close()

	r := newTestResolver(srv.URL)
	suggestions, err := r.Search(context.Background(), "draft_1", "mixed")

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Good", suggestions[0].DisplayName)
}

func TestSearch_GeocoderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	_, err := r.Search(context.Background(), "draft_1", "anything")
	assert.Error(t, err)
}
