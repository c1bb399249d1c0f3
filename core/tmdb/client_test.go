package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovieDetailProjectsRestrictedFields(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/movie/603", r.URL.Path)
		// Upstream payloads carry far more than the projection keeps.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"overview": "A computer hacker...",
			"release_date": "1999-03-30",
			"poster_path": "/matrix.jpg",
			"budget": 63000000,
			"revenue": 463517383,
			"tagline": "Welcome to the Real World.",
			"homepage": "https://example.com",
			"production_companies": [{"id": 79, "name": "Village Roadshow"}],
			"vote_average": 8.2
		}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	detail, err := client.MovieDetail(context.Background(), "603")
	require.NoError(t, err)
	require.Equal(t, "Bearer test-key", gotAuth)

	require.Equal(t, int64(603), detail.ID)
	require.Equal(t, "The Matrix", detail.Title)
	require.Equal(t, int64(63000000), detail.Budget)
	require.Equal(t, int64(463517383), detail.Revenue)

	// Re-serializing must expose only the documented field set.
	out, err := json.Marshal(detail)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	for _, dropped := range []string{"tagline", "homepage", "production_companies", "vote_average"} {
		require.NotContains(t, fields, dropped)
	}
}

func TestMovieDetailUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	_, err := client.MovieDetail(context.Background(), "603")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestMovieDetailTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // server already gone

	client := NewClient(upstream.URL, "test-key")
	_, err := client.MovieDetail(context.Background(), "603")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestNowPlayingProjectsList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/now_playing", r.URL.Path)
		w.Write([]byte(`{
			"page": 1,
			"total_pages": 42,
			"results": [
				{"id": 1, "title": "First", "popularity": 99.5, "vote_count": 1000, "adult": false},
				{"id": 2, "title": "Second", "popularity": 12.3, "original_language": "en"}
			]
		}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	movies, err := client.NowPlaying(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	require.Equal(t, "First", movies[0].Title)
	require.Equal(t, 99.5, movies[0].Popularity)

	out, err := json.Marshal(movies[0])
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	require.NotContains(t, fields, "vote_count")
	require.NotContains(t, fields, "adult")
}

func TestAiringTodayProjectsList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/airing_today", r.URL.Path)
		w.Write([]byte(`{
			"results": [
				{"id": 7, "name": "Some Show", "popularity": 55.1, "first_air_date": "2020-01-01", "origin_country": ["US"], "vote_average": 7.7}
			]
		}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key")
	shows, err := client.AiringToday(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 1)
	require.Equal(t, "Some Show", shows[0].Name)
	require.Equal(t, "2020-01-01", shows[0].FirstAirDate)

	out, err := json.Marshal(shows[0])
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	require.NotContains(t, fields, "origin_country")
	require.NotContains(t, fields, "vote_average")
}
