package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}

func TestAutocompleteMapsSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

		var req AutocompleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "taj palace", req.Input)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []map[string]any{
				{
					"placePrediction": map[string]any{
						"placeId": "place-1",
						"text":    map[string]any{"text": "Taj Palace, New Delhi"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	got, err := client.Autocomplete(context.Background(), AutocompleteRequest{Input: "taj palace"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "place-1", got[0].PlaceID)
	assert.Equal(t, "Taj Palace, New Delhi", got[0].Description)
}

func TestAutocompleteRequiresInput(t *testing.T) {
	client, err := NewClient("test-key")
	require.NoError(t, err)

	_, err = client.Autocomplete(context.Background(), AutocompleteRequest{})
	assert.Error(t, err)
}

func TestResolvePlaceMapsDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/places/place-1", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":               "place-1",
			"formattedAddress": "Taj Palace, Sardar Patel Marg, New Delhi",
			"location":         map[string]any{"latitude": 28.6, "longitude": 77.17},
			"addressComponents": []map[string]any{
				{"longText": "New Delhi", "shortText": "ND", "types": []string{"locality"}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	got, err := client.ResolvePlace(context.Background(), "place-1")
	require.NoError(t, err)
	assert.Equal(t, "place-1", got.PlaceID)
	assert.InDelta(t, 28.6, got.Location.Latitude, 0.001)
	require.Len(t, got.AddressComponents, 1)
	assert.Equal(t, "New Delhi", got.AddressComponents[0].LongName)
}
