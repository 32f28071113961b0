package repository

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain"
)

func TestNominatimGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "tzbuddy-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		switch r.URL.Query().Get("q") {
		case "Berlin":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"display_name":"Berlin, Deutschland","lat":"52.5170365","lon":"13.3888599"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	repo := NewNominatimGeocodingRepository(server.URL, "tzbuddy-test/1.0", 5*time.Second)

	t.Run("found", func(t *testing.T) {
		info, err := repo.Geocode("Berlin")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Berlin, Deutschland", info.Address)
		assert.InDelta(t, 52.517, info.Latitude, 0.001)
		assert.InDelta(t, 13.389, info.Longitude, 0.001)
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		info, err := repo.Geocode("xyzzy nowhere")
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestNominatimGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	repo := NewNominatimGeocodingRepository(server.URL, "tzbuddy-test/1.0", 5*time.Second)
	_, err := repo.Geocode("Berlin")
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeGeocoding))
}

func TestNominatimGeocodeMalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"display_name":"Somewhere","lat":"not a number","lon":"0"}]`))
	}))
	defer server.Close()

	repo := NewNominatimGeocodingRepository(server.URL, "tzbuddy-test/1.0", 5*time.Second)
	_, err := repo.Geocode("Somewhere")
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeGeocoding))
}
