package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// NominatimGeocodingRepository implements repository.GeocodingRepository
// against a Nominatim-compatible search endpoint
type NominatimGeocodingRepository struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewNominatimGeocodingRepository creates a new NominatimGeocodingRepository instance
func NewNominatimGeocodingRepository(baseURL, userAgent string, timeout time.Duration) repository.GeocodingRepository {
	return &NominatimGeocodingRepository{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Nominatim returns coordinates as JSON strings
type searchResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode resolves a free-form location query to an address and
// coordinates. A query with no matches returns (nil, nil).
func (r *NominatimGeocodingRepository) Geocode(query string) (*entity.LocationInfo, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequest("GET", r.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.ErrGeocodingWithCause("create search request", err)
	}

	// Nominatim's usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrGeocodingWithCause("execute search request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.ErrGeocoding("search", fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)))
	}

	var results []searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, domain.ErrGeocodingWithCause("decode search response", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, domain.ErrGeocodingWithCause("parse latitude", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, domain.ErrGeocodingWithCause("parse longitude", err)
	}

	info := entity.NewLocationInfo(results[0].DisplayName, lat, lon)
	return &info, nil
}
