package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ipAPIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// IPSource resolves the position of the host from its public IP address using
// an ip-api.com compatible endpoint.
type IPSource struct {
	url    string
	client *http.Client
}

func NewIPSource(url string, client *http.Client) *IPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &IPSource{url: url, client: client}
}

func (s *IPSource) Name() string {
	return "ip"
}

func (s *IPSource) CurrentPosition(ctx context.Context) (Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Coordinate{}, &Error{Code: Timeout, Err: err}
		}
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: fmt.Errorf("geolocation request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Coordinate{}, &Error{Code: PermissionDenied, Err: fmt.Errorf("geolocation returned status code: %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: fmt.Errorf("geolocation returned status code: %d", resp.StatusCode)}
	}

	var apiResp ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: fmt.Errorf("geolocation returned malformed JSON: %w", err)}
	}

	if apiResp.Status != "success" {
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: fmt.Errorf("geolocation failed: %s", apiResp.Message)}
	}

	if apiResp.Lat == nil || apiResp.Lon == nil {
		return Coordinate{}, &Error{Code: PositionUnavailable, Err: errors.New("geolocation response lacks lat/lon")}
	}

	return Coordinate{Latitude: *apiResp.Lat, Longitude: *apiResp.Lon}, nil
}
