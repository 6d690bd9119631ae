package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"ulascansenturk/watchface-weather/internal/location"
)

const DefaultOpenWeatherMapURL = "http://api.openweathermap.org/data/2.5/weather"

var (
	ErrTransport         = errors.New("weather request failed")
	ErrMalformedResponse = errors.New("malformed weather response")
)

type WeatherReading struct {
	TemperatureCelsius int    `json:"temperature_celsius"`
	Conditions         string `json:"conditions"`
}

type WeatherProvider interface {
	Name() string
	GetCurrentWeather(ctx context.Context, coord location.Coordinate) (WeatherReading, error)
}

type openWeatherMapProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenWeatherMapProvider uses the transport defaults of client. A nil
// client gets a plain http.Client without a timeout.
func NewOpenWeatherMapProvider(baseURL string, client *http.Client) WeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherMapURL
	}
	if client == nil {
		client = &http.Client{}
	}

	return &openWeatherMapProvider{
		baseURL: baseURL,
		client:  client,
	}
}

type OpenWeatherMapResponse struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather *[]struct {
		Main *string `json:"main"`
	} `json:"weather"`
}

func (p *openWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

func (p *openWeatherMapProvider) GetCurrentWeather(ctx context.Context, coord location.Coordinate) (WeatherReading, error) {
	endpoint, err := BuildURL(p.baseURL, coord)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return WeatherReading{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WeatherReading{}, fmt.Errorf("%w: returned status code: %d", ErrTransport, resp.StatusCode)
	}

	var apiResp OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return WeatherReading{}, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}

	return apiResp.Reading()
}

// Reading extracts the temperature and conditions, failing on any missing
// field instead of substituting zero values.
func (r OpenWeatherMapResponse) Reading() (WeatherReading, error) {
	if r.Main == nil || r.Main.Temp == nil {
		return WeatherReading{}, fmt.Errorf("%w: missing main.temp", ErrMalformedResponse)
	}

	if r.Weather == nil || len(*r.Weather) == 0 {
		return WeatherReading{}, fmt.Errorf("%w: empty weather array", ErrMalformedResponse)
	}

	if temp := *r.Main.Temp; temp < minKelvin || temp > maxKelvin || math.IsNaN(temp) {
		return WeatherReading{}, fmt.Errorf("%w: unlikely temperature value: %f K", ErrMalformedResponse, temp)
	}

	conditions := (*r.Weather)[0].Main
	if conditions == nil {
		return WeatherReading{}, fmt.Errorf("%w: missing weather[0].main", ErrMalformedResponse)
	}

	return WeatherReading{
		TemperatureCelsius: KelvinToCelsius(*r.Main.Temp),
		Conditions:         *conditions,
	}, nil
}

// BuildURL sets lat and lon on baseURL, keeping any query it already has.
func BuildURL(baseURL string, coord location.Coordinate) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	query := u.Query()
	query.Set("lat", FormatCoordinate(coord.Latitude))
	query.Set("lon", FormatCoordinate(coord.Longitude))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const (
	minKelvin = 0
	maxKelvin = 400

	absoluteZeroOffset = 273.15
	// float64 subtraction leaves noise in the low bits (273.65-273.15 is
	// 0.49999999999997726), so the delta is snapped before rounding.
	roundingPrecision = 1e9
)

// KelvinToCelsius rounds half away from zero.
func KelvinToCelsius(kelvin float64) int {
	delta := kelvin - absoluteZeroOffset
	snapped := math.Round(delta*roundingPrecision) / roundingPrecision
	return int(math.Round(snapped))
}
