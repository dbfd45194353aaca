package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// weatherCodeMap maps WMO weather codes from Open-Meteo to the fixed
// condition vocabulary used in prompts.
var weatherCodeMap = map[int]string{
	0:  "Clear sky",
	1:  "Partly cloudy",
	2:  "Partly cloudy",
	3:  "Partly cloudy",
	45: "Foggy",
	48: "Foggy",
	51: "Drizzle",
	53: "Drizzle",
	55: "Drizzle",
	56: "Drizzle",
	57: "Drizzle",
	61: "Rain",
	63: "Rain",
	65: "Rain",
	66: "Rain",
	67: "Rain",
	71: "Snow",
	73: "Snow",
	75: "Snow",
	77: "Snow",
	80: "Rain showers",
	81: "Rain showers",
	82: "Rain showers",
	85: "Snow showers",
	86: "Snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm",
	99: "Thunderstorm",
}

// CodeToCondition converts a WMO weather code to a condition string.
// Unrecognized codes map to "Unknown".
func CodeToCondition(code int) string {
	if condition, ok := weatherCodeMap[code]; ok {
		return condition
	}
	return "Unknown"
}

type Conditions struct {
	TempF         float64   `json:"temp_f"`
	FeelsLikeF    float64   `json:"feels_like_f"`
	Condition     string    `json:"condition"`
	Precipitation bool      `json:"precipitation"`
	Humidity      int       `json:"humidity"`
	WindMPH       float64   `json:"wind_mph"`
	RawCode       int       `json:"raw_code"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Summary renders the one-line sentence embedded in outfit prompts.
func (c Conditions) Summary() string {
	return fmt.Sprintf("%.0f°F (feels like %.0f°F), %s, humidity %d%%, wind %.0fmph",
		c.TempF, c.FeelsLikeF, c.Condition, c.Humidity, c.WindMPH)
}

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// Client fetches current conditions from Open-Meteo and caches the result
// in process. The cache is keyed by nothing but staleness; a single
// location per session is assumed.
type Client struct {
	httpClient *http.Client
	cacheTTL   time.Duration

	mu        sync.Mutex
	cached    *Conditions
	fetchedAt time.Time

	// Overridable for tests.
	fetch func(lat, lon float64) (*Conditions, error)
	now   func() time.Time
}

func NewClient(cacheTTL time.Duration) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
	c.fetch = c.fetchCurrent
	return c
}

// Current returns current conditions, served from cache when fresh enough.
func (c *Client) Current(lat, lon float64) (*Conditions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.cacheTTL {
		return c.cached, nil
	}

	conditions, err := c.fetch(lat, lon)
	if err != nil {
		return nil, err
	}

	c.cached = conditions
	c.fetchedAt = c.now()

	return conditions, nil
}

type openMeteoResponse struct {
	Current struct {
		Temperature2m       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
		RelativeHumidity2m  int     `json:"relative_humidity_2m"`
	} `json:"current"`
}

func (c *Client) fetchCurrent(lat, lon float64) (*Conditions, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("current", "temperature_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,relative_humidity_2m")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")

	resp, err := c.httpClient.Get(openMeteoURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	return ParseResponse(body)
}

// ParseResponse decodes a raw Open-Meteo response body into Conditions.
func ParseResponse(body []byte) (*Conditions, error) {
	var data openMeteoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	current := data.Current
	return &Conditions{
		TempF:         current.Temperature2m,
		FeelsLikeF:    current.ApparentTemperature,
		Condition:     CodeToCondition(current.WeatherCode),
		Precipitation: current.Precipitation > 0,
		Humidity:      current.RelativeHumidity2m,
		WindMPH:       current.WindSpeed10m,
		RawCode:       current.WeatherCode,
		FetchedAt:     time.Now().UTC(),
	}, nil
}
