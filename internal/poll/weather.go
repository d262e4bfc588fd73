package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherPoller fetches current conditions from OpenWeatherMap, keyed by
// postal code and country.
type WeatherPoller struct {
	client  *http.Client
	baseURL string
	apiKey  string
	zip     string
	country string
}

func NewWeatherPoller(client *http.Client, apiKey, zip, country string) *WeatherPoller {
	return &WeatherPoller{
		client:  client,
		baseURL: defaultWeatherURL,
		apiKey:  apiKey,
		zip:     zip,
		country: country,
	}
}

// SetBaseURL overrides the endpoint, for tests.
func (p *WeatherPoller) SetBaseURL(u string) {
	p.baseURL = u
}

func (p *WeatherPoller) Poll(ctx context.Context) (WeatherReading, error) {
	values := url.Values{}
	values.Set("zip", fmt.Sprintf("%s,%s", p.zip, p.country))
	values.Set("units", "imperial")
	values.Set("appid", p.apiKey)

	resp, err := get(ctx, p.client, Weather, p.baseURL+"?"+values.Encode())
	if err != nil {
		return WeatherReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		WeatherList []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return WeatherReading{}, &Error{Source: Weather, Kind: ParseFailed, Field: "body", Err: err}
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		return WeatherReading{}, parseError(Weather, "main.temp")
	}
	if len(payload.WeatherList) == 0 {
		return WeatherReading{}, parseError(Weather, "weather[0].description")
	}

	return WeatherReading{
		TempF:       *payload.Main.Temp,
		Description: payload.WeatherList[0].Description,
	}, nil
}
