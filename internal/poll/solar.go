package poll

import (
	"context"
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"
)

// The propagation feed publishes calculated conditions per band group; the
// slides show single bands, so each display band picks its group's daytime
// label.
var bandGroups = map[string]string{
	"10m": "12m-10m",
	"20m": "30m-20m",
	"40m": "80m-40m",
}

// SolarPoller fetches the HF propagation summary from a hamqsl-style solar
// XML feed.
type SolarPoller struct {
	client *http.Client
	url    string
}

func NewSolarPoller(client *http.Client, url string) *SolarPoller {
	return &SolarPoller{client: client, url: url}
}

func (p *SolarPoller) Poll(ctx context.Context) (SolarReading, error) {
	resp, err := get(ctx, p.client, Solar, p.url)
	if err != nil {
		return SolarReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		SolarData struct {
			SolarFlux  string `xml:"solarflux"`
			AIndex     string `xml:"aindex"`
			KIndex     string `xml:"kindex"`
			Conditions struct {
				Bands []struct {
					Name string `xml:"name,attr"`
					Time string `xml:"time,attr"`
					Cond string `xml:",chardata"`
				} `xml:"band"`
			} `xml:"calculatedconditions"`
		} `xml:"solardata"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SolarReading{}, &Error{Source: Solar, Kind: ParseFailed, Field: "body", Err: err}
	}

	reading := SolarReading{Bands: map[string]string{}}
	if reading.SolarFlux, err = parseIndex(payload.SolarData.SolarFlux, "solarflux"); err != nil {
		return SolarReading{}, err
	}
	if reading.KIndex, err = parseIndex(payload.SolarData.KIndex, "kindex"); err != nil {
		return SolarReading{}, err
	}
	if reading.AIndex, err = parseIndex(payload.SolarData.AIndex, "aindex"); err != nil {
		return SolarReading{}, err
	}

	for display, group := range bandGroups {
		for _, band := range payload.SolarData.Conditions.Bands {
			if band.Name == group && band.Time == "day" {
				if cond := strings.TrimSpace(band.Cond); cond != "" {
					reading.Bands[display] = cond
				}
			}
		}
	}
	return reading, nil
}

func parseIndex(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, parseError(Solar, field)
	}
	return v, nil
}
