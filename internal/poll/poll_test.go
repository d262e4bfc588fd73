package poll

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const solarSample = `<solar>
<solardata>
<solarflux>142</solarflux>
<aindex>7</aindex>
<kindex>2</kindex>
<calculatedconditions>
<band name="80m-40m" time="day">Fair</band>
<band name="30m-20m" time="day">Good</band>
<band name="12m-10m" time="day">Poor</band>
<band name="80m-40m" time="night">Good</band>
<band name="30m-20m" time="night">Good</band>
<band name="12m-10m" time="night">Poor</band>
</calculatedconditions>
</solardata>
</solar>`

func TestWeatherPoll(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"main":{"temp":41.4},"weather":[{"description":"light rain"}]}`))
	}))
	defer server.Close()

	p := NewWeatherPoller(server.Client(), "secret", "15025", "US")
	p.SetBaseURL(server.URL)

	reading, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if reading.TempF != 41.4 || reading.Description != "light rain" {
		t.Fatalf("unexpected reading: %+v", reading)
	}

	if got := gotQuery["zip"]; len(got) != 1 || got[0] != "15025,US" {
		t.Errorf("zip query = %v", got)
	}
	if got := gotQuery["units"]; len(got) != 1 || got[0] != "imperial" {
		t.Errorf("units query = %v", got)
	}
	if got := gotQuery["appid"]; len(got) != 1 || got[0] != "secret" {
		t.Errorf("appid query = %v", got)
	}
}

func TestWeatherPollHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewWeatherPoller(server.Client(), "bad", "15025", "US")
	p.SetBaseURL(server.URL)

	_, err := p.Poll(context.Background())
	var pollErr *Error
	if !errors.As(err, &pollErr) {
		t.Fatalf("error type = %T", err)
	}
	if pollErr.Kind != HTTPStatus || pollErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %+v", pollErr)
	}
}

func TestWeatherPollMissingField(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"no main", `{"weather":[{"description":"clear sky"}]}`, "main.temp"},
		{"no temp", `{"main":{},"weather":[{"description":"clear sky"}]}`, "main.temp"},
		{"no weather", `{"main":{"temp":50}}`, "weather[0].description"},
		{"empty weather", `{"main":{"temp":50},"weather":[]}`, "weather[0].description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewWeatherPoller(server.Client(), "k", "15025", "US")
			p.SetBaseURL(server.URL)

			_, err := p.Poll(context.Background())
			var pollErr *Error
			if !errors.As(err, &pollErr) {
				t.Fatalf("error type = %T", err)
			}
			if pollErr.Kind != ParseFailed || pollErr.Field != tt.field {
				t.Fatalf("unexpected error: %+v", pollErr)
			}
		})
	}
}

func TestWeatherPollConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	p := NewWeatherPoller(&http.Client{}, "k", "15025", "US")
	p.SetBaseURL(server.URL)

	_, err := p.Poll(context.Background())
	var pollErr *Error
	if !errors.As(err, &pollErr) {
		t.Fatalf("error type = %T", err)
	}
	if pollErr.Kind != ConnectionFailed {
		t.Fatalf("kind = %v, want connection failed", pollErr.Kind)
	}
}

func TestWeatherPollTimeout(t *testing.T) {
	// The handler stalls until the client gives up, then exits so that
	// server.Close() does not wait on it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	p := NewWeatherPoller(server.Client(), "k", "15025", "US")
	p.SetBaseURL(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Poll(ctx)
	var pollErr *Error
	if !errors.As(err, &pollErr) {
		t.Fatalf("error type = %T", err)
	}
	if pollErr.Kind != Timeout {
		t.Fatalf("kind = %v, want timeout", pollErr.Kind)
	}
}

func TestSolarPoll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(solarSample))
	}))
	defer server.Close()

	p := NewSolarPoller(server.Client(), server.URL)

	reading, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if reading.SolarFlux != 142 || reading.AIndex != 7 || reading.KIndex != 2 {
		t.Fatalf("unexpected indices: %+v", reading)
	}

	// Daytime labels only, remapped from feed band groups.
	want := map[string]string{"10m": "Poor", "20m": "Good", "40m": "Fair"}
	for band, label := range want {
		if reading.Bands[band] != label {
			t.Errorf("band %s = %q, want %q", band, reading.Bands[band], label)
		}
	}
}

func TestSolarPollMalformedIndex(t *testing.T) {
	body := `<solar><solardata><solarflux>n/a</solarflux><aindex>7</aindex><kindex>2</kindex></solardata></solar>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	p := NewSolarPoller(server.Client(), server.URL)

	_, err := p.Poll(context.Background())
	var pollErr *Error
	if !errors.As(err, &pollErr) {
		t.Fatalf("error type = %T", err)
	}
	if pollErr.Kind != ParseFailed || pollErr.Field != "solarflux" {
		t.Fatalf("unexpected error: %+v", pollErr)
	}
}

func TestSolarPollMissingBands(t *testing.T) {
	body := `<solar><solardata><solarflux>142</solarflux><aindex>7</aindex><kindex>2</kindex></solardata></solar>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	p := NewSolarPoller(server.Client(), server.URL)

	reading, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(reading.Bands) != 0 {
		t.Fatalf("Bands = %v, want empty", reading.Bands)
	}
}

func TestClockPoll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unixtime":1709294400}`))
	}))
	defer server.Close()

	syncedAt := time.Date(2024, 3, 1, 7, 0, 2, 0, time.Local)
	p := NewClockPoller(server.Client(), server.URL)
	p.now = func() time.Time { return syncedAt }

	reading, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if want := time.Unix(1709294400, 0).UTC(); !reading.UTC.Equal(want) {
		t.Fatalf("UTC = %v, want %v", reading.UTC, want)
	}
	if !reading.SyncedAt.Equal(syncedAt) {
		t.Fatalf("SyncedAt = %v, want %v", reading.SyncedAt, syncedAt)
	}
}

func TestClockPollMissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datetime":"2024-03-01T12:00:00Z"}`))
	}))
	defer server.Close()

	p := NewClockPoller(server.Client(), server.URL)

	_, err := p.Poll(context.Background())
	var pollErr *Error
	if !errors.As(err, &pollErr) {
		t.Fatalf("error type = %T", err)
	}
	if pollErr.Kind != ParseFailed || pollErr.Field != "unixtime" {
		t.Fatalf("unexpected error: %+v", pollErr)
	}
}

func TestClockReadingNow(t *testing.T) {
	syncedAt := time.Date(2024, 3, 1, 7, 0, 0, 0, time.Local)
	reading := ClockReading{
		UTC:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		SyncedAt: syncedAt,
	}

	got := reading.Now(syncedAt.Add(90 * time.Second))
	want := time.Date(2024, 3, 1, 12, 1, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Now = %v, want %v", got, want)
	}
}
