package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

func TestDefaultParamFile(t *testing.T) {
	var param ServerParam
	if err := yaml.Unmarshal(ParamDefaultFile, &param); err != nil {
		t.Fatalf("embedded default param does not parse: %v", err)
	}

	param.Weather.ApiKey = "placeholder"
	param.ApiParam.ApiKey = "placeholder"
	if err := validator.New().Struct(param); err != nil {
		t.Fatalf("embedded default param does not validate: %v", err)
	}

	if param.Location.Zip == "" || param.Location.Country == "" {
		t.Fatal("default location incomplete")
	}
	if got := param.Weather.GetPollPeriod(); got != 10*time.Minute {
		t.Errorf("weather poll period = %v, want 10m", got)
	}
	if got := param.Solar.GetPollPeriod(); got != 30*time.Minute {
		t.Errorf("solar poll period = %v, want 30m", got)
	}
	if got := param.Clock.GetRetryPeriod(); got != 30*time.Second {
		t.Errorf("clock retry period = %v, want 30s", got)
	}
	if got := param.Clock.GetResyncPeriod(); got != time.Hour {
		t.Errorf("clock resync period = %v, want 1h", got)
	}
	if got := param.Display.GetSlideDuration(); got != 10*time.Second {
		t.Errorf("slide duration = %v, want 10s", got)
	}
	if len(param.Display.SlideOrder) != 3 {
		t.Errorf("slide order = %v, want all three slides", param.Display.SlideOrder)
	}
}

func TestSlideOrderValidation(t *testing.T) {
	var param ServerParam
	if err := yaml.Unmarshal(ParamDefaultFile, &param); err != nil {
		t.Fatal(err)
	}
	param.Weather.ApiKey = "placeholder"
	param.ApiParam.ApiKey = "placeholder"

	param.Display.SlideOrder = []string{"weather", "news"}
	if err := validator.New().Struct(param); err == nil {
		t.Fatal("validator accepted unknown slide name")
	}
}

func TestApiKeyRequiredWhenEnabled(t *testing.T) {
	var param ServerParam
	if err := yaml.Unmarshal(ParamDefaultFile, &param); err != nil {
		t.Fatal(err)
	}
	param.Weather.ApiKey = "placeholder"

	param.ApiParam.Enabled = true
	param.ApiParam.ApiKey = ""
	if err := validator.New().Struct(param); err == nil {
		t.Fatal("validator accepted enabled api without key")
	}

	param.ApiParam.Enabled = false
	param.ApiParam.SslPort = 0
	if err := validator.New().Struct(param); err != nil {
		t.Fatalf("validator rejected disabled api: %v", err)
	}
}

func TestServerStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "state.yaml")

	state := NewServerState(filename)
	if !state.DisplayOn() {
		t.Fatal("fresh state should default to display on")
	}

	state.SetDisplayOn(false)
	state.FlushSave()

	reloaded := NewServerState(filename)
	if reloaded.DisplayOn() {
		t.Fatal("persisted display_off lost across reload")
	}
}

func TestServerStateFileContent(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "state.yaml")

	state := NewServerState(filename)
	state.SetDisplayOn(false)
	state.FlushSave()

	raw, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var cfg ServerStateConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("state file does not parse: %v", err)
	}
	if cfg.DisplayOn {
		t.Fatal("state file content does not match state")
	}
}
