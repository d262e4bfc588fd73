package config

import (
	_ "embed"
	"time"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

// Durations are plain seconds in the yaml file.
type ServerParam struct {
	Location LocationParam `yaml:"location"`
	Weather  WeatherParam  `yaml:"weather"`
	Solar    SolarParam    `yaml:"solar"`
	Clock    ClockParam    `yaml:"clock"`
	Display  DisplayParam  `yaml:"display"`
	ApiParam ApiParam      `yaml:"api"`
}

type LocationParam struct {
	Name    string `yaml:"name" validate:"required"`
	Zip     string `yaml:"zip" validate:"required"`
	Country string `yaml:"country" validate:"required,len=2"`
}

type WeatherParam struct {
	ApiKey     string `yaml:"api_key"`
	PollPeriod int64  `yaml:"poll_period" validate:"required,min=60"`
}

func (p WeatherParam) GetPollPeriod() time.Duration {
	return time.Duration(p.PollPeriod) * time.Second
}

type SolarParam struct {
	Url        string `yaml:"url" validate:"required,url"`
	PollPeriod int64  `yaml:"poll_period" validate:"required,min=60"`
}

func (p SolarParam) GetPollPeriod() time.Duration {
	return time.Duration(p.PollPeriod) * time.Second
}

type ClockParam struct {
	Url              string `yaml:"url" validate:"required,url"`
	RetryPeriod      int64  `yaml:"retry_period" validate:"required,min=5"`
	ResyncPeriod     int64  `yaml:"resync_period" validate:"required,min=60"`
	LocalOffsetHours int    `yaml:"local_offset_hours" validate:"min=-14,max=14"`
}

func (p ClockParam) GetRetryPeriod() time.Duration {
	return time.Duration(p.RetryPeriod) * time.Second
}

func (p ClockParam) GetResyncPeriod() time.Duration {
	return time.Duration(p.ResyncPeriod) * time.Second
}

type DisplayParam struct {
	SlideOrder    []string `yaml:"slide_order" validate:"required,min=1,dive,oneof=weather hf utc"`
	SlideDuration int64    `yaml:"slide_duration" validate:"required,min=1"`
	SpiPort       string   `yaml:"spi_port"`
	SpiHz         int64    `yaml:"spi_hz" validate:"required,min=1000000"`
	DcPin         string   `yaml:"dc_pin" validate:"required"`
	ResetPin      string   `yaml:"reset_pin"`
	BacklightPin  string   `yaml:"backlight_pin"`
}

func (p DisplayParam) GetSlideDuration() time.Duration {
	return time.Duration(p.SlideDuration) * time.Second
}

type ApiParam struct {
	Enabled bool   `yaml:"enabled"`
	SslPort int64  `yaml:"ssl_port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	ApiKey  string `yaml:"api_key" validate:"required_if=Enabled true"`
}
