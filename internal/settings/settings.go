package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned when a value falls outside a slider's bounds
var ErrOutOfRange = errors.New("value outside slider range")

// FloatSlider describes a bounded float control
type FloatSlider struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Help    string  `json:"help"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// IntSlider describes a bounded integer control
type IntSlider struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Help    string `json:"help"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Step    int    `json:"step"`
	Default int    `json:"default"`
}

// Temperature is the creativity control passed through as the sampling temperature
var Temperature = FloatSlider{
	Name:    "temperature",
	Label:   "Creativity Level",
	Help:    "Lower = more predictable, Higher = more creative",
	Min:     0.1,
	Max:     1.0,
	Step:    0.1,
	Default: 0.7,
}

// MaxTokens is the response length control passed through as max_tokens
var MaxTokens = IntSlider{
	Name:    "max_tokens",
	Label:   "Response Length",
	Help:    "Maximum length of generated content",
	Min:     100,
	Max:     400,
	Step:    50,
	Default: 250,
}

// Contains reports whether v is within the slider bounds
func (s FloatSlider) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Contains reports whether v is within the slider bounds
func (s IntSlider) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Values is a snapshot of both sliders taken at submit time
type Values struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Defaults returns the initial slider positions
func Defaults() Values {
	return Values{
		Temperature: Temperature.Default,
		MaxTokens:   MaxTokens.Default,
	}
}

// Validate checks both values against the slider bounds. Values are never clamped.
func (v Values) Validate() error {
	if !Temperature.Contains(v.Temperature) {
		return fmt.Errorf("%s %.2f not in [%.1f, %.1f]: %w", Temperature.Name, v.Temperature, Temperature.Min, Temperature.Max, ErrOutOfRange)
	}
	if !MaxTokens.Contains(v.MaxTokens) {
		return fmt.Errorf("%s %d not in [%d, %d]: %w", MaxTokens.Name, v.MaxTokens, MaxTokens.Min, MaxTokens.Max, ErrOutOfRange)
	}
	return nil
}

// ParseForm reads slider values from raw form fields.
// Empty fields fall back to the defaults.
func ParseForm(temperature, maxTokens string) (Values, error) {
	v := Defaults()

	if s := strings.TrimSpace(temperature); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Values{}, fmt.Errorf("invalid %s %q: %w", Temperature.Name, s, err)
		}
		v.Temperature = f
	}

	if s := strings.TrimSpace(maxTokens); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Values{}, fmt.Errorf("invalid %s %q: %w", MaxTokens.Name, s, err)
		}
		v.MaxTokens = n
	}

	if err := v.Validate(); err != nil {
		return Values{}, err
	}
	return v, nil
}
