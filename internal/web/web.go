// Package web holds the single HTML page and its view model.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/inference"
	"github.com/gmassist/api/internal/models"
	"github.com/gmassist/api/internal/settings"
)

// IndexTemplate is the name the page is registered under
const IndexTemplate = "index.html"

// Page copy
const (
	Title           = "AI Game Master Assistant"
	Subtitle        = "Generate creative content for your TTRPG campaign!"
	EmptyThemeText  = "Please enter a theme or keyword."
	ThemePrompt     = "Give me a theme, race, or keyword:"
	ThemeHint       = "e.g., Elf, Betrayal, Fiery Sword, Ancient Ruins"
	ContentTypeText = "What do you want to generate?"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(files, "templates/*.html")
}

// ModelInfo is one line of the sidebar model panel
type ModelInfo struct {
	ShortName string
	Types     []string
}

// Page is the view model for index.html
type Page struct {
	Title           string
	Subtitle        string
	ContentTypeText string
	ThemePrompt     string
	ThemeHint       string

	ContentTypes []string
	Selected     string
	Theme        string

	Values            settings.Values
	TemperatureSlider settings.FloatSlider
	MaxTokensSlider   settings.IntSlider

	Models []ModelInfo

	Outcome models.Outcome
	Result  *models.GenerationResult
	Message string
}

// NewPage builds a page with default slider positions and no outcome
func NewPage(set content.ModelSet) *Page {
	types := content.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	return &Page{
		Title:             Title,
		Subtitle:          Subtitle,
		ContentTypeText:   ContentTypeText,
		ThemePrompt:       ThemePrompt,
		ThemeHint:         ThemeHint,
		ContentTypes:      names,
		Selected:          names[0],
		Values:            settings.Defaults(),
		TemperatureSlider: settings.Temperature,
		MaxTokensSlider:   settings.MaxTokens,
		Models: []ModelInfo{
			{ShortName: inference.ShortModelName(set.Conversational), Types: typeNames(content.TierConversational)},
			{ShortName: inference.ShortModelName(set.Instruct), Types: typeNames(content.TierInstruct)},
		},
	}
}

// Succeed records a successful generation
func (p *Page) Succeed(result *models.GenerationResult) {
	p.Outcome = models.OutcomeSuccess
	p.Result = result
	p.Message = ""
}

// Fail records a generation error message
func (p *Page) Fail(message string) {
	p.Outcome = models.OutcomeFailed
	p.Result = nil
	p.Message = message
}

// Warn records a validation warning
func (p *Page) Warn(message string) {
	p.Outcome = models.OutcomeWarning
	p.Result = nil
	p.Message = message
}

func typeNames(tier content.Tier) []string {
	var out []string
	for _, t := range content.TypesFor(tier) {
		out = append(out, string(t))
	}
	return out
}
