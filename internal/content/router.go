package content

import "fmt"

// Default model identifiers on the Hugging Face inference router
const (
	DefaultConversationalModel = "HuggingFaceH4/zephyr-7b-beta"
	DefaultInstructModel       = "mistralai/Mistral-7B-Instruct-v0.2"
)

// ModelSet names the model serving each tier
type ModelSet struct {
	Conversational string `json:"conversational"`
	Instruct       string `json:"instruct"`
}

// DefaultModels returns the stock two-model split
func DefaultModels() ModelSet {
	return ModelSet{
		Conversational: DefaultConversationalModel,
		Instruct:       DefaultInstructModel,
	}
}

// For returns the model id serving tier
func (m ModelSet) For(tier Tier) string {
	if tier == TierInstruct {
		return m.Instruct
	}
	return m.Conversational
}

// Route is the resolved target of a single generation
type Route struct {
	Type   Type   `json:"content_type"`
	Tier   Tier   `json:"tier"`
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Router resolves content types to prompts and models. It has no mutable state.
type Router struct {
	models ModelSet
}

// NewRouter creates a router over the given model set
func NewRouter(models ModelSet) *Router {
	return &Router{models: models}
}

// Resolve interpolates theme into the template for t and picks its model
func (r *Router) Resolve(t Type, theme string) (Route, error) {
	rule, err := RuleFor(t)
	if err != nil {
		return Route{}, err
	}

	return Route{
		Type:   rule.Type,
		Tier:   rule.Tier,
		Model:  r.models.For(rule.Tier),
		Prompt: fmt.Sprintf(rule.Template, theme),
	}, nil
}

// ModelFor returns the model id that serves t
func (r *Router) ModelFor(t Type) (string, error) {
	rule, err := RuleFor(t)
	if err != nil {
		return "", err
	}
	return r.models.For(rule.Tier), nil
}

// Models returns the configured model set
func (r *Router) Models() ModelSet {
	return r.models
}

// TypesFor lists the content types served by tier, in dropdown order
func TypesFor(tier Tier) []Type {
	var out []Type
	for _, t := range order {
		if rules[t].Tier == tier {
			out = append(out, t)
		}
	}
	return out
}
