// Package llm provides the generative-model client and the recommendation
// enricher built on it. The model is always an optional collaborator:
// everything in this package degrades to "unavailable", never to a failure
// of the deterministic pipeline.
package llm

// ModelTier selects how capable a model a call needs.
type ModelTier string

const (
	// TierFast is for short, low-stakes generations
	TierFast ModelTier = "fast"
	// TierDefault is for ordinary suggestion generation
	TierDefault ModelTier = "default"
)

// Config maps tiers to provider model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierFast:    "gemini-2.5-flash-lite",
			TierDefault: "gemini-2.5-flash",
		},
	}
}

// Model resolves the model name serving a tier. An unmapped tier falls
// back to the default tier, then the fast tier, then empty.
func (c *Config) Model(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierDefault, TierFast} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped. The
// receiver is left untouched.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for t, m := range c.Models {
		models[t] = m
	}
	models[tier] = model
	return &Config{Models: models}
}
