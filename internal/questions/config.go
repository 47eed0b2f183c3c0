package questions

// Config controls question generation.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// batch. They execute in order; the first failure stops the pipeline.
	Validators []Validator `mapstructure:"-"`

	// MaxTokens is the token budget for one batch.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `mapstructure:"temperature"`

	// DisableLocal removes the offline template source from the end of
	// the fallback chain.
	DisableLocal bool `mapstructure:"disable_local"`
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:  DefaultValidators(),
		MaxTokens:   2048,
		Temperature: 0.5,
	}
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&CoverageValidator{},
	}
}
