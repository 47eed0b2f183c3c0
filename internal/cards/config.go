package cards

// Config holds learning card generation settings.
type Config struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`

	// PreferCurated returns hand-written card content without asking an
	// LLM.
	PreferCurated bool `mapstructure:"prefer_curated"`
}

// DefaultConfig returns sensible defaults for card generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     1024,
		Temperature:   0.5,
		PreferCurated: true,
	}
}
