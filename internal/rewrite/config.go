package rewrite

// Config holds variation rewrite settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Parallelism caps concurrent LLM calls per content item.
	Parallelism int
}

// DefaultConfig returns settings suited to short study passages.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.4,
		Parallelism: 2,
	}
}
