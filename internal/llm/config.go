package llm

// DefaultModel is the model used for faculty extraction. Flash is fast and
// cheap enough for structured extraction at low temperature.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps the output shape consistent across calls.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the client.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
	}
}
