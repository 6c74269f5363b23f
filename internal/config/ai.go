package config

import "os"

// AIConfig holds the Groq chat-completions configuration used for
// AI form generation
type AIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:    os.Getenv("GROQ_API_KEY"),
		BaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:     getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		TimeoutMS: 30000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatCompletionsEndpoint returns the full chat completions URL
func (c *AIConfig) ChatCompletionsEndpoint() string {
	return c.BaseURL + "/chat/completions"
}
