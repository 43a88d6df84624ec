package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/mentat/internal/llm"
)

const defaultModelTimeout = 60 * time.Second

// createModelClient creates an LLM client based on configuration.
// This function is shared by every command that talks to a model.
func createModelClient() (llm.Client, error) {
	// Read LLM configuration from viper
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai" // default provider
	}

	config := llm.Config{
		Provider: provider,
		Model:    viper.GetString("llm.model"),
		Endpoint: viper.GetString("llm.endpoint"),
		Timeout:  viper.GetDuration("llm.timeout"),
	}
	if config.Timeout == 0 {
		config.Timeout = defaultModelTimeout
	}

	// Get API key based on provider
	switch provider {
	case "openai":
		// Check viper first, then environment variable
		apiKey := viper.GetString("llm.openai_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
		config.APIKey = apiKey

		// Set default model if not specified
		if config.Model == "" {
			config.Model = "gpt-4o-mini"
		}

	case "anthropic":
		apiKey := viper.GetString("llm.anthropic_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
		config.APIKey = apiKey

		if config.Model == "" {
			config.Model = "claude-3-5-haiku-latest"
		}

	case "gemini":
		apiKey := viper.GetString("llm.gemini_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key not found in config or GEMINI_API_KEY environment variable")
		}
		config.APIKey = apiKey

		if config.Model == "" {
			config.Model = "gemini-1.5-flash"
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	client, err := llm.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return client, nil
}
