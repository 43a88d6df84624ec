package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLLMConfig(t *testing.T) {
	t.Helper()

	keys := []string{
		"llm.provider", "llm.model", "llm.endpoint", "llm.timeout",
		"llm.openai_api_key", "llm.anthropic_api_key", "llm.gemini_api_key",
	}
	for _, key := range keys {
		viper.Set(key, "")
	}
	t.Cleanup(func() {
		for _, key := range keys {
			viper.Set(key, "")
		}
	})

	// Keep ambient credentials out of the test
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestCreateModelClientRequiresAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantIn   string
	}{
		{name: "openai", provider: "openai", wantIn: "OPENAI_API_KEY"},
		{name: "anthropic", provider: "anthropic", wantIn: "ANTHROPIC_API_KEY"},
		{name: "gemini", provider: "gemini", wantIn: "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLLMConfig(t)
			viper.Set("llm.provider", tt.provider)

			_, err := createModelClient()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestCreateModelClientUnsupportedProvider(t *testing.T) {
	resetLLMConfig(t)
	viper.Set("llm.provider", "mistral")

	_, err := createModelClient()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestCreateModelClientFromConfigKey(t *testing.T) {
	resetLLMConfig(t)
	viper.Set("llm.provider", "openai")
	viper.Set("llm.openai_api_key", "sk-test")

	client, err := createModelClient()

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCreateModelClientFromEnvironment(t *testing.T) {
	resetLLMConfig(t)
	viper.Set("llm.provider", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	client, err := createModelClient()

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCreateModelClientDefaultsToOpenAI(t *testing.T) {
	resetLLMConfig(t)
	viper.Set("llm.openai_api_key", "sk-test")

	client, err := createModelClient()

	require.NoError(t, err)
	assert.NotNil(t, client)
}
