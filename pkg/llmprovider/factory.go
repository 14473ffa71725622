package llmprovider

import (
	"fmt"
	"sort"
	"strings"

	"restaurant-concierge/config"
	"restaurant-concierge/pkg/openai"
)

// knownBaseURLs maps provider names to their OpenAI-compatible endpoints,
// used when the config omits base_url.
var knownBaseURLs = map[string]string{
	"openai":   "https://api.openai.com/v1",
	"deepseek": "https://api.deepseek.com/v1",
	"qwen":     "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
}

// InitializeProviders creates Provider instances from config.LLMConfig,
// sorted by priority (ascending) with disabled providers filtered out.
// Providers that fail to initialize are skipped instead of failing the
// entire service.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}
	if len(cfg.Providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var initErrors []string
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			initErrors = append(initErrors, fmt.Sprintf("provider %s (priority %d): %v", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}
	return providers, nil
}

// createProvider creates one adapter from a provider config entry.
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		known, ok := knownBaseURLs[cfg.Name]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q and no base_url configured", cfg.Name)
		}
		baseURL = known
	}

	client, err := openai.New(openai.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return NewOpenAIAdapter(client, cfg.Name), nil
}
