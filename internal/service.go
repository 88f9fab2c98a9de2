package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// ProviderFactory builds an LLM provider from its resolved configuration.
type ProviderFactory func(ctx context.Context, cfg FantasyConfig) (Provider, error)

func DefaultProviderFactory(ctx context.Context, cfg FantasyConfig) (Provider, error) {
	return NewFantasyProvider(ctx, cfg)
}

// ProviderService manages LLM provider configuration
type ProviderService struct {
	resolver    *ScopeResolver
	newProvider ProviderFactory
}

func NewProviderService(resolver *ScopeResolver, newProvider ProviderFactory) *ProviderService {
	if newProvider == nil {
		newProvider = DefaultProviderFactory
	}
	return &ProviderService{resolver: resolver, newProvider: newProvider}
}

func (s *ProviderService) List(scopeHint string) ([]string, error) {
	scope := s.resolver.Resolve(scopeHint)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *ProviderService) Add(name string, providerCfg ProviderConfig, scopeHint string) error {
	scope := s.resolver.Resolve(scopeHint)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	cfg.Providers[name] = providerCfg
	return SaveConfig(scope, cfg)
}

func (s *ProviderService) Remove(name, scopeHint string) error {
	scope := s.resolver.Resolve(scopeHint)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	if _, exists := cfg.Providers[name]; !exists {
		return fmt.Errorf("%w: provider %q", ErrNotFound, name)
	}

	delete(cfg.Providers, name)
	if cfg.DefaultProvider == name {
		cfg.DefaultProvider = ""
	}
	return SaveConfig(scope, cfg)
}

func (s *ProviderService) SetDefault(name, scopeHint string) error {
	scope := s.resolver.Resolve(scopeHint)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	if _, exists := cfg.Providers[name]; !exists {
		return fmt.Errorf("%w: provider %q", ErrNotFound, name)
	}

	cfg.DefaultProvider = name
	return SaveConfig(scope, cfg)
}

func (s *ProviderService) Test(ctx context.Context, name, scopeHint string) error {
	scope := s.resolver.Resolve(scopeHint)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	provider, err := s.open(ctx, cfg, name)
	if err != nil {
		return err
	}

	_, err = provider.Complete(ctx, "Say hello")
	return err
}

// open resolves name (or the default provider when empty) and builds it.
func (s *ProviderService) open(ctx context.Context, cfg *Config, name string) (Provider, error) {
	if name == "" {
		name = cfg.DefaultProvider
	}
	if name == "" {
		return nil, fmt.Errorf("%w: no provider configured, run 'gitplug provider add'", ErrPrecondition)
	}

	providerCfg, exists := cfg.Providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: provider %q", ErrNotFound, name)
	}

	kind := providerCfg.Type
	if kind == "" {
		kind = name
	}

	provider, err := s.newProvider(ctx, FantasyConfig{
		Provider: kind,
		APIKey:   providerCfg.APIKey,
		BaseURL:  providerCfg.BaseURL,
		Model:    providerCfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return provider, nil
}

// AgentService runs a tool-calling conversation against a session.
type AgentService struct {
	providers *ProviderService
	log       *slog.Logger
}

func NewAgentService(providers *ProviderService, log *slog.Logger) *AgentService {
	if log == nil {
		log = discardLogger()
	}
	return &AgentService{providers: providers, log: log}
}

type ChatInput struct {
	Prompt   string
	Provider string
	Scope    string
	OnText   func(text string)
}

func (s *AgentService) Chat(ctx context.Context, session *Session, input ChatInput) (string, error) {
	if input.Prompt == "" {
		return "", fmt.Errorf("%w: prompt required", ErrInvalidInput)
	}

	scope := s.providers.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return "", err
	}

	provider, err := s.providers.open(ctx, cfg, input.Provider)
	if err != nil {
		return "", err
	}

	s.log.Info("chat", "provider", provider.Name(), "prompt_len", len(input.Prompt))
	answer, err := provider.Chat(ctx, ChatRequest{
		System: SystemPrompt,
		Prompt: input.Prompt,
		Tools:  NewTools(session),
		OnText: input.OnText,
	})
	if err != nil {
		s.log.Warn("chat failed", "provider", provider.Name(), "err", err)
		return "", err
	}
	return answer, nil
}
