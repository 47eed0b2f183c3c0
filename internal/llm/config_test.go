package llm

import "testing"

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, vk := range vendorKeys {
		t.Setenv(vk.env, "")
	}
}

func TestDiscover_PrimaryKeepsConfiguredProvider(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, ok := Discover(DefaultConfig())
	if !ok {
		t.Fatal("expected a usable provider")
	}
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("OpenAI key not discovered")
	}
}

func TestDiscover_SwitchesToFirstKeyedProvider(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, ok := Discover(DefaultConfig())
	if !ok || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("unexpected discovery: ok=%v cfg=%+v", ok, cfg)
	}
}

func TestDiscover_ExplicitKeyWins(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ANTHROPIC_API_KEY", "from-env")

	cfg := DefaultConfig()
	cfg.Anthropic.APIKey = "from-config"
	cfg, _ = Discover(cfg)
	if cfg.Anthropic.APIKey != "from-config" {
		t.Fatalf("APIKey = %q", cfg.Anthropic.APIKey)
	}
}

func TestDiscover_NothingFound(t *testing.T) {
	clearVendorKeys(t)
	if _, ok := Discover(DefaultConfig()); ok {
		t.Fatal("expected no provider")
	}
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	if _, ok := Discover(cfg); !ok {
		t.Fatal("mock needs no key")
	}
}

func TestValidateProvider(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateProvider(ProviderOpenAI); err == nil {
		t.Fatal("expected missing key error")
	}
	cfg.OpenAI.APIKey = "k"
	if err := cfg.ValidateProvider(ProviderOpenAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.ValidateProvider("cohere"); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestNewProviders_SkipsUnconfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.Alternate = ProviderMock

	got := NewProviders(t.Context(), cfg, nil, nil)
	if len(got) != 1 || got[0].Name != ProviderMock {
		t.Fatalf("NewProviders = %+v", got)
	}
}
