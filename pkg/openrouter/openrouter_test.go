package openrouter

import "testing"

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if client := NewClient(Config{BaseURL: "https://openrouter.ai/api/v1"}); client != nil {
		t.Fatal("NewClient() without api key should return nil")
	}
	if client := NewClient(Config{APIKey: "   "}); client != nil {
		t.Fatal("NewClient() with blank api key should return nil")
	}
}

func TestNewClientBuildsWithHeaders(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{
		APIKey:   "key",
		BaseURL:  "https://openrouter.ai/api/v1/",
		SiteURL:  "https://carpick.example",
		SiteName: "carpick",
	})
	if client == nil {
		t.Fatal("NewClient() = nil, want configured client")
	}
}
