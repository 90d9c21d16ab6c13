package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	if cfg.MongoDB != "ecocropshare_db" {
		t.Errorf("MongoDB = %q, want default", cfg.MongoDB)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v, want default", cfg.AllowedOrigins)
	}
}

func TestSplitOrigins(t *testing.T) {
	origins := splitOrigins("http://a.com, http://b.com ,,http://c.com")
	want := []string{"http://a.com", "http://b.com", "http://c.com"}
	if len(origins) != len(want) {
		t.Fatalf("got %v, want %v", origins, want)
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Errorf("origins[%d] = %q, want %q", i, origins[i], want[i])
		}
	}
}
