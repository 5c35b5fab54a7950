package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENABLED", "PORT", "MODE", "INJECT_CHILDREN"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.Mode != defaultMode {
		t.Errorf("Mode = %q, want %q", cfg.Mode, defaultMode)
	}
	if !cfg.InjectChildren {
		t.Error("InjectChildren = false, want true by default")
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENABLED", "false")
	t.Setenv("PORT", "7000")
	t.Setenv("MODE", "accessibility")
	t.Setenv("INJECT_CHILDREN", "false")

	cfg := Load()
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Port)
	}
	if cfg.Mode != "accessibility" {
		t.Errorf("Mode = %q, want accessibility", cfg.Mode)
	}
	if cfg.InjectChildren {
		t.Error("InjectChildren = true, want false")
	}
}

func TestLoadFallsBackOnInvalidInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	cfg := Load()
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want fallback %d on invalid input", cfg.Port, defaultPort)
	}
}
