package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.NATSSubject != "resumes.events" {
		t.Fatalf("expected default subject resumes.events, got %q", cfg.NATSSubject)
	}
	if cfg.OpenAIModel != "gpt-4" {
		t.Fatalf("expected default model gpt-4, got %q", cfg.OpenAIModel)
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Fatalf("expected default upload limit 5MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 10 {
		t.Fatalf("expected default rate 10 rps, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.4")

	cfg := Load()
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected model override, got %q", cfg.OpenAIModel)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("expected upload limit 1MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate 2.5 rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.BreakerFailureRatio != 0.4 {
		t.Fatalf("expected breaker ratio 0.4, got %v", cfg.BreakerFailureRatio)
	}
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg := Load()
	if cfg.MaxUploadBytes != 5<<20 {
		t.Fatalf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimitRPS != 10 {
		t.Fatalf("expected fallback rate, got %v", cfg.RateLimitRPS)
	}
}
