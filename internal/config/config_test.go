package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.RestTickInterval != 10*time.Second {
		t.Fatalf("unexpected RestTickInterval: %s", cfg.RestTickInterval)
	}
	if !cfg.AutoStartNext {
		t.Fatalf("expected AutoStartNext=true by default")
	}
	if cfg.PairingWorkers != 4 || cfg.PairingParallelMinPool != 16 {
		t.Fatalf("unexpected pairing defaults: workers=%d min_pool=%d", cfg.PairingWorkers, cfg.PairingParallelMinPool)
	}
	if cfg.SkillWeights.Weight(session.SkillAdvanced) != 3 {
		t.Fatalf("unexpected default Advanced weight: %d", cfg.SkillWeights.Weight(session.SkillAdvanced))
	}
	if cfg.HistoryArchiveEnabled || cfg.HistoryArchiveDriver != ArchiveDriverMemory || cfg.HistoryArchiveCapacity != 1000 {
		t.Fatalf("unexpected archive defaults: %+v", cfg)
	}
	if cfg.ResultWebhookEnabled {
		t.Fatalf("expected webhook disabled by default")
	}
	if cfg.ResultPublishWorkers != 8 || cfg.ResultPublishTimeout != 30*time.Second {
		t.Fatalf("unexpected publish defaults: workers=%d timeout=%s", cfg.ResultPublishWorkers, cfg.ResultPublishTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_SessionParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REST_TICK_INTERVAL", "30s")
	t.Setenv("AUTO_START_NEXT", "false")
	t.Setenv("SKILL_WEIGHTS", "beginner:1, Intermediate:3,ADVANCED:5")
	t.Setenv("PAIRING_WORKERS", "8")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RestTickInterval != 30*time.Second {
		t.Fatalf("unexpected RestTickInterval: %s", cfg.RestTickInterval)
	}
	if cfg.AutoStartNext {
		t.Fatalf("expected AutoStartNext=false")
	}
	if got := cfg.SkillWeights.Weight(session.SkillIntermediate); got != 3 {
		t.Fatalf("unexpected Intermediate weight: %d", got)
	}
	if got := cfg.SkillWeights.Weight(session.SkillAdvanced); got != 5 {
		t.Fatalf("unexpected Advanced weight: %d", got)
	}
	if cfg.PairingWorkers != 8 {
		t.Fatalf("unexpected PairingWorkers: %d", cfg.PairingWorkers)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero tick", "REST_TICK_INTERVAL", "0s"},
		{"bad bool", "AUTO_START_NEXT", "maybe"},
		{"unknown tier", "SKILL_WEIGHTS", "Pro:4"},
		{"negative weight", "SKILL_WEIGHTS", "Beginner:-1"},
		{"missing weight", "SKILL_WEIGHTS", "Beginner"},
		{"zero workers", "PAIRING_WORKERS", "0"},
		{"tiny parallel pool", "PAIRING_PARALLEL_MIN_POOL", "3"},
		{"unknown driver", "HISTORY_ARCHIVE_DRIVER", "redis"},
		{"zero capacity", "HISTORY_ARCHIVE_CAPACITY", "0"},
		{"negative retries", "RESULT_WEBHOOK_RETRIES", "-1"},
		{"zero publish workers", "RESULT_PUBLISH_WORKERS", "0"},
		{"zero publish timeout", "RESULT_PUBLISH_TIMEOUT", "0s"},
		{"empty cors", "CORS_ALLOWED_ORIGINS", " , "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_WebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESULT_WEBHOOK_ENABLED", "true")
	t.Setenv("RESULT_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RESULT_WEBHOOK_ENABLED=true without RESULT_WEBHOOK_URL")
	}
}

func TestLoad_WebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("RESULT_WEBHOOK_ENABLED", "true")
	t.Setenv("RESULT_WEBHOOK_URL", "https://hooks.example.com/results")
	t.Setenv("RESULT_WEBHOOK_TOKEN", "secret")
	t.Setenv("RESULT_WEBHOOK_TIMEOUT", "2s")
	t.Setenv("RESULT_WEBHOOK_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ResultWebhookURL != "https://hooks.example.com/results" || cfg.ResultWebhookToken != "secret" {
		t.Fatalf("unexpected webhook target: %+v", cfg)
	}
	if cfg.ResultWebhookTimeout != 2*time.Second {
		t.Fatalf("unexpected ResultWebhookTimeout: %s", cfg.ResultWebhookTimeout)
	}
	if cfg.ResultWebhookCircuitFailureCount != 3 || !cfg.ResultWebhookCircuitEnabled {
		t.Fatalf("unexpected circuit config: %+v", cfg)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar,uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "courtside-club")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "courtside-club" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}
