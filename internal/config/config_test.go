package config

import "testing"

func TestLoadAppliesSpecDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.WorkerReadyTimeout.Seconds() != 90 {
		t.Fatalf("WorkerReadyTimeout = %v, want 90s", cfg.WorkerReadyTimeout)
	}
	if cfg.TurnDeadline.Seconds() != 20 {
		t.Fatalf("TurnDeadline = %v, want 20s", cfg.TurnDeadline)
	}
	if cfg.EmotionStageDeadline.Seconds() != 3 {
		t.Fatalf("EmotionStageDeadline = %v, want 3s", cfg.EmotionStageDeadline)
	}
	if cfg.ResponseStageDeadline.Seconds() != 10 {
		t.Fatalf("ResponseStageDeadline = %v, want 10s", cfg.ResponseStageDeadline)
	}
	if cfg.TTSStageDeadline.Seconds() != 8 {
		t.Fatalf("TTSStageDeadline = %v, want 8s", cfg.TTSStageDeadline)
	}
	if cfg.HistoryMaxPairs != 4 {
		t.Fatalf("HistoryMaxPairs = %d, want 4", cfg.HistoryMaxPairs)
	}
	if cfg.HistoryMaxChars != 1600 {
		t.Fatalf("HistoryMaxChars = %d, want 1600", cfg.HistoryMaxChars)
	}
	if cfg.DevicePreference != "auto" {
		t.Fatalf("DevicePreference = %q, want auto", cfg.DevicePreference)
	}
	if cfg.ResponseWorkerBackend != "pattern" {
		t.Fatalf("ResponseWorkerBackend = %q, want pattern", cfg.ResponseWorkerBackend)
	}
}

func TestLoadRejectsInvalidDevicePreference(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("DEVICE_PREFERENCE", "quantum")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want error for invalid DEVICE_PREFERENCE")
	}
}

func TestLoadRejectsInvalidResponseBackend(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("RESPONSE_WORKER_BACKEND", "magic")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want error for invalid RESPONSE_WORKER_BACKEND")
	}
}

func TestLoadParsesPlainSecondsDeadlines(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("RESPONSE_STAGE_DEADLINE_S", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ResponseStageDeadline.Seconds() != 12 {
		t.Fatalf("ResponseStageDeadline = %v, want 12s", cfg.ResponseStageDeadline)
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"ADMIN_BIND_ADDR",
		"METRICS_NAMESPACE",
		"MODEL_CACHE_DIR",
		"EMOTION_WORKER_CMD",
		"RESPONSE_WORKER_CMD",
		"TTS_WORKER_CMD",
		"WORKER_READY_TIMEOUT_S",
		"WORKER_QUEUE_DEPTH",
		"WORKER_RESTART_WINDOW_S",
		"WORKER_RESTART_MAX_IN_WINDOW",
		"WORKER_EAGER_START",
		"TURN_DEADLINE_S",
		"EMOTION_STAGE_DEADLINE_S",
		"RESPONSE_STAGE_DEADLINE_S",
		"TTS_STAGE_DEADLINE_S",
		"HISTORY_MAX_PAIRS",
		"HISTORY_MAX_CHARS",
		"DEVICE_PREFERENCE",
		"RESPONSE_WORKER_BACKEND",
		"RESPONSE_MODEL_CLI",
		"TTS_NATIVE_CMD",
		"AUDIT_DATABASE_URL",
		"SHUTDOWN_TIMEOUT_S",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
