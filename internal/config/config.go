package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the turn inference core.
type Config struct {
	AdminBindAddr    string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	ModelCacheDir string

	EmotionWorkerCmd  string
	ResponseWorkerCmd string
	TTSWorkerCmd      string

	WorkerReadyTimeout     time.Duration
	WorkerQueueDepth       int
	WorkerRestartWindow    time.Duration
	WorkerRestartMaxInWin  int

	TurnDeadline            time.Duration
	EmotionStageDeadline    time.Duration
	ResponseStageDeadline   time.Duration
	TTSStageDeadline        time.Duration

	HistoryMaxPairs int
	HistoryMaxChars int

	DevicePreference string

	ResponseWorkerBackend string
	ResponseModelCLI      string
	TTSNativeCmd          string

	AuditDatabaseURL string

	WorkerEagerStart bool
}

// Load reads environment variables and applies the defaults normative in
// the spec (see SPEC_FULL.md §6).
func Load() (Config, error) {
	cfg := Config{
		AdminBindAddr:         envOrDefault("ADMIN_BIND_ADDR", ":8090"),
		MetricsNamespace:      envOrDefault("METRICS_NAMESPACE", "turncore"),
		ModelCacheDir:         envOrDefault("MODEL_CACHE_DIR", ".models"),
		EmotionWorkerCmd:      envOrDefault("EMOTION_WORKER_CMD", "emotionworker"),
		ResponseWorkerCmd:     envOrDefault("RESPONSE_WORKER_CMD", "responseworker"),
		TTSWorkerCmd:          envOrDefault("TTS_WORKER_CMD", "ttsworker"),
		DevicePreference:      envOrDefault("DEVICE_PREFERENCE", "auto"),
		ResponseWorkerBackend: envOrDefault("RESPONSE_WORKER_BACKEND", "pattern"),
		ResponseModelCLI:      stringsTrimSpace("RESPONSE_MODEL_CLI"),
		TTSNativeCmd:          stringsTrimSpace("TTS_NATIVE_CMD"),
		AuditDatabaseURL:      stringsTrimSpace("AUDIT_DATABASE_URL"),

		ShutdownTimeout:       10 * time.Second,
		WorkerReadyTimeout:    90 * time.Second,
		WorkerQueueDepth:      8,
		WorkerRestartWindow:   5 * time.Minute,
		WorkerRestartMaxInWin: 5,
		TurnDeadline:          20 * time.Second,
		EmotionStageDeadline:  3 * time.Second,
		ResponseStageDeadline: 10 * time.Second,
		TTSStageDeadline:      8 * time.Second,
		HistoryMaxPairs:       4,
		HistoryMaxChars:       1600,
		WorkerEagerStart:      true,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("SHUTDOWN_TIMEOUT_S", cfg.ShutdownTimeout, true)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerReadyTimeout, err = durationFromEnv("WORKER_READY_TIMEOUT_S", cfg.WorkerReadyTimeout, true)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerRestartWindow, err = durationFromEnv("WORKER_RESTART_WINDOW_S", cfg.WorkerRestartWindow, true)
	if err != nil {
		return Config{}, err
	}
	cfg.TurnDeadline, err = durationFromEnv("TURN_DEADLINE_S", cfg.TurnDeadline, true)
	if err != nil {
		return Config{}, err
	}
	cfg.EmotionStageDeadline, err = durationFromEnv("EMOTION_STAGE_DEADLINE_S", cfg.EmotionStageDeadline, true)
	if err != nil {
		return Config{}, err
	}
	cfg.ResponseStageDeadline, err = durationFromEnv("RESPONSE_STAGE_DEADLINE_S", cfg.ResponseStageDeadline, true)
	if err != nil {
		return Config{}, err
	}
	cfg.TTSStageDeadline, err = durationFromEnv("TTS_STAGE_DEADLINE_S", cfg.TTSStageDeadline, true)
	if err != nil {
		return Config{}, err
	}

	cfg.WorkerQueueDepth, err = intFromEnv("WORKER_QUEUE_DEPTH", cfg.WorkerQueueDepth)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerRestartMaxInWin, err = intFromEnv("WORKER_RESTART_MAX_IN_WINDOW", cfg.WorkerRestartMaxInWin)
	if err != nil {
		return Config{}, err
	}
	cfg.HistoryMaxPairs, err = intFromEnv("HISTORY_MAX_PAIRS", cfg.HistoryMaxPairs)
	if err != nil {
		return Config{}, err
	}
	cfg.HistoryMaxChars, err = intFromEnv("HISTORY_MAX_CHARS", cfg.HistoryMaxChars)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerEagerStart, err = boolFromEnv("WORKER_EAGER_START", cfg.WorkerEagerStart)
	if err != nil {
		return Config{}, err
	}

	if cfg.WorkerQueueDepth <= 0 {
		return Config{}, fmt.Errorf("WORKER_QUEUE_DEPTH must be positive")
	}
	if cfg.WorkerRestartMaxInWin <= 0 {
		return Config{}, fmt.Errorf("WORKER_RESTART_MAX_IN_WINDOW must be positive")
	}
	if cfg.HistoryMaxPairs <= 0 {
		return Config{}, fmt.Errorf("HISTORY_MAX_PAIRS must be positive")
	}
	if cfg.HistoryMaxChars <= 0 {
		return Config{}, fmt.Errorf("HISTORY_MAX_CHARS must be positive")
	}
	switch cfg.DevicePreference {
	case "auto", "gpu", "cpu":
	default:
		return Config{}, fmt.Errorf("DEVICE_PREFERENCE must be one of auto|gpu|cpu, got %q", cfg.DevicePreference)
	}
	switch cfg.ResponseWorkerBackend {
	case "model", "pattern":
	default:
		return Config{}, fmt.Errorf("RESPONSE_WORKER_BACKEND must be one of model|pattern, got %q", cfg.ResponseWorkerBackend)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return trimSpace(os.Getenv(key))
}

func trimSpace(v string) string {
	for len(v) > 0 && (v[0] == ' ' || v[0] == '\n' || v[0] == '\t' || v[0] == '\r') {
		v = v[1:]
	}
	for len(v) > 0 {
		c := v[len(v)-1]
		if c == ' ' || c == '\n' || c == '\t' || c == '\r' {
			v = v[:len(v)-1]
			continue
		}
		break
	}
	return v
}

// durationFromEnv parses a duration from env. When secondsOnly is true the
// value is interpreted as a count of whole seconds (matching the spec's
// "_S"-suffixed variable names), falling back to time.ParseDuration syntax
// (e.g. "500ms") if the value isn't a plain integer.
func durationFromEnv(key string, fallback time.Duration, secondsOnly bool) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	if secondsOnly {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			return time.Duration(n) * time.Second, nil
		}
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
