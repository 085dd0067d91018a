// Command turncore is the inference-serving core's main process: it spawns
// the three worker supervisors, wires the Turn Orchestrator, and serves the
// Admin Surface. Exit codes (spec.md §6): 0 normal, 1 configuration error,
// 2 all workers unavailable at startup.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/antoniostano/turncore/internal/adminapi"
	"github.com/antoniostano/turncore/internal/audit"
	"github.com/antoniostano/turncore/internal/config"
	"github.com/antoniostano/turncore/internal/observability"
	"github.com/antoniostano/turncore/internal/orchestrator"
	"github.com/antoniostano/turncore/internal/wire"
	"github.com/antoniostano/turncore/internal/workerchan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	auditStore, err := audit.NewStore(ctx, cfg.AuditDatabaseURL)
	if err != nil {
		log.Fatalf("audit store init failed: %v", err)
	}
	defer auditStore.Close()

	emotionSup := workerchan.New(workerchan.Options{
		ID:                  "emotion",
		Kind:                "emotion",
		Command:             cfg.EmotionWorkerCmd,
		ReadyTimeout:        cfg.WorkerReadyTimeout,
		RestartWindow:       cfg.WorkerRestartWindow,
		MaxRestartsInWindow: cfg.WorkerRestartMaxInWin,
		QueueDepth:          cfg.WorkerQueueDepth,
		Metrics:             metrics,
		Warmup:              warmupEmotion,
	})
	responseSup := workerchan.New(workerchan.Options{
		ID:                  "response",
		Kind:                "response",
		Command:             cfg.ResponseWorkerCmd,
		Env:                 responseWorkerEnv(cfg),
		ReadyTimeout:        cfg.WorkerReadyTimeout,
		RestartWindow:       cfg.WorkerRestartWindow,
		MaxRestartsInWindow: cfg.WorkerRestartMaxInWin,
		QueueDepth:          cfg.WorkerQueueDepth,
		Metrics:             metrics,
		Warmup:              warmupResponse,
	})
	ttsSup := workerchan.New(workerchan.Options{
		ID:                  "tts",
		Kind:                "tts",
		Command:             cfg.TTSWorkerCmd,
		Env:                 ttsWorkerEnv(cfg),
		ReadyTimeout:        cfg.WorkerReadyTimeout,
		RestartWindow:       cfg.WorkerRestartWindow,
		MaxRestartsInWindow: cfg.WorkerRestartMaxInWin,
		QueueDepth:          cfg.WorkerQueueDepth,
		Metrics:             metrics,
		Warmup:              warmupTTS,
	})

	startedCount := 0
	if cfg.WorkerEagerStart {
		for name, sup := range map[string]*workerchan.Supervisor{"emotion": emotionSup, "response": responseSup, "tts": ttsSup} {
			startCtx, cancel := context.WithTimeout(ctx, cfg.WorkerReadyTimeout)
			err := sup.Start(startCtx)
			cancel()
			if err != nil {
				log.Printf("worker %s failed initial start: %v", name, err)
				continue
			}
			startedCount++
		}
		if startedCount == 0 {
			log.Printf("all workers unavailable at startup")
			os.Exit(2)
		}
	}

	orch := orchestrator.New(
		orchestrator.Config{
			TurnDeadline:          cfg.TurnDeadline,
			EmotionStageDeadline:  cfg.EmotionStageDeadline,
			ResponseStageDeadline: cfg.ResponseStageDeadline,
			TTSStageDeadline:      cfg.TTSStageDeadline,
			HistoryMaxPairs:       cfg.HistoryMaxPairs,
			HistoryMaxChars:       cfg.HistoryMaxChars,
			ResponseModelID:       responseModelID(cfg),
		},
		orchestrator.NewEmotionClient(emotionSup, cfg.EmotionStageDeadline),
		orchestrator.NewResponseClient(responseSup, cfg.ResponseStageDeadline, responseModelID(cfg)),
		orchestrator.NewTTSClient(ttsSup, cfg.TTSStageDeadline),
		&auditAdapter{store: auditStore},
		metrics,
	)
	// The HTTP/WebSocket front-end that calls orch.RunTurn per user turn is
	// out of scope here (spec.md §1); this process owns only the workers,
	// the orchestrator, and the admin surface.
	_ = orch

	admin := adminapi.New(map[string]adminapi.WorkerSupervisor{
		"emotion":  emotionSup,
		"response": responseSup,
		"tts":      ttsSup,
	}, metrics, cfg.ShutdownTimeout, false)

	server := &http.Server{
		Addr:    cfg.AdminBindAddr,
		Handler: admin.Router(),
	}

	go func() {
		log.Printf("admin surface listening on %s", cfg.AdminBindAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("admin server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	emotionSup.Drain(cfg.ShutdownTimeout)
	responseSup.Drain(cfg.ShutdownTimeout)
	ttsSup.Drain(cfg.ShutdownTimeout)
}

func responseModelID(cfg config.Config) string {
	if cfg.ResponseWorkerBackend == "model" && cfg.ResponseModelCLI != "" {
		return cfg.ResponseModelCLI
	}
	return "pattern"
}

func responseWorkerEnv(cfg config.Config) []string {
	env := os.Environ()
	env = append(env, "RESPONSE_WORKER_BACKEND="+cfg.ResponseWorkerBackend)
	if cfg.ResponseModelCLI != "" {
		env = append(env, "RESPONSE_MODEL_CLI="+cfg.ResponseModelCLI)
	}
	return env
}

func ttsWorkerEnv(cfg config.Config) []string {
	env := os.Environ()
	if cfg.TTSNativeCmd != "" {
		env = append(env, "TTS_NATIVE_CMD="+cfg.TTSNativeCmd)
	}
	return env
}

// warmupEmotion/warmupResponse/warmupTTS perform a cheap request/reply round
// trip to confirm each worker is actually serving before it's marked Ready,
// the way startKokoroWorker's warmup request does.
func warmupEmotion(ctx context.Context, ch *workerchan.Channel) error {
	var reply wire.EmotionTextReply
	return ch.Call(ctx, wire.EmotionRequest{Mode: wire.ModeText, Text: "hello"}, &reply)
}

func warmupResponse(ctx context.Context, ch *workerchan.Channel) error {
	var reply wire.ResponseReply
	return ch.Call(ctx, wire.ResponseRequest{UserInput: "hello", Emotion: "neutral"}, &reply)
}

func warmupTTS(ctx context.Context, ch *workerchan.Channel) error {
	var reply wire.TTSReply
	return ch.Call(ctx, wire.TTSRequest{Text: "hello", Language: "en"}, &reply)
}

// auditAdapter bridges orchestrator.AuditSink to audit.Store, stamping the
// record identity fields the Orchestrator itself has no business assigning.
type auditAdapter struct {
	store audit.Store
}

func (a *auditAdapter) SaveTurn(ctx context.Context, rec orchestrator.AuditRecord) error {
	return a.store.SaveTurn(ctx, audit.Record{
		ID:                uuid.NewString(),
		SessionID:         rec.SessionID,
		CreatedAt:         time.Now().UTC(),
		EmotionLabel:      rec.EmotionLabel,
		EmotionConfidence: rec.EmotionConfidence,
		ResponseSource:    rec.ResponseSource,
		AudioPresent:      rec.AudioPresent,
		Warnings:          rec.Warnings,
		TotalMS:           rec.TotalMS,
	})
}
