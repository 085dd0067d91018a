// Command ttsworker is the long-lived speech synthesis worker process
// (spec.md §4.4). It reads one wire.TTSRequest per stdin line and writes a
// wire.TTSReply per stdout line, treating synthesis as an external native
// service the way internal/voice/local.go's whisperCPP treats transcription:
// a temp output path is handed to a configured CLI, then read back and
// base64-encoded. Any failure degrades to {audioBase64: null, error: ...} --
// never fatal to the caller (spec.md §4.4).
package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/antoniostano/turncore/internal/wire"
)

// maxSynthesisChars is the spec.md §4.4 clamp on the text handed to the
// native synthesizer: "clamped to 300 characters with ellipsis".
const maxSynthesisChars = 300

// sanitizeSynthesisText escapes embedded quotes and clamps the text to
// maxSynthesisChars with a trailing ellipsis (spec.md §4.4: "Text is
// sanitized (quotes escaped, clamped to 300 characters with ellipsis)"),
// matching original_source/server/python/tts_generator.py's
// `text.replace('"','""').replace("'","''")` + 300-char clamp.
func sanitizeSynthesisText(text string) string {
	escaped := strings.ReplaceAll(text, `"`, `""`)
	escaped = strings.ReplaceAll(escaped, `'`, `''`)
	if len(escaped) > maxSynthesisChars {
		escaped = escaped[:maxSynthesisChars] + "..."
	}
	return escaped
}

const synthesisTimeout = 15 * time.Second

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("ttsworker: ")

	nativeCmd := os.Getenv("TTS_NATIVE_CMD")

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)

	for in.Scan() {
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}
		var req wire.TTSRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("malformed request: %v", err)
			if err := out.Encode(wire.TTSReply{
				Error:     "malformed request: " + err.Error(),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				log.Printf("encode reply: %v", err)
			}
			continue
		}
		if err := out.Encode(synthesize(nativeCmd, req)); err != nil {
			log.Printf("encode reply: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin read error: %v", err)
	}
}

func synthesize(nativeCmd string, req wire.TTSRequest) wire.TTSReply {
	start := time.Now()
	req.Text = sanitizeSynthesisText(req.Text)
	reply := wire.TTSReply{
		Text:      req.Text,
		Language:  req.Language,
		Model:     nativeCmd,
		Timestamp: start.UTC().Format(time.RFC3339),
	}

	if nativeCmd == "" {
		reply.Error = "tts_native_cmd not configured"
		reply.ProcessingTime = time.Since(start).Seconds()
		return reply
	}

	audioBase64, err := invokeNative(nativeCmd, req)
	reply.ProcessingTime = time.Since(start).Seconds()
	if err != nil {
		log.Printf("synthesis failed: %v", err)
		reply.Error = err.Error()
		return reply
	}
	reply.AudioBase64 = &audioBase64
	return reply
}

func invokeNative(nativeCmd string, req wire.TTSRequest) (string, error) {
	tmpDir, err := os.MkdirTemp("", "turncore-tts-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "speech.wav")

	ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, nativeCmd, req.Text, req.Language, outPath)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("native tts timed out after %s", synthesisTimeout)
		}
		return "", fmt.Errorf("native tts failed: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read synthesized audio: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("native tts produced empty audio")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
