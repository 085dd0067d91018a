// Command emotionworker is the long-lived emotion classification worker
// process: it reads one wire.EmotionRequest JSON object per stdin line and
// writes the corresponding reply on stdout, never printing anything else to
// standard output (spec.md §4.1/§4.2).
package main

import (
	"bufio"
	"encoding/json"
	"log"
	"os"

	"github.com/antoniostano/turncore/internal/audio"
	"github.com/antoniostano/turncore/internal/emotion"
	"github.com/antoniostano/turncore/internal/wire"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("emotionworker: ")

	if err := emotion.LoadLexiconOverride(os.Getenv("MODEL_CACHE_DIR")); err != nil {
		log.Printf("lexicon override not loaded: %v", err)
	}

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)

	for in.Scan() {
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}
		var req wire.EmotionRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("malformed request: %v", err)
			_ = out.Encode(wire.NeutralFallback(err))
			continue
		}
		if err := out.Encode(handle(req)); err != nil {
			log.Printf("encode reply: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin read error: %v", err)
	}
}

func handle(req wire.EmotionRequest) any {
	switch req.Mode {
	case wire.ModeText:
		return classifyText(req.Text)
	case wire.ModeVoice:
		return classifyVoice(req.AudioPath)
	case wire.ModeCombined:
		return classifyCombined(req)
	case wire.ModeTextWithContext:
		return classifyTextWithContext(req.Text)
	default:
		return wire.NeutralFallback(errUnknownMode(req.Mode))
	}
}

type errUnknownMode string

func (e errUnknownMode) Error() string { return "unknown mode: " + string(e) }

func classifyText(text string) wire.EmotionTextReply {
	r := emotion.ClassifyText(text)
	return wire.EmotionTextReply{Label: r.Label, Confidence: r.Confidence, AllScores: r.AllScores, RawLabel: r.RawLabel}
}

func classifyVoice(audioPath string) wire.EmotionVoiceReply {
	f := extractAudioFeatures(audioPath)
	r := emotion.ClassifyVoice(f)
	return wire.EmotionVoiceReply{Label: r.Label, Confidence: r.Confidence, Features: r.Features}
}

func classifyCombined(req wire.EmotionRequest) wire.EmotionCombinedReply {
	textResult := emotion.ClassifyText(req.Text)
	f := extractAudioFeatures(req.AudioPath)
	voiceResult := emotion.ClassifyVoice(f)
	fused := emotion.Fuse(textResult, voiceResult)

	return wire.EmotionCombinedReply{
		Combined: wire.CombinedEmotion{
			Label:       fused.Label,
			Confidence:  fused.Confidence,
			WeightText:  fused.WeightText,
			WeightVoice: fused.WeightVoice,
		},
		Text: wire.EmotionTextReply{
			Label: textResult.Label, Confidence: textResult.Confidence,
			AllScores: textResult.AllScores, RawLabel: textResult.RawLabel,
		},
		Voice: wire.EmotionVoiceReply{
			Label: voiceResult.Label, Confidence: voiceResult.Confidence, Features: voiceResult.Features,
		},
	}
}

func classifyTextWithContext(text string) wire.EmotionTextWithContextReply {
	r := emotion.ClassifyText(text)
	context := emotion.SalientTokens([]string{text})
	return wire.EmotionTextWithContextReply{
		Label: r.Label, Confidence: r.Confidence, AllScores: r.AllScores, RawLabel: r.RawLabel,
		Context: context,
	}
}

// extractAudioFeatures decodes a WAV file and extracts spectral features.
// Any decode failure degrades to zero-value Features, which
// emotion.ClassifyVoice already maps to neutral/0.5 (spec.md §4.2: "Missing
// or empty audio -> neutral, 0.5").
func extractAudioFeatures(audioPath string) audio.Features {
	if audioPath == "" {
		return audio.Features{}
	}
	samples, sampleRate, err := audio.DecodeMonoPCM16(audioPath)
	if err != nil {
		log.Printf("decode audio %s: %v", audioPath, err)
		return audio.Features{}
	}
	return audio.ExtractFeatures(samples, sampleRate)
}
