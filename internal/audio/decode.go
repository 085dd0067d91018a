package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// MaxVoiceClipSeconds bounds how much of an input clip the emotion voice
// path ever looks at (spec.md §4.2: "Decode the first ≤10 s").
const MaxVoiceClipSeconds = 10

// DecodeMonoPCM16 reads a WAV file and returns up to MaxVoiceClipSeconds of
// audio downmixed (not resampled) to mono float64 samples in [-1, 1] at the
// file's native sample rate, along with that sample rate. Longer clips are truncated, not
// rejected, matching the spec's boundary behavior for over-long clips.
func DecodeMonoPCM16(path string) (samples []float64, sampleRateHz int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open audio clip: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file: %s", path)
	}
	sampleRateHz = int(dec.SampleRate)
	numChannels := int(dec.NumChans)
	if sampleRateHz <= 0 {
		return nil, 0, fmt.Errorf("invalid sample rate in %s", path)
	}

	maxSamples := sampleRateHz * MaxVoiceClipSeconds * numChannels
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: numChannels, SampleRate: sampleRateHz},
		Data:   make([]int, 0, 4096),
	}

	out := make([]float64, 0, maxSamples/max(numChannels, 1))
	chunk := &goaudio.IntBuffer{Format: buf.Format, Data: make([]int, 4096)}
	for len(out) < cap(out) || cap(out) == 0 {
		n, readErr := dec.PCMBuffer(chunk)
		if n == 0 || readErr != nil {
			break
		}
		out = appendMonoFrom(out, chunk.Data[:n], numChannels, maxSamples)
		if len(out)*numChannels >= maxSamples {
			break
		}
	}

	return out, sampleRateHz, nil
}

// appendMonoFrom downmixes interleaved integer PCM samples to mono float64
// in [-1,1], appending at most (maxTotal/numChannels) additional samples.
func appendMonoFrom(out []float64, data []int, numChannels, maxTotal int) []float64 {
	if numChannels <= 0 {
		numChannels = 1
	}
	const fullScale = 32768.0
	for i := 0; i+numChannels <= len(data); i += numChannels {
		if len(out)*numChannels >= maxTotal {
			break
		}
		sum := 0
		for c := 0; c < numChannels; c++ {
			sum += data[i+c]
		}
		avg := float64(sum) / float64(numChannels)
		out = append(out, avg/fullScale)
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
