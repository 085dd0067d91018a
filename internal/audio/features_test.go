package audio

import (
	"math"
	"testing"
)

func TestExtractFeaturesEmpty(t *testing.T) {
	f := ExtractFeatures(nil, 16000)
	if f != (Features{}) {
		t.Fatalf("ExtractFeatures(nil) = %+v, want zero value", f)
	}
}

func TestRMSEnergyOfSilence(t *testing.T) {
	samples := make([]float64, 1600)
	f := ExtractFeatures(samples, 16000)
	if f.RMSEnergy != 0 {
		t.Fatalf("RMSEnergy = %v, want 0 for silence", f.RMSEnergy)
	}
}

func TestRMSEnergyOfConstantTone(t *testing.T) {
	samples := make([]float64, 1600)
	for i := range samples {
		samples[i] = 0.5
	}
	f := ExtractFeatures(samples, 16000)
	if math.Abs(f.RMSEnergy-0.5) > 1e-9 {
		t.Fatalf("RMSEnergy = %v, want 0.5", f.RMSEnergy)
	}
	if f.ZeroCrossingRate != 0 {
		t.Fatalf("ZeroCrossingRate = %v, want 0 for a constant positive signal", f.ZeroCrossingRate)
	}
}

func TestZeroCrossingRateAlternating(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1
		} else {
			samples[i] = -1
		}
	}
	f := ExtractFeatures(samples, 16000)
	if f.ZeroCrossingRate < 0.9 {
		t.Fatalf("ZeroCrossingRate = %v, want close to 1.0 for alternating signal", f.ZeroCrossingRate)
	}
}

func TestAutocorrelationPitchDetectsKnownFrequency(t *testing.T) {
	const sampleRate = 16000
	const freq = 100.0 // lag ~160 samples, within [20,200]
	samples := make([]float64, sampleRate/4)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	f := ExtractFeatures(samples, sampleRate)
	if f.PitchHz == 0 {
		t.Fatalf("PitchHz = 0, want a detected pitch near %v Hz", freq)
	}
	if math.Abs(f.PitchHz-freq) > 10 {
		t.Fatalf("PitchHz = %v, want close to %v", f.PitchHz, freq)
	}
}

func TestSpectralCentroidHigherForHigherFrequency(t *testing.T) {
	const sampleRate = 16000
	n := 1024
	low := make([]float64, n)
	high := make([]float64, n)
	for i := 0; i < n; i++ {
		low[i] = math.Sin(2 * math.Pi * 200 * float64(i) / float64(sampleRate))
		high[i] = math.Sin(2 * math.Pi * 2000 * float64(i) / float64(sampleRate))
	}
	fLow := ExtractFeatures(low, sampleRate)
	fHigh := ExtractFeatures(high, sampleRate)
	if fHigh.SpectralCentroidHz <= fLow.SpectralCentroidHz {
		t.Fatalf("SpectralCentroidHz: high-freq tone (%v) should exceed low-freq tone (%v)",
			fHigh.SpectralCentroidHz, fLow.SpectralCentroidHz)
	}
}
