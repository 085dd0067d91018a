package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Features are the four scalars the emotion worker's voice path computes
// per spec.md §4.2: energy (RMS), zero-crossing rate, a coarse pitch
// estimate via autocorrelation, and spectral centroid via a single FFT.
type Features struct {
	RMSEnergy          float64
	ZeroCrossingRate   float64
	PitchHz            float64
	SpectralCentroidHz float64
	DurationSeconds    float64
}

// ExtractFeatures computes Features over a window of mono samples at
// sampleRateHz. Samples are expected already truncated to the spec's
// ≤10s bound (see DecodeMonoPCM16).
func ExtractFeatures(samples []float64, sampleRateHz int) Features {
	if len(samples) == 0 || sampleRateHz <= 0 {
		return Features{}
	}

	return Features{
		RMSEnergy:          rms(samples),
		ZeroCrossingRate:   zeroCrossingRate(samples),
		PitchHz:            autocorrelationPitch(samples, sampleRateHz),
		SpectralCentroidHz: spectralCentroid(samples, sampleRateHz),
		DurationSeconds:    float64(len(samples)) / float64(sampleRateHz),
	}
}

func rms(samples []float64) float64 {
	var sumSq float64
	for _, s := range samples {
		sumSq += s * s
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}

func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

// autocorrelationPitch estimates a coarse pitch by finding the lag in
// [minLag, maxLag] samples that maximizes normalized autocorrelation,
// per spec.md §4.2: "lag 20-200 samples".
func autocorrelationPitch(samples []float64, sampleRateHz int) float64 {
	const minLag = 20
	const maxLag = 200
	if len(samples) <= maxLag {
		return 0
	}

	var energy0 float64
	for _, s := range samples {
		energy0 += s * s
	}
	if energy0 == 0 {
		return 0
	}

	bestLag := -1
	bestScore := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		n := len(samples) - lag
		for i := 0; i < n; i++ {
			corr += samples[i] * samples[i+lag]
		}
		score := corr / energy0
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}

	if bestLag <= 0 || bestScore <= 0 {
		return 0
	}
	return float64(sampleRateHz) / float64(bestLag)
}

// spectralCentroid computes the amplitude-weighted mean frequency of a
// single Hann-windowed FFT frame, via gonum's real-input FFT.
func spectralCentroid(samples []float64, sampleRateHz int) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	windowed := make([]float64, n)
	for i, s := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = s * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	var weightedSum, magSum float64
	for k, c := range coeffs {
		mag := math.Hypot(real(c), imag(c))
		freq := fft.Freq(k) * float64(sampleRateHz)
		weightedSum += freq * mag
		magSum += mag
	}
	if magSum == 0 {
		return 0
	}
	return weightedSum / magSum
}
