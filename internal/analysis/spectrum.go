package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// MinSpectrumSamples is the shortest series DominantFrequency accepts.
const MinSpectrumSamples = 4

// PowerSpectrum returns |X_k| for the first half of the DFT of the
// mean-removed, Hann-windowed series.
func PowerSpectrum(data []float64) []float64 {
	spectrum, _ := windowedSpectrum(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

func windowedSpectrum(data []float64) ([]complex128, float64) {
	n := len(data)
	if n < 2 {
		return nil, 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	w := window.Hann(n)
	x := make([]float64, n)
	gain := 0.0
	for i, v := range data {
		x[i] = (v - mean) * w[i]
		gain += w[i]
	}
	return fft.FFTReal(x), gain
}

// DominantFrequency finds the strongest non-DC component of a series sampled
// every dt seconds. It returns the frequency in Hz and the estimated
// amplitude of the oscillation.
func DominantFrequency(data []float64, dt float64) (float64, float64, error) {
	if len(data) < MinSpectrumSamples || !(dt > 0) {
		return 0, 0, fmt.Errorf("%d samples at dt %v: %w", len(data), dt, dynamo.ErrParameterBounds)
	}

	spectrum, gain := windowedSpectrum(data)
	n := len(spectrum)

	best, peak := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > peak {
			best, peak = k, mag
		}
	}
	if best == 0 || gain == 0 {
		return 0, 0, nil
	}

	return float64(best) / (float64(n) * dt), 2 * peak / gain, nil
}
