package residual

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/cwbudde/algo-anc/internal/testutil"
)

func TestPercentErrorSelf(t *testing.T) {
	inputs := [][]float64{
		{1},
		{100, -200, 300},
		{0, 5, 0, -5},
		testutil.DeterministicSine(100, 8000, 12000, 512),
	}
	for i, x := range inputs {
		got, err := PercentError(x, x)
		if err != nil {
			t.Fatalf("input %d: PercentError() error = %v", i, err)
		}
		if got != 0 {
			t.Fatalf("input %d: PercentError(x, x) = %v, want 0", i, got)
		}
	}
}

func TestPercentError(t *testing.T) {
	tests := []struct {
		name         string
		accepted     []float64
		experimental []float64
		want         float64
	}{
		{name: "half", accepted: []float64{100}, experimental: []float64{50}, want: 50},
		{name: "double", accepted: []float64{50}, experimental: []float64{100}, want: 100},
		{name: "negative", accepted: []float64{-200}, experimental: []float64{-150}, want: 25},
		{name: "zero guard", accepted: []float64{0, 100}, experimental: []float64{50, 110}, want: 5},
		{name: "rounds down", accepted: []float64{100, 100, 100}, experimental: []float64{101, 100, 100}, want: 0},
		{name: "rounds half up", accepted: []float64{100, 100}, experimental: []float64{103, 100}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentError(tt.accepted, tt.experimental)
			if err != nil {
				t.Fatalf("PercentError() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("PercentError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZeroGuardAllZero(t *testing.T) {
	r, err := Analyze([]float64{0, 0, 0}, []float64{1, -1, 1000})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Percent != 0 || r.Mean != 0 {
		t.Fatalf("Analyze() = %+v, want zero error for all-zero accepted", r)
	}
	if math.IsNaN(r.Mean) || math.IsInf(r.Mean, 0) {
		t.Fatalf("Analyze() mean = %v, want finite", r.Mean)
	}
}

func TestNaNCoercion(t *testing.T) {
	r, err := Analyze([]float64{math.NaN(), 100}, []float64{5, 100})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.CoercedNaN != 1 || r.Percent != 0 {
		t.Fatalf("Analyze() = %+v, want 1 coerced and 0%%", r)
	}

	r, err = Analyze([]float64{100, 100}, []float64{math.NaN(), 100})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.CoercedNaN != 1 || r.Percent != 50 {
		t.Fatalf("Analyze() = %+v, want 1 coerced and 50%%", r)
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := PercentError([]float64{1, 2}, []float64{1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("mismatch: error = %v, want ErrInvalidInput", err)
	}
	if _, err := PercentError(nil, nil); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("empty: error = %v, want ErrInvalidInput", err)
	}
	if _, err := MSE([]float64{1}, nil); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("MSE mismatch: error = %v, want ErrInvalidInput", err)
	}
	if _, err := SNR(nil, nil); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("SNR empty: error = %v, want ErrInvalidInput", err)
	}
}

func TestMSEAndMeanAbsError(t *testing.T) {
	ref := []float64{1, 2, 3, 4}
	proc := []float64{1, 0, 3, 5}

	mse, err := MSE(ref, proc)
	if err != nil {
		t.Fatalf("MSE() error = %v", err)
	}
	if mse != 1.25 {
		t.Fatalf("MSE() = %v, want 1.25", mse)
	}

	mae, err := MeanAbsError(ref, proc)
	if err != nil {
		t.Fatalf("MeanAbsError() error = %v", err)
	}
	if mae != 0.75 {
		t.Fatalf("MeanAbsError() = %v, want 0.75", mae)
	}
}

func TestSNR(t *testing.T) {
	ref := []float64{1, -1, 1, -1}

	snr, err := SNR(ref, ref)
	if err != nil {
		t.Fatalf("SNR() error = %v", err)
	}
	if !math.IsInf(snr, 1) {
		t.Fatalf("SNR(x, x) = %v, want +Inf", snr)
	}

	snr, err = SNR(ref, []float64{1.1, -0.9, 1.1, -0.9})
	if err != nil {
		t.Fatalf("SNR() error = %v", err)
	}
	if !core.NearlyEqual(snr, 20, 1e-9) {
		t.Fatalf("SNR() = %v, want 20 dB", snr)
	}
}
