package dynamo

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLerpClamps(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 0.8, 0.4, 0, 0.8},
		{"end", 0.8, 0.4, 1, 0.4},
		{"middle", 0, 10, 0.5, 5},
		{"below", 0, 10, -3, 0},
		{"above", 0, 10, 7, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Lerp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInverseLerpDegenerate(t *testing.T) {
	if got := InverseLerp(2, 2, 5); got != 0 {
		t.Errorf("InverseLerp on empty range = %v, want 0", got)
	}
	if got := InverseLerp(10, 60, 35); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("InverseLerp(10, 60, 35) = %v, want 0.5", got)
	}
}

func TestSafeNormalize(t *testing.T) {
	if _, ok := SafeNormalize(mgl64.Vec3{}); ok {
		t.Error("zero vector should not normalize")
	}

	v, ok := SafeNormalize(mgl64.Vec3{3, 0, 4})
	if !ok {
		t.Fatal("expected non-zero vector to normalize")
	}
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", v.Len())
	}
}

func TestIsFiniteVec(t *testing.T) {
	if !IsFiniteVec(mgl64.Vec3{1, 2, 3}) {
		t.Error("finite vector reported as non-finite")
	}
	if IsFiniteVec(mgl64.Vec3{1, math.NaN(), 3}) {
		t.Error("NaN vector reported as finite")
	}
	if IsFiniteVec(mgl64.Vec3{math.Inf(-1), 0, 0}) {
		t.Error("Inf vector reported as finite")
	}
}

func TestDivElemSkipsNonPositive(t *testing.T) {
	got := DivElem(mgl64.Vec3{2, 4, 6}, mgl64.Vec3{2, 0, -1})
	want := mgl64.Vec3{1, 0, 0}
	if got != want {
		t.Errorf("DivElem() = %v, want %v", got, want)
	}
}

func TestParallelForCoversRange(t *testing.T) {
	const n = 257
	var hits [n]int32
	var calls int32

	ParallelFor(n, 16, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
	if calls == 0 {
		t.Error("fn never called")
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
