package density

import (
	"math"
	"math/rand"
	"testing"

	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/analysis"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/clinical"
	"github.com/roaringbunnygirl/Breast-Cancer-Analysis/domain/core"
)

func fixtureNo() clinical.Sample {
	return clinical.Sample{Group: clinical.NoRecurrence, Values: []float64{0, 0, 0, 0, 1, 2}}
}

func fixtureYes() clinical.Sample {
	return clinical.Sample{Group: clinical.Recurrence, Values: []float64{2, 3, 4, 5, 6, 8}}
}

func normalSample(t *testing.T, group clinical.GroupLabel, n int, mean float64, seed int64) clinical.Sample {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = mean + r.NormFloat64()
	}
	return clinical.Sample{Group: group, Values: values}
}

func TestEstimate_IntegratesToOne(t *testing.T) {
	est := NewEstimator(256)
	for _, sample := range []clinical.Sample{fixtureNo(), fixtureYes(), normalSample(t, clinical.NoRecurrence, 300, 10, 3)} {
		curve, err := est.Estimate(sample, 1.2)
		if err != nil {
			t.Fatalf("estimate %s: %v", sample.Group, err)
		}
		if got := curve.Integral(); math.Abs(got-1) > 0.02 {
			t.Fatalf("group %s: density integrates to %.4f, want 1 +- 0.02", sample.Group, got)
		}
	}
}

func TestEstimate_NonNegativeAndDeterministic(t *testing.T) {
	est := NewEstimator(256)
	first, err := est.Estimate(fixtureYes(), 1.2)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for i, y := range first.Y {
		if y < 0 {
			t.Fatalf("negative density %.6g at grid point %d", y, i)
		}
	}

	second, err := est.Estimate(fixtureYes(), 1.2)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for i := range first.X {
		if first.X[i] != second.X[i] || first.Y[i] != second.Y[i] {
			t.Fatalf("estimate is not deterministic at grid point %d", i)
		}
	}
}

func TestEstimate_LargerAdjustIsSmoother(t *testing.T) {
	est := NewEstimator(256)
	sample := normalSample(t, clinical.NoRecurrence, 80, 5, 11)

	prev := math.Inf(1)
	for _, adjust := range []float64{0.8, 1.2, 3.0} {
		curve, err := est.Estimate(sample, adjust)
		if err != nil {
			t.Fatalf("estimate adjust=%g: %v", adjust, err)
		}
		r := roughness(curve.Y)
		if r >= prev {
			t.Fatalf("adjust=%g: roughness %.6g did not decrease from %.6g", adjust, r, prev)
		}
		prev = r
	}
}

// roughness is the sum of squared second differences of the Y values
func roughness(y []float64) float64 {
	total := 0.0
	for i := 2; i < len(y); i++ {
		d := y[i] - 2*y[i-1] + y[i-2]
		total += d * d
	}
	return total
}

func TestEstimate_MassShiftsWithTheSample(t *testing.T) {
	est := NewEstimator(256)
	no, err := est.Estimate(fixtureNo(), 1.2)
	if err != nil {
		t.Fatalf("estimate no: %v", err)
	}
	yes, err := est.Estimate(fixtureYes(), 1.2)
	if err != nil {
		t.Fatalf("estimate yes: %v", err)
	}
	if peakX(no) >= peakX(yes) {
		t.Fatalf("expected recurrence density peak right of no-recurrence: no=%.2f yes=%.2f", peakX(no), peakX(yes))
	}
}

func peakX(c analysis.DensityCurve) float64 {
	best := 0
	for i := range c.Y {
		if c.Y[i] > c.Y[best] {
			best = i
		}
	}
	return c.X[best]
}

func TestEstimate_RejectsTinySamples(t *testing.T) {
	est := NewEstimator(256)
	_, err := est.Estimate(clinical.Sample{Group: clinical.NoRecurrence, Values: []float64{3}}, 1.2)
	if !core.IsInsufficientData(err) {
		t.Fatalf("expected insufficient data error, got %v", err)
	}
}

func TestEstimate_RejectsZeroSpread(t *testing.T) {
	est := NewEstimator(256)
	_, err := est.Estimate(clinical.Sample{Group: clinical.NoRecurrence, Values: []float64{2, 2, 2, 2}}, 1.2)
	if err == nil {
		t.Fatal("expected an error for a zero-spread sample")
	}
}

func TestSilvermanBandwidth_ShrinksWithSampleSize(t *testing.T) {
	small := normalSample(t, clinical.NoRecurrence, 20, 0, 5)
	large := normalSample(t, clinical.NoRecurrence, 2000, 0, 5)

	bwSmall, err := SilvermanBandwidth(small.Values)
	if err != nil {
		t.Fatalf("bandwidth small: %v", err)
	}
	bwLarge, err := SilvermanBandwidth(large.Values)
	if err != nil {
		t.Fatalf("bandwidth large: %v", err)
	}
	if bwLarge >= bwSmall {
		t.Fatalf("bandwidth should shrink with n: n=20 gives %.4f, n=2000 gives %.4f", bwSmall, bwLarge)
	}
}
