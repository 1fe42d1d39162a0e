package detection

import (
	"image"
	"math"
	"testing"

	"github.com/demark-tools/demark/internal/mask"
)

// flatImage creates a uniform gray test image.
func flatImage(width, height int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

// noiseImage creates a deterministic mid-gray noise image (LCG seeded).
func noiseImage(width, height int, seed uint32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	s := seed
	for i := 0; i < len(img.Pix); i += 4 {
		s = s*1664525 + 1013904223
		v := uint8(96 + (s>>24)%64)
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

// applyOverlay composites the template onto img at rect with the forward
// blend, scaled by strength in [0, 1].
func applyOverlay(img *image.NRGBA, m *mask.Mask, rect image.Rectangle, strength float64) {
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			a := strength * m.Alpha[row*m.Size+col]
			if a == 0 {
				continue
			}
			off := img.PixOffset(rect.Min.X+col, rect.Min.Y+row)
			for c := 0; c < 3; c++ {
				v := float64(img.Pix[off+c])
				img.Pix[off+c] = uint8(math.Round(a*255 + (1-a)*v))
			}
		}
	}
}

func TestNCC(t *testing.T) {
	a := []float64{1, 5, 3, 8, 2, 9, 4, 7}
	if got := NCC(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("self correlation: got %g, want 1", got)
	}

	inverted := make([]float64, len(a))
	for i, v := range a {
		inverted[i] = -v
	}
	if got := NCC(a, inverted); math.Abs(got+1) > 1e-9 {
		t.Errorf("inverted correlation: got %g, want -1", got)
	}

	// Invariant to linear scaling.
	scaled := make([]float64, len(a))
	for i, v := range a {
		scaled[i] = 40*v + 7
	}
	if got := NCC(a, scaled); math.Abs(got-1) > 1e-9 {
		t.Errorf("scaled correlation: got %g, want 1", got)
	}

	constant := []float64{3, 3, 3, 3, 3, 3, 3, 3}
	if got := NCC(a, constant); got != 0 {
		t.Errorf("constant plane: got %g, want 0", got)
	}
	if got := NCC(a, a[:4]); got != 0 {
		t.Errorf("mismatched lengths: got %g, want 0", got)
	}
}

func TestEvaluateWatermarked(t *testing.T) {
	m := mask.Small()
	img := flatImage(500, 500, 100)
	rect, err := m.Rect(img.Bounds())
	if err != nil {
		t.Fatalf("Rect failed: %v", err)
	}
	applyOverlay(img, m, rect, 1)

	score := Evaluate(img, m, rect, Config{})

	if score.Spatial < 0.9 {
		t.Errorf("spatial: got %.3f, want >= 0.9 for an exact overlay", score.Spatial)
	}
	if score.Gradient < 0.3 {
		t.Errorf("gradient: got %.3f, want >= 0.3", score.Gradient)
	}
	if !score.Present(DefaultThreshold) {
		t.Errorf("overall %.3f below default threshold", score.Overall)
	}
}

func TestEvaluatePlain(t *testing.T) {
	m := mask.Small()
	img := flatImage(500, 500, 100)
	rect, _ := m.Rect(img.Bounds())

	score := Evaluate(img, m, rect, Config{})
	if score.Overall > 0.05 {
		t.Errorf("plain image scored %.3f, want near zero", score.Overall)
	}
	if score.Present(DefaultThreshold) {
		t.Error("plain image classified as watermarked")
	}
}

func TestEvaluateNoisyDiscrimination(t *testing.T) {
	m := mask.Small()

	plain := noiseImage(500, 500, 42)
	rect, _ := m.Rect(plain.Bounds())
	plainScore := Evaluate(plain, m, rect, Config{})

	marked := noiseImage(500, 500, 42)
	applyOverlay(marked, m, rect, 1)
	markedScore := Evaluate(marked, m, rect, Config{})

	if markedScore.Overall < plainScore.Overall+0.2 {
		t.Errorf("weak separation: watermarked %.3f vs plain %.3f",
			markedScore.Overall, plainScore.Overall)
	}
	if !markedScore.Present(DefaultThreshold) {
		t.Errorf("watermarked noisy image scored %.3f, below threshold", markedScore.Overall)
	}
}

func TestEvaluateMonotonicInStrength(t *testing.T) {
	m := mask.Small()
	strengths := []float64{0, 0.25, 0.5, 0.75, 1}

	var prev float64 = -1
	for _, s := range strengths {
		img := flatImage(500, 500, 100)
		rect, _ := m.Rect(img.Bounds())
		applyOverlay(img, m, rect, s)

		score := Evaluate(img, m, rect, Config{})
		if score.Overall < prev-0.005 {
			t.Fatalf("score decreased at strength %.2f: %.4f after %.4f", s, score.Overall, prev)
		}
		prev = score.Overall
	}
}

func TestVarianceDampening(t *testing.T) {
	m := mask.Small()

	// Texture everywhere except the watermark region, which an opaque-ish
	// overlay would have flattened.
	img := noiseImage(300, 300, 7)
	rect, _ := m.Rect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off] = 128
			img.Pix[off+1] = 128
			img.Pix[off+2] = 128
		}
	}

	score := Evaluate(img, m, rect, Config{})
	if score.Variance < 0.9 {
		t.Errorf("variance dampening: got %.3f, want >= 0.9 for a flattened region", score.Variance)
	}
}

func TestVarianceAbstainsWithoutBaseline(t *testing.T) {
	m := mask.Small()
	img := flatImage(300, 300, 50)
	rect, _ := m.Rect(img.Bounds())

	score := Evaluate(img, m, rect, Config{})
	if score.Variance != 0 {
		t.Errorf("flat baseline: got %.3f, want 0", score.Variance)
	}
}

func TestCornerRect(t *testing.T) {
	m := mask.Small()
	bounds := image.Rect(0, 0, 500, 400)

	tests := []struct {
		corner Corner
		want   image.Rectangle
	}{
		{TopLeft, image.Rect(32, 32, 80, 80)},
		{TopRight, image.Rect(420, 32, 468, 80)},
		{BottomLeft, image.Rect(32, 320, 80, 368)},
	}
	for _, tt := range tests {
		got, ok := cornerRect(bounds, m, tt.corner)
		if !ok {
			t.Fatalf("corner %d did not fit", tt.corner)
		}
		if got != tt.want {
			t.Errorf("corner %d: got %v, want %v", tt.corner, got, tt.want)
		}
	}

	if _, ok := cornerRect(image.Rect(0, 0, 80, 80), mask.Large(), TopLeft); ok {
		t.Error("oversized corner rect reported as fitting")
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []float64{0, 0.25, 1} {
		if err := ValidateThreshold(v); err != nil {
			t.Errorf("threshold %g rejected: %v", v, err)
		}
	}
	for _, v := range []float64{-0.01, 1.01, 2} {
		if err := ValidateThreshold(v); err == nil {
			t.Errorf("threshold %g accepted", v)
		}
	}
}
