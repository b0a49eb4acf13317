package profile

import "testing"

func TestNewClampsConfidence(t *testing.T) {
	p := New(nil, 1.7)
	if p.Confidence() != 1 {
		t.Errorf("Confidence = %v, want 1", p.Confidence())
	}

	p = New(nil, -0.3)
	if p.Confidence() != 0 {
		t.Errorf("Confidence = %v, want 0", p.Confidence())
	}
}

func TestDominantFamiliesOrdering(t *testing.T) {
	p := New(map[string]float64{
		"woody":  0.5,
		"fresh":  0.8,
		"citrus": 0.5,
		"floral": 0,
	}, 0.75)

	got := p.DominantFamilies()
	want := []string{"fresh", "citrus", "woody"}
	if len(got) != len(want) {
		t.Fatalf("DominantFamilies = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DominantFamilies[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVectorProjection(t *testing.T) {
	p := New(map[string]float64{"fresh": 0.6, "woody": 0.8}, 1)

	vec := p.Vector([]string{"fresh", "citrus", "woody"})
	if len(vec) != 3 {
		t.Fatalf("len(vec) = %d, want 3", len(vec))
	}
	if vec[0] != 0.6 || vec[1] != 0 || vec[2] != 0.8 {
		t.Errorf("vec = %v, want [0.6 0 0.8]", vec)
	}
}

func TestTopFamilies(t *testing.T) {
	p := New(map[string]float64{"fresh": 0.9, "woody": 0.5, "amber": 0.2}, 1)

	top := p.TopFamilies(2)
	if len(top) != 2 || top[0] != "fresh" || top[1] != "woody" {
		t.Errorf("TopFamilies(2) = %v", top)
	}

	// n larger than available is clamped.
	if got := p.TopFamilies(10); len(got) != 3 {
		t.Errorf("TopFamilies(10) returned %d families", len(got))
	}
}
