package testkit

import "testing"

func TestProcessGenerator_Basic(t *testing.T) {
	config := ProcessConfig{Heats: 25, Seed: 42, NoiseSigma: 2}
	df, err := NewProcessGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if df.Rows() != 25 {
		t.Fatalf("rows: got %d, want 25", df.Rows())
	}
	for _, col := range append(Features(), Target(), "heat_id", "shift", "sample_size") {
		if !df.Has(col) {
			t.Errorf("missing column %q", col)
		}
	}
	sizes, err := df.Numeric("sample_size")
	if err != nil {
		t.Fatalf("sample_size: %v", err)
	}
	for i, s := range sizes {
		if s < 5 || s > 12 {
			t.Errorf("sample_size[%d] out of range: %v", i, s)
		}
	}
}

func TestProcessGenerator_DeterministicPerSeed(t *testing.T) {
	config := ProcessConfig{Heats: 10, Seed: 7, NoiseSigma: 2}
	first, err := NewProcessGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := NewProcessGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	a, _ := first.Numeric("yield_strength")
	b, _ := second.Numeric("yield_strength")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs across identical seeds", i)
		}
	}
}
