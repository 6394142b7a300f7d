package determinism

import "testing"

func TestHashJSONStable(t *testing.T) {
	type input struct {
		Rate  float64          `json:"rate"`
		Tiers map[string]int64 `json:"tiers"`
	}
	a := input{Rate: 0.07, Tiers: map[string]int64{"F70": 70000, "F170": 170000, "F350": 350000}}
	b := input{Rate: 0.07, Tiers: map[string]int64{"F350": 350000, "F170": 170000, "F70": 70000}}

	ha, err := HashJSON(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hb, err := HashJSON(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ha != hb {
		t.Errorf("expected equal hashes, got %s and %s", ha.Hex(), hb.Hex())
	}

	b.Rate = 0.08
	hc, _ := HashJSON(b)
	if ha == hc {
		t.Error("expected different hashes for different input")
	}
}

func TestContentHashFormatting(t *testing.T) {
	h := ComputeHash([]byte("foody7"))
	if len(h.Hex()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h.Hex()))
	}
	if h.Short() != h.Hex()[:16] {
		t.Errorf("short hash mismatch: %s", h.Short())
	}
	if h.String() != h.Short()+"..." {
		t.Errorf("unexpected String(): %s", h.String())
	}
}

func TestHashJSONRejectsUnsupported(t *testing.T) {
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
