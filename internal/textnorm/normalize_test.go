package textnorm

import "testing"

func TestNormStripsBidiMarksAndSpaces(t *testing.T) {
	in := "‎  Guard Captain‏  "
	got := Norm(in)
	want := "Guard Captain"
	if got != want {
		t.Fatalf("Norm(%q) = %q, want %q", in, got, want)
	}
}

func TestNormUnifiesQuotes(t *testing.T) {
	got := Norm(`Site "A" Guard`)
	want := "Site 'A' Guard"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormIsIdempotent(t *testing.T) {
	in := "‏ Supervisor  "
	once := Norm(in)
	twice := Norm(once)
	if once != twice {
		t.Fatalf("Norm not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestEqualAcrossVariants(t *testing.T) {
	if !Equal("Guard", "‎Guard ") {
		t.Fatalf("expected normalized equality")
	}
	if Equal("Guard", "Supervisor") {
		t.Fatalf("expected inequality")
	}
}
