package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("")

	first := gen.Next()
	second := gen.Next()

	if first != "run-0001" || second != "run-0002" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
	if gen.Issued() != 2 {
		t.Fatalf("expected 2 issued, got %d", gen.Issued())
	}
}

func TestIDGeneratorNilFunc(t *testing.T) {
	var gen *IDGenerator
	if id := gen.NextFunc()(); id != "" {
		t.Fatalf("expected empty id from nil generator, got %q", id)
	}
}
