package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEncoder_FreshSaltPerCall(t *testing.T) {
	enc := NewEncoder(bcrypt.MinCost)

	first, err := enc.Encode("s3cret")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := enc.Encode("s3cret")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same plaintext")
	}
}

func TestEncoder_VerifyRoundTrip(t *testing.T) {
	enc := NewEncoder(bcrypt.MinCost)

	hash, err := enc.Encode("correct horse")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !enc.Verify("correct horse", hash) {
		t.Fatalf("expected verify to succeed for matching plaintext")
	}
	if enc.Verify("battery staple", hash) {
		t.Fatalf("expected verify to fail for wrong plaintext")
	}
}

func TestEncoder_EmptyPlaintext(t *testing.T) {
	enc := NewEncoder(bcrypt.MinCost)
	if _, err := enc.Encode(""); err == nil {
		t.Fatalf("expected error for empty plaintext")
	}
}

func TestNewEncoder_CostOutOfRange(t *testing.T) {
	enc := NewEncoder(99)
	hash, err := enc.Encode("pw")
	if err != nil {
		t.Fatalf("encode with fallback cost: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", cost)
	}
}
