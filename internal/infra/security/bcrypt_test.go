package security

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Encode("s3cret")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must differ from the plain password")
	}
	if !hasher.Matches("s3cret", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if hasher.Matches("wrong", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}
