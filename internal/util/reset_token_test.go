package util

import "testing"

func TestGenerateResetToken(t *testing.T) {
	plaintext, digest, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}
	if len(plaintext) != resetTokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", resetTokenBytes*2, len(plaintext))
	}
	if digest == plaintext {
		t.Fatalf("expected stored digest to differ from plaintext")
	}
	if HashResetToken(plaintext) != digest {
		t.Fatalf("expected digest to be reproducible from plaintext")
	}

	other, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}
	if other == plaintext {
		t.Fatalf("expected distinct tokens per call")
	}
}
