package utils

import "testing"

func TestGenerateSecureToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSecureToken(16)
		if err != nil {
			t.Fatalf("GenerateSecureToken(16) error: %v", err)
		}
		if token == "" {
			t.Fatal("GenerateSecureToken(16) returned an empty token")
		}
		if seen[token] {
			t.Fatalf("GenerateSecureToken(16) repeated token %q", token)
		}
		seen[token] = true
	}
}
