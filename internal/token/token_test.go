package token

import (
	"strings"
	"testing"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestIssueProducesURLSafeTokens(t *testing.T) {
	tok, err := Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(tok) != 43 {
		t.Fatalf("expected 43 chars for 32 bytes of entropy, got %d", len(tok))
	}
	for _, r := range tok {
		if !strings.ContainsRune(urlSafeAlphabet, r) {
			t.Fatalf("token contains non URL-safe rune %q", r)
		}
	}
}

func TestIssueDoesNotCollide(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		tok, err := Issue()
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("token collision after %d issues", i)
		}
		seen[tok] = struct{}{}
	}
}
