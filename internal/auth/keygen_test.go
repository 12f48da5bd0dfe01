package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateAPIKey_Live(t *testing.T) {
	t.Parallel()

	key, err := GenerateAPIKey(EnvLive)
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}

	if !strings.HasPrefix(key.Plaintext, "sl_live_") {
		t.Errorf("Key should start with sl_live_, got: %s", key.Plaintext)
	}

	if len(key.Prefix) != KeyPrefixLen {
		t.Errorf("Prefix should be %d chars, got: %d", KeyPrefixLen, len(key.Prefix))
	}

	if key.Hash == "" {
		t.Error("Hash should not be empty")
	}
	if !strings.HasPrefix(key.Hash, "$argon2id$v=") {
		t.Errorf("Hash should be in PHC format, got: %s", key.Hash)
	}

	if !strings.Contains(key.Plaintext, key.Prefix) {
		t.Error("Plaintext should contain prefix")
	}
}

func TestGenerateAPIKey_Test(t *testing.T) {
	t.Parallel()

	key, err := GenerateAPIKey(EnvTest)
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}

	if !strings.HasPrefix(key.Plaintext, "sl_test_") {
		t.Errorf("Key should start with sl_test_, got: %s", key.Plaintext)
	}
}

func TestGenerateAPIKey_DefaultsToLive(t *testing.T) {
	t.Parallel()

	key, err := GenerateAPIKey("invalid")
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}

	if !strings.HasPrefix(key.Plaintext, "sl_live_") {
		t.Errorf("Invalid env should default to live, got: %s", key.Plaintext)
	}
}

func TestParseAPIKey_RoundTrip(t *testing.T) {
	t.Parallel()

	key, err := GenerateAPIKey(EnvLive)
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}

	parsed, err := ParseAPIKey(key.Plaintext)
	if err != nil {
		t.Fatalf("ParseAPIKey failed: %v", err)
	}

	if parsed.Env != EnvLive {
		t.Errorf("Env = %q, want live", parsed.Env)
	}
	if parsed.Prefix != key.Prefix {
		t.Errorf("Prefix = %q, want %q", parsed.Prefix, key.Prefix)
	}
	if len(parsed.Secret) != KeySecretLen {
		t.Errorf("Secret length = %d, want %d", len(parsed.Secret), KeySecretLen)
	}
}

func TestParseAPIKey_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"wrong prefix", "pk_live_abc123_0123456789abcdef0123456789abcdef"},
		{"bad env", "sl_prod_abc123_0123456789abcdef0123456789abcdef"},
		{"short prefix", "sl_live_ab_0123456789abcdef0123456789abcdef"},
		{"short secret", "sl_live_abc123_0123456789abcdef"},
		{"uppercase hex", "sl_live_ABC123_0123456789ABCDEF0123456789ABCDEF"},
		{"trailing garbage", "sl_live_abc123_0123456789abcdef0123456789abcdefX"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseAPIKey(tt.key); !errors.Is(err, ErrInvalidKeyFormat) {
				t.Errorf("ParseAPIKey(%q) = %v, want ErrInvalidKeyFormat", tt.key, err)
			}
			if ValidateKeyFormat(tt.key) {
				t.Errorf("ValidateKeyFormat(%q) = true, want false", tt.key)
			}
		})
	}
}
