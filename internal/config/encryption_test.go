// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package config

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestNewCredentialEncryptor(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{
			name:    "valid secret",
			secret:  "my-super-secret-config-key",
			wantErr: nil,
		},
		{
			name:    "empty secret",
			secret:  "",
			wantErr: ErrEmptySecret,
		},
		{
			name:    "short secret",
			secret:  "x",
			wantErr: nil, // HKDF can derive from any length
		},
		{
			name:    "long secret",
			secret:  strings.Repeat("a", 1000),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewCredentialEncryptor(tt.secret)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewCredentialEncryptor() error = %v, wantErr %v", err, tt.wantErr)
				}
				if enc != nil {
					t.Error("NewCredentialEncryptor() returned encryptor on error")
				}
			} else {
				if err != nil {
					t.Errorf("NewCredentialEncryptor() unexpected error = %v", err)
				}
				if enc == nil {
					t.Error("NewCredentialEncryptor() returned nil encryptor")
				}
			}
		})
	}
}

func TestCredentialEncryptor_Decrypt(t *testing.T) {
	enc, err := NewCredentialEncryptor("test-secret")
	if err != nil {
		t.Fatalf("Failed to create encryptor: %v", err)
	}

	// Create a valid ciphertext for testing
	validCiphertext, err := enc.Encrypt("test-api-key")
	if err != nil {
		t.Fatalf("Failed to encrypt test data: %v", err)
	}

	tests := []struct {
		name       string
		ciphertext string
		wantErr    error
	}{
		{
			name:       "valid ciphertext",
			ciphertext: validCiphertext,
			wantErr:    nil,
		},
		{
			name:       "empty ciphertext",
			ciphertext: "",
			wantErr:    ErrEmptyCiphertext,
		},
		{
			name:       "invalid base64",
			ciphertext: "not-valid-base64!!!",
			wantErr:    ErrInvalidCiphertext,
		},
		{
			name:       "too short ciphertext",
			ciphertext: base64.StdEncoding.EncodeToString([]byte("short")),
			wantErr:    ErrCiphertextTooShort,
		},
		{
			name:       "tampered ciphertext",
			ciphertext: base64.StdEncoding.EncodeToString(make([]byte, 50)),
			wantErr:    ErrDecryptionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := enc.Decrypt(tt.ciphertext)

			if tt.wantErr != nil {
				if err == nil {
					t.Errorf("Decrypt() expected error %v, got nil", tt.wantErr)
				} else if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decrypt() error = %v, wantErr %v", err, tt.wantErr)
				}
				if plaintext != "" {
					t.Error("Decrypt() returned plaintext on error")
				}
			} else {
				if err != nil {
					t.Errorf("Decrypt() unexpected error = %v", err)
				}
				if plaintext != "test-api-key" {
					t.Errorf("Decrypt() = %q, want test-api-key", plaintext)
				}
			}
		})
	}
}

func TestCredentialEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewCredentialEncryptor("test-secret-for-roundtrip")
	if err != nil {
		t.Fatalf("Failed to create encryptor: %v", err)
	}

	testCases := []string{
		"simple-key",
		"key with spaces",
		"key!@#$%^&*()",
		strings.Repeat("a", 1000),
		"directory-api-key-XXXX-YYYY-ZZZZ",
	}

	for _, original := range testCases {
		t.Run(original[:min(len(original), 20)], func(t *testing.T) {
			ciphertext, err := enc.Encrypt(original)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			decrypted, err := enc.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if decrypted != original {
				t.Errorf("Round trip failed: got %q, want %q", decrypted, original)
			}
		})
	}
}

func TestCredentialEncryptor_UniqueNonce(t *testing.T) {
	enc, err := NewCredentialEncryptor("test-secret")
	if err != nil {
		t.Fatalf("Failed to create encryptor: %v", err)
	}

	plaintext := "same-api-key"
	ciphertexts := make(map[string]bool)

	// Encrypt the same plaintext multiple times
	for i := 0; i < 100; i++ {
		ciphertext, err := enc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}

		// Each ciphertext should be unique due to random nonce
		if ciphertexts[ciphertext] {
			t.Error("Encrypt() produced duplicate ciphertext")
		}
		ciphertexts[ciphertext] = true
	}
}

func TestCredentialEncryptor_DifferentSecrets(t *testing.T) {
	enc1, err := NewCredentialEncryptor("secret-one")
	if err != nil {
		t.Fatalf("Failed to create encryptor 1: %v", err)
	}

	enc2, err := NewCredentialEncryptor("secret-two")
	if err != nil {
		t.Fatalf("Failed to create encryptor 2: %v", err)
	}

	plaintext := "my-api-key"

	ciphertext, err := enc1.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	// Try to decrypt with encryptor 2 (should fail)
	_, err = enc2.Decrypt(ciphertext)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Decrypt() with wrong secret: expected %v, got %v", ErrDecryptionFailed, err)
	}

	// Decrypt with correct encryptor (should succeed)
	decrypted, err := enc1.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() with correct secret: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Decrypt() returned wrong plaintext: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptValue(t *testing.T) {
	encrypted, err := EncryptValue("test-secret", "real-api-key")
	if err != nil {
		t.Fatalf("EncryptValue() error = %v", err)
	}

	if !strings.HasPrefix(encrypted, EncryptedValuePrefix) {
		t.Errorf("EncryptValue() = %q, want enc: prefix", encrypted)
	}

	enc, err := NewCredentialEncryptor("test-secret")
	if err != nil {
		t.Fatalf("Failed to create encryptor: %v", err)
	}

	plaintext, err := enc.Decrypt(strings.TrimPrefix(encrypted, EncryptedValuePrefix))
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if plaintext != "real-api-key" {
		t.Errorf("Decrypt() = %q, want real-api-key", plaintext)
	}
}

func TestDecryptCredentials(t *testing.T) {
	encrypted, err := EncryptValue("deploy-secret", "the-directory-key")
	if err != nil {
		t.Fatalf("EncryptValue() error = %v", err)
	}

	tests := []struct {
		name    string
		apiKey  string
		secret  string
		want    string
		wantErr bool
	}{
		{
			name:   "plaintext key passes through",
			apiKey: "plain-key",
			secret: "",
			want:   "plain-key",
		},
		{
			name:   "empty key passes through",
			apiKey: "",
			secret: "",
			want:   "",
		},
		{
			name:   "encrypted key with correct secret",
			apiKey: encrypted,
			secret: "deploy-secret",
			want:   "the-directory-key",
		},
		{
			name:    "encrypted key without secret",
			apiKey:  encrypted,
			secret:  "",
			wantErr: true,
		},
		{
			name:    "encrypted key with wrong secret",
			apiKey:  encrypted,
			secret:  "wrong-secret",
			wantErr: true,
		},
		{
			name:    "malformed encrypted value",
			apiKey:  "enc:not-base64!!!",
			secret:  "deploy-secret",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Directory.APIKey = tt.apiKey
			cfg.Security.ConfigSecret = tt.secret

			err := cfg.decryptCredentials()

			if tt.wantErr {
				if err == nil {
					t.Error("decryptCredentials() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("decryptCredentials() unexpected error = %v", err)
			}
			if cfg.Directory.APIKey != tt.want {
				t.Errorf("Directory.APIKey = %q, want %q", cfg.Directory.APIKey, tt.want)
			}
		})
	}
}

func TestCredentialEncryptor_ValidateEncryptionSetup(t *testing.T) {
	enc, err := NewCredentialEncryptor("valid-secret")
	if err != nil {
		t.Fatalf("Failed to create encryptor: %v", err)
	}

	if err := enc.ValidateEncryptionSetup(); err != nil {
		t.Errorf("ValidateEncryptionSetup() error = %v", err)
	}
}

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		want       string
	}{
		{
			name:       "normal credential",
			credential: "directory-key-12345678",
			want:       "****...5678",
		},
		{
			name:       "short credential (4 chars)",
			credential: "1234",
			want:       "****",
		},
		{
			name:       "very short credential",
			credential: "ab",
			want:       "****",
		},
		{
			name:       "empty credential",
			credential: "",
			want:       "",
		},
		{
			name:       "exactly 5 chars",
			credential: "12345",
			want:       "****...2345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskCredential(tt.credential)
			if got != tt.want {
				t.Errorf("MaskCredential() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveKey(t *testing.T) {
	// Test that the same secret always produces the same key (deterministic)
	key1, err := deriveKey("test-secret")
	if err != nil {
		t.Fatalf("deriveKey() error = %v", err)
	}

	key2, err := deriveKey("test-secret")
	if err != nil {
		t.Fatalf("deriveKey() error = %v", err)
	}

	if string(key1) != string(key2) {
		t.Error("deriveKey() is not deterministic")
	}

	// Test that different secrets produce different keys
	key3, err := deriveKey("different-secret")
	if err != nil {
		t.Fatalf("deriveKey() error = %v", err)
	}

	if string(key1) == string(key3) {
		t.Error("deriveKey() produced same key for different secrets")
	}

	// Verify key length
	if len(key1) != aesKeySize {
		t.Errorf("deriveKey() key length = %d, want %d", len(key1), aesKeySize)
	}
}
