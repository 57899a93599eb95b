// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// This file implements credential encryption for secure storage of the
// directory API key in config files.
//
// Encryption Algorithm:
//   - AES-256-GCM (authenticated encryption)
//   - 12-byte random nonce per encryption
//   - Key derived from CONFIG_SECRET using HKDF-SHA256
//
// Security Properties:
//   - Confidentiality: AES-256 encryption
//   - Integrity: GCM authentication tag
//   - Uniqueness: Random nonce prevents ciphertext analysis
//
// Config files may carry the API key as an enc:-prefixed value:
//
//	directory:
//	  api_key: "enc:bm9uY2UuLi5jaXBoZXJ0ZXh0Li4u"
//
// Load() decrypts such values transparently when CONFIG_SECRET is set.
// EncryptValue produces them:
//
//	encrypted, err := config.EncryptValue(os.Getenv("CONFIG_SECRET"), "real-api-key")

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// EncryptedValuePrefix marks a config value as encrypted. Values with
	// this prefix are decrypted at load time using CONFIG_SECRET.
	EncryptedValuePrefix = "enc:"

	// credentialEncryptionSalt is the salt used for HKDF key derivation.
	// This is a fixed, application-specific salt that ensures keys are
	// uniquely bound to this application's credential encryption use case.
	credentialEncryptionSalt = "cognatus-directory-credentials"

	// credentialEncryptionInfo is the HKDF info parameter for key derivation.
	credentialEncryptionInfo = "credential-encryption-v1"

	// aesKeySize is the size of the AES key in bytes (256 bits).
	aesKeySize = 32

	// gcmNonceSize is the size of the GCM nonce in bytes.
	gcmNonceSize = 12
)

var (
	// ErrEmptySecret is returned when an empty config secret is provided.
	ErrEmptySecret = errors.New("config secret cannot be empty")

	// ErrEmptyPlaintext is returned when attempting to encrypt empty data.
	ErrEmptyPlaintext = errors.New("plaintext cannot be empty")

	// ErrEmptyCiphertext is returned when attempting to decrypt empty data.
	ErrEmptyCiphertext = errors.New("ciphertext cannot be empty")

	// ErrDecryptionFailed is returned when decryption fails (invalid ciphertext or tampered data).
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or authentication tag")

	// ErrInvalidCiphertext is returned when the ciphertext format is invalid.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrCiphertextTooShort is returned when the ciphertext is shorter than the minimum length.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// CredentialEncryptor provides AES-256-GCM encryption for sensitive credentials.
// It derives an encryption key from the application's config secret using HKDF,
// ensuring that credential encryption is tied to the deployment's identity.
type CredentialEncryptor struct {
	key    []byte
	cipher cipher.AEAD
}

// NewCredentialEncryptor creates a new credential encryptor using the provided config secret.
// The secret is used to derive a 256-bit AES key using HKDF-SHA256.
//
// Returns ErrEmptySecret if the secret is empty.
func NewCredentialEncryptor(configSecret string) (*CredentialEncryptor, error) {
	if configSecret == "" {
		return nil, ErrEmptySecret
	}

	// Derive encryption key from config secret using HKDF
	key, err := deriveKey(configSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	// Create GCM mode
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &CredentialEncryptor{
		key:    key,
		cipher: gcm,
	}, nil
}

// Encrypt encrypts a plaintext string and returns a base64-encoded ciphertext.
// The ciphertext format is: base64(nonce || ciphertext || tag)
//
// Returns ErrEmptyPlaintext if plaintext is empty.
func (e *CredentialEncryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	// Generate random nonce
	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Encrypt with GCM (includes authentication tag)
	ciphertext := e.cipher.Seal(nonce, nonce, []byte(plaintext), nil)

	// Return base64-encoded result
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a base64-encoded ciphertext and returns the plaintext.
func (e *CredentialEncryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", ErrEmptyCiphertext
	}

	// Decode base64
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed: %s", ErrInvalidCiphertext, err.Error())
	}

	// Minimum length: nonce (12) + at least 1 byte + tag (16) = 29 bytes
	minLength := gcmNonceSize + 1 + e.cipher.Overhead()
	if len(data) < minLength {
		return "", ErrCiphertextTooShort
	}

	// Extract nonce and ciphertext
	nonce := data[:gcmNonceSize]
	encryptedData := data[gcmNonceSize:]

	// Decrypt and verify
	plaintext, err := e.cipher.Open(nil, nonce, encryptedData, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// EncryptValue encrypts a plaintext credential and returns it in the
// enc:-prefixed form accepted by config files.
func EncryptValue(configSecret, plaintext string) (string, error) {
	encryptor, err := NewCredentialEncryptor(configSecret)
	if err != nil {
		return "", err
	}

	ciphertext, err := encryptor.Encrypt(plaintext)
	if err != nil {
		return "", err
	}

	return EncryptedValuePrefix + ciphertext, nil
}

// decryptCredentials resolves enc:-prefixed credential values in place.
// Called by Load() after unmarshaling and before validation. A missing
// CONFIG_SECRET is only an error when an encrypted value is present.
func (c *Config) decryptCredentials() error {
	if !strings.HasPrefix(c.Directory.APIKey, EncryptedValuePrefix) {
		return nil
	}

	if c.Security.ConfigSecret == "" {
		return fmt.Errorf("DIRECTORY_API_KEY is encrypted but CONFIG_SECRET is not set")
	}

	encryptor, err := NewCredentialEncryptor(c.Security.ConfigSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize credential encryptor: %w", err)
	}

	if err := encryptor.ValidateEncryptionSetup(); err != nil {
		return fmt.Errorf("encryption self-test failed: %w", err)
	}

	plaintext, err := encryptor.Decrypt(strings.TrimPrefix(c.Directory.APIKey, EncryptedValuePrefix))
	if err != nil {
		return fmt.Errorf("failed to decrypt DIRECTORY_API_KEY: %w", err)
	}

	c.Directory.APIKey = plaintext
	return nil
}

// MaskCredential returns a masked version of a credential for display purposes.
// Shows only the last 4 characters preceded by asterisks.
func MaskCredential(credential string) string {
	if credential == "" {
		return ""
	}

	if len(credential) <= 4 {
		return "****"
	}

	// Show last 4 characters
	return "****..." + credential[len(credential)-4:]
}

// deriveKey derives a 256-bit AES key from the config secret using HKDF-SHA256.
func deriveKey(configSecret string) ([]byte, error) {
	// Create HKDF reader
	hkdfReader := hkdf.New(
		sha256.New,
		[]byte(configSecret),
		[]byte(credentialEncryptionSalt),
		[]byte(credentialEncryptionInfo),
	)

	// Read key bytes
	key := make([]byte, aesKeySize)
	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, fmt.Errorf("failed to read HKDF output: %w", err)
	}

	return key, nil
}

// ValidateEncryptionSetup validates that encryption is properly configured.
// This performs a round-trip encrypt/decrypt test to ensure the encryptor is working.
func (e *CredentialEncryptor) ValidateEncryptionSetup() error {
	testData := "encryption-validation-test"

	encrypted, err := e.Encrypt(testData)
	if err != nil {
		return fmt.Errorf("encryption test failed: %w", err)
	}

	decrypted, err := e.Decrypt(encrypted)
	if err != nil {
		return fmt.Errorf("decryption test failed: %w", err)
	}

	if decrypted != testData {
		return errors.New("round-trip validation failed: data mismatch")
	}

	return nil
}
