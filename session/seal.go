package session

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/nacl/secretbox"
)

// TestKey is a fixed 32-byte key for use in tests only.
var TestKey = []byte("splitter-test-key32-abcdefghijkl")

// Seal CBOR-encodes data and encrypts it with secretbox under a 32-byte key.
// The result is safe to persist at rest.
func Seal(data any, key []byte) (string, error) {
	if len(key) != 32 {
		return "", fmt.Errorf("seal key must be exactly 32 bytes, got %d", len(key))
	}
	var b bytes.Buffer
	if err := cbor.NewEncoder(&b).Encode(data); err != nil {
		return "", fmt.Errorf("failed to encode data: %w", err)
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	var keyBytes [32]byte
	copy(keyBytes[:], key)
	return base64.RawURLEncoding.EncodeToString(
		secretbox.Seal(nonce[:], b.Bytes(), &nonce, &keyBytes),
	), nil
}

// Unseal decrypts a value produced by Seal and CBOR-decodes it into data.
func Unseal(sealed string, key []byte, data any) error {
	if len(key) != 32 {
		return fmt.Errorf("seal key must be exactly 32 bytes, got %d", len(key))
	}
	b, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return fmt.Errorf("invalid sealed value: %w", err)
	}
	if len(b) < 24 {
		return fmt.Errorf("invalid sealed value: data too short")
	}
	var nonce [24]byte
	copy(nonce[:], b[:24])
	var keyBytes [32]byte
	copy(keyBytes[:], key)
	decrypted, ok := secretbox.Open(nil, b[24:], &nonce, &keyBytes)
	if !ok {
		return fmt.Errorf("invalid sealed value")
	}
	if data != nil {
		return cbor.NewDecoder(bytes.NewReader(decrypted)).Decode(data)
	}
	return nil
}

// ParseKey decodes a base64 seal key and checks its length.
func ParseKey(key string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seal key: %w", err)
	}
	if len(decoded) != 32 {
		return nil, fmt.Errorf("seal key must be exactly 32 bytes, got %d", len(decoded))
	}
	return decoded, nil
}

// GenerateKey returns a fresh random seal key, base64 encoded.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
