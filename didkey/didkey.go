// Package didkey manages the client side of Splitter's DID identity: Ed25519
// keypair generation, challenge signing for the login flow, and the signed
// message material for key rotation. DIDs are otherwise treated as opaque
// strings by the rest of the SDK.
package didkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bluesky-social/indigo/atproto/syntax"
	"github.com/google/uuid"
)

// Keypair is a freshly generated signing identity. PublicKeyB64 is the
// base64 (std) encoding of the raw 32-byte public key, the format the
// backend stores at registration.
type Keypair struct {
	PrivateKey   ed25519.PrivateKey
	PublicKey    ed25519.PublicKey
	PublicKeyB64 string
}

// GenerateKeypair creates a new Ed25519 signing keypair.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Keypair{
		PrivateKey:   priv,
		PublicKey:    pub,
		PublicKeyB64: base64.StdEncoding.EncodeToString(pub),
	}, nil
}

// EncodePrivateKey returns the base64 encoding of the raw private key, the
// form persisted in the session store.
func EncodePrivateKey(priv ed25519.PrivateKey) string {
	return base64.StdEncoding.EncodeToString(priv)
}

// DecodePrivateKey parses a private key encoded by EncodePrivateKey.
func DecodePrivateKey(privB64 string) (ed25519.PrivateKey, error) {
	b, err := base64.StdEncoding.DecodeString(privB64)
	if err != nil {
		return nil, fmt.Errorf("invalid private key encoding: %w", err)
	}
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d bytes, got %d", ed25519.PrivateKeySize, len(b))
	}
	return ed25519.PrivateKey(b), nil
}

// DecodePublicKey parses a base64-encoded Ed25519 public key. Accepts both
// standard and URL-safe base64, matching the backend's decoder.
func DecodePublicKey(pubB64 string) (ed25519.PublicKey, error) {
	b, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(pubB64)
		if err != nil {
			return nil, fmt.Errorf("invalid public key encoding: %w", err)
		}
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: expected %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// NewDID derives a did:splitter identifier for a new user, matching the
// backend's generator format.
func NewDID(username string) (string, error) {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to generate did suffix: %w", err)
	}
	did := fmt.Sprintf("did:splitter:%s-%s", username, hex.EncodeToString(randBytes))
	// Sanity check the result against DID syntax rules before handing it out.
	if _, err := syntax.ParseDID(did); err != nil {
		return "", fmt.Errorf("generated invalid did: %w", err)
	}
	return did, nil
}

// ValidateDID checks that a string is a syntactically valid DID.
func ValidateDID(did string) error {
	if _, err := syntax.ParseDID(did); err != nil {
		return fmt.Errorf("invalid did %q: %w", did, err)
	}
	return nil
}

// SignChallenge signs a login challenge nonce, returning the base64-encoded
// signature the backend's verify endpoint expects.
func SignChallenge(challenge string, priv ed25519.PrivateKey) string {
	sig := ed25519.Sign(priv, []byte(challenge))
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifySignature checks a base64-encoded Ed25519 signature over message.
// The SDK uses this in tests and bridges; the backend performs the
// authoritative verification.
func VerifySignature(pub ed25519.PublicKey, message, signatureB64 string) error {
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		sig, err = base64.RawURLEncoding.DecodeString(signatureB64)
		if err != nil {
			return fmt.Errorf("invalid signature encoding: %w", err)
		}
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature length: expected %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	if !ed25519.Verify(pub, []byte(message), sig) {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}

// RotationRequest is the signed material for rotating a signing key. The
// signature is computed with the CURRENT private key over the canonical
// rotation message.
type RotationRequest struct {
	NewPublicKey string `json:"new_public_key"`
	Signature    string `json:"signature"`
	Nonce        string `json:"nonce"`
	Timestamp    int64  `json:"timestamp"`
	Reason       string `json:"reason,omitempty"`
}

// BuildRotationMessage creates the canonical signed message for a key
// rotation: "{newPublicKey}|{nonce}|{timestamp}". Client and server must
// agree on this exact format.
func BuildRotationMessage(newPublicKey, nonce string, timestamp int64) string {
	return fmt.Sprintf("%s|%s|%d", newPublicKey, nonce, timestamp)
}

// SignRotation builds a RotationRequest announcing newPub, signed with the
// current private key.
func SignRotation(currentPriv ed25519.PrivateKey, newPubB64, reason string) *RotationRequest {
	nonce := uuid.New().String()
	timestamp := time.Now().Unix()
	message := BuildRotationMessage(newPubB64, nonce, timestamp)
	sig := ed25519.Sign(currentPriv, []byte(message))
	return &RotationRequest{
		NewPublicKey: newPubB64,
		Signature:    base64.StdEncoding.EncodeToString(sig),
		Nonce:        nonce,
		Timestamp:    timestamp,
		Reason:       reason,
	}
}
