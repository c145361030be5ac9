package service

import (
	"fmt"
	"log"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
)

// EvidenceTokenService seals evidence document references into fernet
// tokens before they cross the API boundary. A sealed reference cannot
// be forged or altered, and expires after the configured TTL, so
// external parties cannot enumerate or substitute document IDs.
type EvidenceTokenService struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewEvidenceTokenService creates a token service from a base64-encoded
// fernet key. An empty key generates an ephemeral one, which invalidates
// outstanding tokens on restart.
func NewEvidenceTokenService(encodedKey string, ttl time.Duration) (*EvidenceTokenService, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate evidence sealing key: %w", err)
		}
		log.Println("EVIDENCE_SEALING_KEY not set; using an ephemeral key, issued evidence tokens will not survive a restart")
		return &EvidenceTokenService{keys: []*fernet.Key{&key}, ttl: ttl}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode evidence sealing key: %w", err)
	}
	return &EvidenceTokenService{keys: []*fernet.Key{key}, ttl: ttl}, nil
}

// Seal wraps a document ID in a signed, encrypted token. An empty ID is
// rejected rather than sealed into a token that unseals to nothing.
func (s *EvidenceTokenService) Seal(documentID string) (string, error) {
	if documentID == "" {
		return "", apperrors.ErrEmptyID
	}
	token, err := fernet.EncryptAndSign([]byte(documentID), s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to seal evidence reference: %w", err)
	}
	return string(token), nil
}

// Unseal verifies a token and recovers the document ID. Tampered or
// expired tokens fail with ErrInvalidEvidenceToken.
func (s *EvidenceTokenService) Unseal(token string) (string, error) {
	documentID := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if documentID == nil {
		return "", apperrors.ErrInvalidEvidenceToken
	}
	return string(documentID), nil
}
