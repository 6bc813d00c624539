package postgres

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// sealVersion is the version byte of the sealed content format
	sealVersion = 0x01

	nonceSize = 12
	keySize   = 32
)

var (
	// ErrInvalidKeySize is returned when the encryption key is not 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be 32 bytes")

	// ErrInvalidBlobSize is returned when the sealed blob is too small.
	ErrInvalidBlobSize = errors.New("sealed content is too small")

	// ErrUnsupportedVersion is returned when the blob version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported sealed content version")

	// ErrDecryptionFailed is returned when opening fails (wrong key, wrong conversation or corrupted data).
	ErrDecryptionFailed = errors.New("failed to open sealed content")
)

// ContentSealer encrypts turn content with AES-256-GCM.
// The conversation ID is bound as additional data, so a row copied into
// another conversation fails to open.
// Format: version(1) || nonce(12) || ciphertext(N)
type ContentSealer struct {
	gcm cipher.AEAD
}

// NewContentSealer creates a sealer with the given 32-byte key.
func NewContentSealer(key []byte) (*ContentSealer, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &ContentSealer{gcm: gcm}, nil
}

// ParseKey decodes a 32-byte key given as hex (64 chars) or standard base64.
func ParseKey(s string) ([]byte, error) {
	if len(s) == 2*keySize {
		if key, err := hex.DecodeString(s); err == nil {
			return key, nil
		}
	}
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: key is neither hex nor base64", ErrInvalidKeySize)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}
	return key, nil
}

// Seal encrypts content for the given conversation
func (s *ContentSealer) Seal(conversationID, content string) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := s.gcm.Seal(nil, nonce, []byte(content), []byte(conversationID))

	blob := make([]byte, 1+nonceSize+len(ciphertext))
	blob[0] = sealVersion
	copy(blob[1:1+nonceSize], nonce)
	copy(blob[1+nonceSize:], ciphertext)

	return blob, nil
}

// Open decrypts content sealed for the given conversation
func (s *ContentSealer) Open(conversationID string, blob []byte) (string, error) {
	if len(blob) < 1+nonceSize+s.gcm.Overhead() {
		return "", ErrInvalidBlobSize
	}

	if blob[0] != sealVersion {
		return "", fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, blob[0])
	}

	nonce := blob[1 : 1+nonceSize]
	plaintext, err := s.gcm.Open(nil, nonce, blob[1+nonceSize:], []byte(conversationID))
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
