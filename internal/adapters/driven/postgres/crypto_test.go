package postgres

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
)

var testKey = []byte("01234567890123456789012345678901")

func TestContentSealer_RoundTrip(t *testing.T) {
	sealer, err := NewContentSealer(testKey)
	if err != nil {
		t.Fatalf("NewContentSealer: %v", err)
	}

	content := "Provided Data: === SALES TRANSACTIONS (1 of 40 total) ==="
	blob, err := sealer.Seal("conv-1", content)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if len(blob) < 1+nonceSize {
		t.Fatalf("blob too short: %d bytes", len(blob))
	}
	if blob[0] != sealVersion {
		t.Errorf("version byte: got %d, want %d", blob[0], sealVersion)
	}
	if bytes.Contains(blob, []byte("SALES")) {
		t.Error("blob contains plaintext")
	}

	got, err := sealer.Open("conv-1", blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != content {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestContentSealer_EmptyContent(t *testing.T) {
	sealer, _ := NewContentSealer(testKey)

	blob, err := sealer.Seal("conv-1", "")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := sealer.Open("conv-1", blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty content, got %q", got)
	}
}

func TestContentSealer_BoundToConversation(t *testing.T) {
	sealer, _ := NewContentSealer(testKey)

	blob, _ := sealer.Seal("conv-1", "secret")
	if _, err := sealer.Open("conv-2", blob); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestContentSealer_NonceIsRandom(t *testing.T) {
	sealer, _ := NewContentSealer(testKey)

	a, _ := sealer.Seal("conv-1", "same")
	b, _ := sealer.Seal("conv-1", "same")
	if bytes.Equal(a, b) {
		t.Error("two seals of the same content should differ")
	}
}

func TestContentSealer_WrongKey(t *testing.T) {
	sealer, _ := NewContentSealer(testKey)
	other, _ := NewContentSealer([]byte("abcdefghijabcdefghijabcdefghij12"))

	blob, _ := sealer.Seal("conv-1", "secret")
	if _, err := other.Open("conv-1", blob); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestContentSealer_InvalidKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		if _, err := NewContentSealer(make([]byte, size)); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("size %d: expected ErrInvalidKeySize, got %v", size, err)
		}
	}
}

func TestContentSealer_InvalidBlobs(t *testing.T) {
	sealer, _ := NewContentSealer(testKey)

	if _, err := sealer.Open("conv-1", []byte{sealVersion, 1, 2}); !errors.Is(err, ErrInvalidBlobSize) {
		t.Errorf("expected ErrInvalidBlobSize, got %v", err)
	}

	blob, _ := sealer.Seal("conv-1", "secret")
	blob[0] = 0x09
	if _, err := sealer.Open("conv-1", blob); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}

	blob, _ = sealer.Seal("conv-1", "secret")
	blob[len(blob)-1] ^= 0xff
	if _, err := sealer.Open("conv-1", blob); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	hexKey := hex.EncodeToString(testKey)
	key, err := ParseKey(hexKey)
	if err != nil || !bytes.Equal(key, testKey) {
		t.Errorf("hex key: got %x, %v", key, err)
	}

	b64Key := base64.StdEncoding.EncodeToString(testKey)
	key, err = ParseKey(b64Key)
	if err != nil || !bytes.Equal(key, testKey) {
		t.Errorf("base64 key: got %x, %v", key, err)
	}

	for _, bad := range []string{"", "short", base64.StdEncoding.EncodeToString([]byte("sixteen bytes!!!"))} {
		if _, err := ParseKey(bad); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("ParseKey(%q): expected ErrInvalidKeySize, got %v", bad, err)
		}
	}
}
