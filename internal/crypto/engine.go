// Package crypto implements reversible field encryption with a paired
// searchable digest, plus the display-masking transforms applied to
// decrypted values.
//
// Encrypted values are self-describing: a random XChaCha20-Poly1305 nonce
// is prefixed to the sealed bytes and the whole blob is base64-encoded
// into one opaque string, so no external metadata is needed to decrypt.
// The search digest is a keyed HMAC-SHA256 over the canonicalized
// plaintext under a key independent from the encryption key, allowing
// exact-match lookup without decrypting rows.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	fieldKeyEnvVariable  = "KADRIO_FIELD_KEY"
	digestKeyEnvVariable = "KADRIO_DIGEST_KEY"
)

var (
	// ErrKeyMissing indicates one of the field keys is not configured.
	ErrKeyMissing = errors.New("crypto: field key is not configured")
	// ErrEmptyPlaintext indicates encryption or digest of an empty value
	// was requested for a required field.
	ErrEmptyPlaintext = errors.New("crypto: plaintext is empty")
	// ErrMalformedCiphertext indicates the stored value cannot be decoded.
	ErrMalformedCiphertext = errors.New("crypto: malformed ciphertext")
	// ErrDecryptFailed indicates authentication failed (tampered data).
	// The error never carries ciphertext or partial plaintext.
	ErrDecryptFailed = errors.New("crypto: decryption failed")
)

type cachedKeys struct {
	field  []byte
	digest []byte
	err    error
	ready  bool
}

var (
	keysMu sync.Mutex
	keys   cachedKeys
)

// Encrypt seals plaintext under the process-wide field key. Each call
// draws a fresh random nonce, so encrypting the same value twice yields
// different ciphertexts.
func Encrypt(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", ErrEmptyPlaintext
	}
	k, err := loadKeys()
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(k.field)
	if err != nil {
		return "", fmt.Errorf("crypto: init cipher: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt. Tampering with any bit of
// the stored representation fails authentication and returns
// ErrDecryptFailed, never altered plaintext.
func Decrypt(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrMalformedCiphertext
	}
	k, err := loadKeys()
	if err != nil {
		return "", err
	}
	raw, err := base64.RawStdEncoding.DecodeString(value)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	aead, err := chacha20poly1305.NewX(k.field)
	if err != nil {
		return "", fmt.Errorf("crypto: init cipher: %w", err)
	}
	if len(raw) < chacha20poly1305.NonceSizeX+aead.Overhead() {
		return "", ErrMalformedCiphertext
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}

// SearchDigest derives the deterministic lookup digest for plaintext.
// The digest key is independent from the encryption key, so compromise
// of one does not expose the other.
func SearchDigest(plaintext string) (string, error) {
	plaintext = strings.TrimSpace(plaintext)
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}
	k, err := loadKeys()
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, k.digest)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func loadKeys() (cachedKeys, error) {
	keysMu.Lock()
	defer keysMu.Unlock()
	if keys.ready {
		return keys, keys.err
	}
	fieldRaw := strings.TrimSpace(os.Getenv(fieldKeyEnvVariable))
	digestRaw := strings.TrimSpace(os.Getenv(digestKeyEnvVariable))
	if fieldRaw == "" || digestRaw == "" {
		keys.err = ErrKeyMissing
		keys.ready = true
		return keys, keys.err
	}
	// Stretch arbitrary-length env secrets to cipher-sized keys.
	fieldSum := sha256.Sum256([]byte(fieldRaw))
	digestSum := sha256.Sum256([]byte("digest:" + digestRaw))
	keys.field = fieldSum[:]
	keys.digest = digestSum[:]
	keys.err = nil
	keys.ready = true
	return keys, nil
}

// ResetKeysForTests clears the cached key material. Only intended for test use.
func ResetKeysForTests() {
	keysMu.Lock()
	defer keysMu.Unlock()
	keys = cachedKeys{}
}
