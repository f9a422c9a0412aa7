package reftoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrDecode is returned for any token that does not decode back to a valid
// registration id: wrong shape, bad hex, wrong key. Callers must treat it as
// a forged or corrupted reference, not as an internal failure.
var ErrDecode = errors.New("invalid reference token")

const delimiter = ":"

// Codec reversibly encodes registration ids into opaque references safe to
// hand to the payment gateway. Encoding is non-deterministic: a fresh random
// IV is drawn per call, so two references for the same id never match.
type Codec struct {
	block cipher.Block
}

// New builds a codec from the configured secret. The secret must be a valid
// AES key length (16, 24 or 32 bytes).
func New(secret string) (*Codec, error) {
	switch len(secret) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("reftoken: secret must be 16, 24 or 32 bytes, got %d", len(secret))
	}
	block, err := aes.NewCipher([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("reftoken: %w", err)
	}
	return &Codec{block: block}, nil
}

// Encode encrypts the id into "hex(iv):hex(ciphertext)".
func (c *Codec) Encode(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("reftoken: id must be positive, got %d", id)
	}
	plain := []byte(strconv.FormatInt(id, 10))

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("reftoken: generate iv: %w", err)
	}

	ct := make([]byte, len(plain))
	cipher.NewCTR(c.block, iv).XORKeyStream(ct, plain)

	return hex.EncodeToString(iv) + delimiter + hex.EncodeToString(ct), nil
}

// Decode reverses Encode. It never returns a value for malformed input.
func (c *Codec) Decode(token string) (int64, error) {
	ivHex, ctHex, found := strings.Cut(token, delimiter)
	if !found || ivHex == "" || ctHex == "" {
		return 0, ErrDecode
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return 0, ErrDecode
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil || len(ct) == 0 {
		return 0, ErrDecode
	}

	plain := make([]byte, len(ct))
	cipher.NewCTR(c.block, iv).XORKeyStream(plain, ct)

	id, err := strconv.ParseInt(string(plain), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrDecode
	}
	return id, nil
}
