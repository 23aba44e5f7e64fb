package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Separator splits salt and digest in an encoded hash.
const Separator = ":"

// MinSaltLen is the smallest salt the hasher will generate.
const MinSaltLen = 16

// ErrMalformedHash is returned by Verify for encodings it cannot split or decode.
var ErrMalformedHash = errors.New("malformed password hash")

// KDFParams contains argon2id parameters.
type KDFParams struct {
	Time    uint32
	MemKiB  uint32
	Par     uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultKDFParams returns the argon2id RFC 9106 second recommended option.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    3,
		MemKiB:  64 * 1024,
		Par:     4,
		KeyLen:  32,
		SaltLen: MinSaltLen,
	}
}

// Hasher derives salted argon2id digests encoded as "salt:digest" in hex.
type Hasher struct {
	params KDFParams
	rand   io.Reader
}

// NewHasher creates a Hasher reading salt from crypto/rand.
func NewHasher(params KDFParams) *Hasher {
	return NewHasherWithRand(params, rand.Reader)
}

// NewHasherWithRand creates a Hasher with a custom randomness source.
func NewHasherWithRand(params KDFParams, r io.Reader) *Hasher {
	if params.SaltLen < MinSaltLen {
		params.SaltLen = MinSaltLen
	}
	if params.KeyLen == 0 {
		params.KeyLen = 32
	}
	if params.Time == 0 {
		params.Time = 1
	}
	if params.Par == 0 {
		params.Par = 1
	}
	return &Hasher{params: params, rand: r}
}

// Hash returns a fresh salted digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := h.derive(password, salt)

	return hex.EncodeToString(salt) + Separator + hex.EncodeToString(digest), nil
}

// Verify reports whether password matches the encoded hash.
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	saltHex, digestHex, ok := strings.Cut(encoded, Separator)
	if !ok || strings.Contains(digestHex, Separator) {
		return false, ErrMalformedHash
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Hasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, h.params.KeyLen)
}
