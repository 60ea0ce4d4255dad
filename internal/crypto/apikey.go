package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashParams configures Argon2id key hashing.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns the parameters used for API key hashes.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// KeyHash is a decoded API key hash. It is parsed once from API_KEY_HASH at
// startup and then checked against every key presented to the token endpoint.
type KeyHash struct {
	params HashParams
	salt   []byte
	sum    []byte
}

// HashAPIKey hashes key with Argon2id and returns it in PHC string format,
// ready to be placed in API_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	params := DefaultHashParams()

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	h := &KeyHash{params: params, salt: salt}
	h.sum = h.derive(key)
	return h.String(), nil
}

// ParseKeyHash decodes a PHC-formatted Argon2id hash such as the one printed
// by cmd/keyhash. Surrounding whitespace, typically a trailing newline left
// over from pasting into a .env file, is ignored.
func ParseKeyHash(encoded string) (*KeyHash, error) {
	// $argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
	parts := strings.Split(strings.TrimSpace(encoded), "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return nil, ErrIncompatibleVersion
	}

	var h KeyHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.params.Memory, &h.params.Iterations, &h.params.Parallelism); err != nil {
		return nil, ErrInvalidHashFormat
	}
	// argon2.IDKey panics on zero rounds or threads.
	if h.params.Memory == 0 || h.params.Iterations == 0 || h.params.Parallelism == 0 {
		return nil, fmt.Errorf("%w: zero cost parameter", ErrInvalidHashFormat)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(h.salt) == 0 {
		return nil, ErrInvalidHashFormat
	}
	if h.sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.sum) == 0 {
		return nil, ErrInvalidHashFormat
	}
	h.params.SaltLength = uint32(len(h.salt))
	h.params.KeyLength = uint32(len(h.sum))

	return &h, nil
}

// Verify reports whether key matches. The comparison runs in constant time.
func (h *KeyHash) Verify(key string) bool {
	return subtle.ConstantTimeCompare(h.sum, h.derive(key)) == 1
}

// Params returns the cost parameters the hash was created with.
func (h *KeyHash) Params() HashParams {
	return h.params
}

// String re-encodes the hash in PHC format.
func (h *KeyHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.sum),
	)
}

func (h *KeyHash) derive(key string) []byte {
	return argon2.IDKey([]byte(key), h.salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
}

// VerifyAPIKey parses encodedHash and checks key against it.
func VerifyAPIKey(key, encodedHash string) (bool, error) {
	h, err := ParseKeyHash(encodedHash)
	if err != nil {
		return false, err
	}
	return h.Verify(key), nil
}
