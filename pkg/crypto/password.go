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

// ErrMalformedHash is returned when a stored password hash cannot be parsed.
var ErrMalformedHash = errors.New("crypto: malformed password hash")

// Argon2Params controls the cost factors for Argon2id password hashing.
type Argon2Params struct {
	// Time is the number of iterations.
	Time uint32
	// Memory is the amount of memory (in kibibytes) to use.
	Memory uint32
	// Threads is the degree of parallelism.
	Threads uint8
	// SaltLength is the random salt size in bytes.
	SaltLength uint32
	// KeyLength is the derived key length in bytes.
	KeyLength uint32
}

// DefaultArgon2Params returns the cost parameters used for stored passwords.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:       3,
		Memory:     64 * 1024, // 64 MiB
		Threads:    4,
		SaltLength: 16,
		KeyLength:  32,
	}
}

// Validate ensures the parameters are suitable for Argon2id hashing.
func (p Argon2Params) Validate() error {
	if p.Time == 0 {
		return fmt.Errorf("argon2: time cost must be greater than zero")
	}
	if p.Threads == 0 {
		return fmt.Errorf("argon2: parallelism must be greater than zero")
	}
	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("argon2: memory cost must be at least 8 * threads")
	}
	if p.SaltLength < 16 {
		return fmt.Errorf("argon2: salt must be at least 16 bytes (got %d)", p.SaltLength)
	}
	if p.KeyLength < 16 {
		return fmt.Errorf("argon2: key length must be at least 16 bytes (got %d)", p.KeyLength)
	}
	return nil
}

// HashPassword derives an Argon2id hash of the password with a fresh random
// salt and encodes it in PHC string format, e.g.
// "$argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>".
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultArgon2Params())
}

// HashPasswordWithParams is HashPassword with explicit cost parameters.
func HashPasswordWithParams(password string, params Argon2Params) (string, error) {
	if password == "" {
		return "", errors.New("crypto: password is required")
	}
	if err := params.Validate(); err != nil {
		return "", err
	}

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("crypto: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.Memory,
		params.Time,
		params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword reports whether the plaintext candidate matches the encoded
// Argon2id hash. Comparison of the derived keys is constant time.
func VerifyPassword(encoded, password string) bool {
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	return params, salt, key, nil
}
