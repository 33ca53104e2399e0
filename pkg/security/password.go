package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/tienditamejorada/tiendita-backend/pkg/config"
)

var (
	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrIncompatibleVersion is returned for unsupported argon2 versions.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

type argonParams struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

func paramsFromConfig(cfg config.PasswordConfig) argonParams {
	p := argonParams{
		memory:      uint32(cfg.ArgonMemoryKB),
		time:        uint32(cfg.ArgonTime),
		parallelism: uint8(cfg.ArgonParallelism),
		saltLength:  uint32(cfg.ArgonSaltLen),
		keyLength:   uint32(cfg.ArgonKeyLen),
	}
	if p.memory == 0 {
		p.memory = 64 * 1024
	}
	if p.time == 0 {
		p.time = 3
	}
	if p.parallelism == 0 {
		p.parallelism = 2
	}
	if p.saltLength == 0 {
		p.saltLength = 16
	}
	if p.keyLength == 0 {
		p.keyLength = 32
	}
	return p
}

// HashPassword derives an argon2id hash and encodes it with its parameters.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	p := paramsFromConfig(cfg)

	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.parallelism, p.keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory, p.time, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// VerifyPassword checks a candidate password against an encoded hash in
// constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, hash, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.parallelism, p.keyLength)
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}

func decodeHash(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return p, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	p.saltLength = uint32(len(salt))

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	p.keyLength = uint32(len(hash))

	return p, salt, hash, nil
}
