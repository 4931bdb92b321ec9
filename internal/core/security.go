// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const saltLength = 16

type Argon2Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

var DefaultArgon2Params = Argon2Params{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
}

// PasswordHasher produces and checks argon2id hashes in the PHC string
// format. Hashes made with other parameters still verify and are reported
// for rehash.
type PasswordHasher struct {
	params    Argon2Params
	dummyOnce sync.Once
	dummyHash string
}

func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Time,
		p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey(
		[]byte(password),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		params.KeyLen,
	)

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// VerifyTimingSafe always spends one argon2 derivation, against a dummy hash
// when encodedHash is empty, so unknown usernames cost the same as wrong
// passwords. A non-empty rehash is returned when the stored hash uses
// outdated parameters.
func (h *PasswordHasher) VerifyTimingSafe(
	password, encodedHash string,
) (valid bool, rehash string, err error) {
	if encodedHash == "" {
		//nolint:errcheck // result is discarded, only the work matters
		_, _ = h.Verify(password, h.dummy())
		return false, "", nil
	}

	valid, err = h.Verify(password, encodedHash)
	if err != nil || !valid {
		return false, "", err
	}

	if h.needsRehash(encodedHash) {
		newHash, hashErr := h.Hash(password)
		if hashErr != nil {
			//nolint:nilerr // password verified; rehash failure is non-critical
			return true, "", nil
		}
		return true, newHash, nil
	}

	return true, "", nil
}

func (h *PasswordHasher) dummy() string {
	h.dummyOnce.Do(func() {
		hash, err := h.Hash("dummy_password_for_timing_attack_prevention")
		if err != nil {
			panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
		}
		h.dummyHash = hash
	})
	return h.dummyHash
}

func (h *PasswordHasher) needsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}
	return *params != h.params
}

func decodeHash(encodedHash string) (*Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &Argon2Params{}
	if _, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.Memory,
		&params.Time,
		&params.Threads,
	); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: argon2 key length is always small
	params.KeyLen = uint32(len(key))

	return params, salt, key, nil
}
