// AngelaMos | 2026
// crypto.go

package toolkit

import (
	"context"
	"crypto/md5"  //nolint:gosec // offered as a digest, not for security
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // offered as a digest, not for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // offered as a digest
	"golang.org/x/crypto/sha3"
)

var hashAlgorithms = map[string]func() hash.Hash{
	"md5":       md5.New,
	"sha1":      sha1.New,
	"sha224":    sha256.New224,
	"sha256":    sha256.New,
	"sha384":    sha512.New384,
	"sha512":    sha512.New,
	"sha3":      sha3.NewLegacyKeccak512,
	"ripemd160": ripemd160.New,
}

var hashOrder = []string{"md5", "sha1", "sha224", "sha256", "sha384", "sha512", "sha3", "ripemd160"}

type HashTextRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm" validate:"omitempty,oneof=md5 sha1 sha224 sha256 sha384 sha512 sha3 ripemd160"`
	Encoding  string `json:"encoding"  validate:"omitempty,oneof=hex base64 base64url binary"`
}

type Digest struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

// HashText digests text with one algorithm, or with all of them when none
// is named. "sha3" is the legacy Keccak-512 variant.
func HashText() Widget {
	return Typed(func(_ context.Context, req HashTextRequest) (any, error) {
		algos := hashOrder
		if req.Algorithm != "" {
			algos = []string{req.Algorithm}
		}

		digests := make([]Digest, 0, len(algos))
		for _, name := range algos {
			h := hashAlgorithms[name]()
			h.Write([]byte(req.Text))
			digests = append(digests, Digest{
				Algorithm: name,
				Digest:    encodeDigest(h.Sum(nil), req.Encoding),
			})
		}
		return digests, nil
	})
}

func encodeDigest(sum []byte, encoding string) string {
	switch encoding {
	case "base64":
		return base64.StdEncoding.EncodeToString(sum)
	case "base64url":
		return base64.RawURLEncoding.EncodeToString(sum)
	case "binary":
		var b strings.Builder
		for _, c := range sum {
			fmt.Fprintf(&b, "%08b", c)
		}
		return b.String()
	default:
		return hex.EncodeToString(sum)
	}
}

type BcryptRequest struct {
	Text string `json:"text" validate:"max=72"`
	Cost int    `json:"cost" validate:"omitempty,min=4,max=14"`
	Hash string `json:"hash" validate:"omitempty,max=100"`
}

type BcryptResult struct {
	Hash  string `json:"hash,omitempty"`
	Cost  int    `json:"cost,omitempty"`
	Match *bool  `json:"match,omitempty"`
}

// Bcrypt hashes text, or compares it against hash when one is given.
func Bcrypt() Widget {
	return Typed(func(_ context.Context, req BcryptRequest) (any, error) {
		if len(req.Text) > 72 {
			return nil, badInput("text must be at most 72 bytes")
		}

		if req.Hash != "" {
			match := bcrypt.CompareHashAndPassword([]byte(req.Hash), []byte(req.Text)) == nil
			return BcryptResult{Match: &match}, nil
		}

		cost := req.Cost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}

		out, err := bcrypt.GenerateFromPassword([]byte(req.Text), cost)
		if err != nil {
			return nil, fmt.Errorf("bcrypt hash: %w", err)
		}
		return BcryptResult{Hash: string(out), Cost: cost}, nil
	})
}

const (
	alphaUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphaLower   = "abcdefghijklmnopqrstuvwxyz"
	alphaNumbers = "0123456789"
	alphaSymbols = ".,;:!?./-\"'#{([-|\\@)]=}*+"
)

type TokenRequest struct {
	Length    int   `json:"length"    validate:"omitempty,min=1,max=512"`
	Count     int   `json:"count"     validate:"omitempty,min=1,max=50"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
	UUID      bool  `json:"uuid"`
}

func TokenGenerator() Widget {
	return Typed(func(_ context.Context, req TokenRequest) (any, error) {
		count := req.Count
		if count == 0 {
			count = 1
		}

		tokens := make([]string, 0, count)
		if req.UUID {
			for range count {
				tokens = append(tokens, uuid.NewString())
			}
			return map[string]any{"tokens": tokens}, nil
		}

		length := req.Length
		if length == 0 {
			length = 64
		}

		var alphabet strings.Builder
		if boolOr(req.Uppercase, true) {
			alphabet.WriteString(alphaUpper)
		}
		if boolOr(req.Lowercase, true) {
			alphabet.WriteString(alphaLower)
		}
		if boolOr(req.Numbers, true) {
			alphabet.WriteString(alphaNumbers)
		}
		if boolOr(req.Symbols, false) {
			alphabet.WriteString(alphaSymbols)
		}
		if alphabet.Len() == 0 {
			return nil, badInput("select at least one character set")
		}

		for range count {
			token, err := randomString(alphabet.String(), length)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
		return map[string]any{"tokens": tokens}, nil
	})
}

func randomString(alphabet string, length int) (string, error) {
	chars := []rune(alphabet)
	limit := big.NewInt(int64(len(chars)))

	out := make([]rune, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = chars[n.Int64()]
	}
	return string(out), nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

type ObfuscateRequest struct {
	Text     string `json:"text"     validate:"max=65536"`
	Encoding string `json:"encoding" validate:"required,oneof=base64 hex binary ascii rot13"`
	Mode     string `json:"mode"     validate:"omitempty,oneof=encode decode"`
	Reverse  bool   `json:"reverse"`
}

func StringObfuscator() Widget {
	return Typed(func(_ context.Context, req ObfuscateRequest) (any, error) {
		text := req.Text
		decode := req.Mode == "decode"

		if req.Reverse && !decode {
			text = reverseString(text)
		}

		var (
			out string
			err error
		)
		if decode {
			out, err = decodeAs(req.Encoding, text)
		} else {
			out = encodeAs(req.Encoding, text)
		}
		if err != nil {
			return nil, err
		}

		if req.Reverse && decode {
			out = reverseString(out)
		}
		return map[string]string{"result": out}, nil
	})
}

func encodeAs(encoding, text string) string {
	switch encoding {
	case "base64":
		return base64.StdEncoding.EncodeToString([]byte(text))
	case "hex":
		return hex.EncodeToString([]byte(text))
	case "binary":
		parts := make([]string, 0, len(text))
		for _, c := range []byte(text) {
			parts = append(parts, fmt.Sprintf("%08b", c))
		}
		return strings.Join(parts, " ")
	case "ascii":
		parts := make([]string, 0, len(text))
		for _, r := range text {
			parts = append(parts, strconv.Itoa(int(r)))
		}
		return strings.Join(parts, " ")
	default:
		return rot13(text)
	}
}

func decodeAs(encoding, text string) (string, error) {
	switch encoding {
	case "base64":
		out, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return "", badInput("text is not valid base64")
		}
		return string(out), nil
	case "hex":
		out, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return "", badInput("text is not valid hex")
		}
		return string(out), nil
	case "binary":
		fields := strings.Fields(text)
		out := make([]byte, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 2, 8)
			if err != nil {
				return "", badInput("%q is not an 8-bit binary group", f)
			}
			out = append(out, byte(v))
		}
		return string(out), nil
	case "ascii":
		fields := strings.Fields(text)
		out := make([]rune, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil || v < 0 {
				return "", badInput("%q is not a character code", f)
			}
			out = append(out, rune(v))
		}
		return string(out), nil
	default:
		return rot13(text), nil
	}
}

func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		}
		return r
	}, s)
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
