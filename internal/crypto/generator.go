package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	MinLength = 8
	MaxLength = 128

	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Names accepted by NewSource.
const (
	EntropyLCG    = "lcg"
	EntropyCrypto = "crypto"
)

var (
	ErrUnknownEntropy = errors.New("unknown entropy source")
	ErrEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// PasswordOptions selects the character classes that make up the alphabet.
type PasswordOptions struct {
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// AllClasses returns options with every character class enabled.
func AllClasses() PasswordOptions {
	return PasswordOptions{
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Source yields indexes in [0, n).
type Source interface {
	Intn(n int) (int, error)
}

// BuildAlphabet concatenates the selected character sets in the order
// uppercase, lowercase, numbers, symbols. With no class selected it silently
// falls back to the lowercase set.
func BuildAlphabet(opts PasswordOptions) string {
	var sb strings.Builder

	if opts.Uppercase {
		sb.WriteString(uppercaseChars)
	}
	if opts.Lowercase {
		sb.WriteString(lowercaseChars)
	}
	if opts.Numbers {
		sb.WriteString(numberChars)
	}
	if opts.Symbols {
		sb.WriteString(symbolChars)
	}

	if sb.Len() == 0 {
		return lowercaseChars
	}
	return sb.String()
}

// GeneratePassword draws length characters from the alphabet implied by opts
// using an LCG seeded from the wall clock.
//
// The output is NOT suitable where an attacker may predict it: the seed is the
// current time in nanoseconds and the generator has a 2^31 period. Use
// GenerateFrom with a CryptoSource for anything that matters.
func GeneratePassword(length int, opts PasswordOptions) string {
	// LCG draws never fail.
	password, _ := GenerateFrom(NewClockLCG(), length, opts)
	return password
}

// GenerateFrom draws length characters, with repetition, from the alphabet
// implied by opts. A non-positive length yields an empty string.
func GenerateFrom(src Source, length int, opts PasswordOptions) (string, error) {
	alphabet := BuildAlphabet(opts)
	if length <= 0 {
		return "", nil
	}

	result := make([]byte, length)
	for i := range result {
		ch, err := randChar(src, alphabet)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	return string(result), nil
}

// randChar picks a character from charset using src.
func randChar(src Source, charset string) (byte, error) {
	if len(charset) == 0 {
		return 0, ErrEmptyAlphabet
	}
	n, err := src.Intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// LCG is the classic linear congruential generator
// seed = (seed*1103515245 + 12345) mod 2^31.
// uint64 arithmetic wraps modulo 2^64, which keeps the low 31 bits exact.
type LCG struct {
	seed uint64
}

// NewLCG returns a generator starting from seed. A fixed seed reproduces the
// same sequence.
func NewLCG(seed uint64) *LCG {
	return &LCG{seed: seed}
}

// NewClockLCG seeds an LCG from the current time in nanoseconds.
func NewClockLCG() *LCG {
	return NewLCG(uint64(time.Now().UnixNano()))
}

// Next advances the generator and returns the new seed.
func (g *LCG) Next() uint64 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return g.seed
}

// Intn advances the generator and reduces the seed modulo n.
func (g *LCG) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyAlphabet
	}
	return int(g.Next() % uint64(n)), nil
}

// CryptoSource draws indexes from crypto/rand. It is safe for concurrent use.
type CryptoSource struct{}

// Intn returns a uniform index in [0, n).
func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyAlphabet
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SourceFactory builds a fresh Source for one generation.
type SourceFactory func() Source

// NewSource maps a configured entropy name to a factory. The empty name
// selects the LCG.
func NewSource(name string) (SourceFactory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EntropyLCG:
		return func() Source { return NewClockLCG() }, nil
	case EntropyCrypto:
		return func() Source { return CryptoSource{} }, nil
	default:
		return nil, ErrUnknownEntropy
	}
}
