package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

const (
	defaultLength       = 16
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

var (
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 128")
	ErrHistoryUnavailable = errors.New("generation history is not available")
)

// Recorder stores generation metadata.
type Recorder interface {
	Create(ctx context.Context, rec *model.GenerationRecord) error
	ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error)
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	newSource crypto.SourceFactory
	entropy   string
	recorder  Recorder
}

// NewGeneratorService creates a GeneratorService drawing from the named
// entropy source. recorder may be nil, in which case nothing is recorded.
func NewGeneratorService(entropy string, recorder Recorder) (*GeneratorService, error) {
	factory, err := crypto.NewSource(entropy)
	if err != nil {
		return nil, err
	}
	entropy = strings.ToLower(strings.TrimSpace(entropy))
	if entropy == "" {
		entropy = crypto.EntropyLCG
	}

	return &GeneratorService{
		newSource: factory,
		entropy:   entropy,
		recorder:  recorder,
	}, nil
}

// Entropy returns the configured entropy source name.
func (s *GeneratorService) Entropy() string {
	return s.entropy
}

// Generate produces a password and its strength rating.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	length := req.Length
	if length == 0 {
		length = defaultLength
	}
	if length < crypto.MinLength {
		return model.GenerateResponse{}, ErrLengthTooShort
	}
	if length > crypto.MaxLength {
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	opts := crypto.PasswordOptions{
		Uppercase: boolOrDefault(req.Uppercase, true),
		Lowercase: boolOrDefault(req.Lowercase, true),
		Numbers:   boolOrDefault(req.Numbers, true),
		Symbols:   boolOrDefault(req.Symbols, true),
	}

	password, err := crypto.GenerateFrom(s.newSource(), length, opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	strength := crypto.CalculateStrength(password)

	if s.recorder != nil {
		rec := &model.GenerationRecord{
			Length:    length,
			Uppercase: opts.Uppercase,
			Lowercase: opts.Lowercase,
			Numbers:   opts.Numbers,
			Symbols:   opts.Symbols,
			Strength:  string(strength),
			Entropy:   s.entropy,
		}
		if err := s.recorder.Create(ctx, rec); err != nil {
			slog.Warn("recording generation failed", "error", err)
		}
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: string(strength),
	}, nil
}

// Strength rates an existing password.
func (s *GeneratorService) Strength(req model.StrengthRequest) model.StrengthResponse {
	return model.StrengthResponse{
		Strength: string(crypto.CalculateStrength(req.Password)),
		Length:   utf8.RuneCountInString(req.Password),
		Variety:  crypto.Variety(req.Password),
	}
}

// History returns recent generation records. limit is clamped to
// [1, 100]; zero or negative selects the default of 20.
func (s *GeneratorService) History(ctx context.Context, limit int) (model.HistoryResponse, error) {
	if s.recorder == nil {
		return model.HistoryResponse{}, ErrHistoryUnavailable
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	records, err := s.recorder.ListRecent(ctx, limit)
	if err != nil {
		return model.HistoryResponse{}, err
	}
	if records == nil {
		records = []model.GenerationRecord{}
	}

	return model.HistoryResponse{Records: records}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
