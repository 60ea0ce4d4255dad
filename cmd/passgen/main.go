package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/prompt"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━"

var strengthBadges = map[crypto.Strength]string{
	crypto.StrengthVeryStrong: "💪",
	crypto.StrengthStrong:     "🔒",
	crypto.StrengthMedium:     "⚠️ ",
	crypto.StrengthWeak:       "❌",
}

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadCLI(slog.LevelWarn)
	if err != nil {
		config.SetupLogger(slog.LevelWarn)
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	config.SetupLogger(cfg.LogLevel)

	newSource, err := crypto.NewSource(cfg.Entropy)
	if err != nil {
		slog.Error("invalid entropy source", "entropy", cfg.Entropy, "error", err)
		os.Exit(1)
	}
	if cfg.Entropy == crypto.EntropyLCG {
		slog.Debug("using clock-seeded LCG; output is predictable and not fit for real secrets")
	}

	if err := run(os.Stdin, os.Stdout, newSource); err != nil {
		slog.Error("password generation aborted", "error", err)
		os.Exit(1)
	}
}

// run performs one prompt, generate, display cycle.
func run(in io.Reader, out io.Writer, newSource crypto.SourceFactory) error {
	if _, err := fmt.Fprint(out, "🔐 Password Generator\n\n"); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	collector := prompt.NewCollector(in, out)

	length, err := collector.CollectLength()
	if err != nil {
		return err
	}
	opts, err := collector.CollectOptions()
	if err != nil {
		return err
	}

	password, err := crypto.GenerateFrom(newSource(), length, opts)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}
	strength := crypto.CalculateStrength(password)

	var sb strings.Builder
	fmt.Fprintln(&sb, "\n✨ Your generated password:")
	fmt.Fprintln(&sb, separator)
	fmt.Fprintln(&sb, password)
	fmt.Fprintln(&sb, separator)
	fmt.Fprintf(&sb, "\n📊 Password strength: %s %s\n", strengthBadges[strength], strength)

	if _, err := io.WriteString(out, sb.String()); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
