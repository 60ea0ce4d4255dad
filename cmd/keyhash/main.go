// Command keyhash reads an API key from stdin and prints the Argon2id hash
// to put in API_KEY_HASH.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
)

var errEmptyKey = errors.New("api key must not be empty")

func main() {
	config.SetupLogger(slog.LevelInfo)

	if err := run(os.Stdin, os.Stdout); err != nil {
		slog.Error("hashing api key failed", "error", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading key: %w", err)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		return errEmptyKey
	}

	hash, err := crypto.HashAPIKey(key)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, hash)
	return err
}
