// Package prompt collects generator settings over a line-oriented terminal
// session. Invalid answers are rejected and asked again without limit; only
// a closed input or a failed write ends a collection early.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaultpass/passgen/internal/crypto"
)

var ErrInputClosed = errors.New("input closed before a valid answer was given")

// Collector reads answers from an input stream and writes prompts to an
// output stream.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewCollector creates a Collector over r and w.
func NewCollector(r io.Reader, w io.Writer) *Collector {
	return &Collector{
		in:  bufio.NewReader(r),
		out: w,
	}
}

// CollectLength asks for a password length until a value in
// [crypto.MinLength, crypto.MaxLength] is entered.
func (c *Collector) CollectLength() (int, error) {
	for {
		if err := c.printf("Enter password length (%d-%d): ", crypto.MinLength, crypto.MaxLength); err != nil {
			return 0, err
		}

		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		if n, ok := parseLength(line); ok {
			return n, nil
		}

		if err := c.printf("❌ Please enter a number between %d and %d\n", crypto.MinLength, crypto.MaxLength); err != nil {
			return 0, err
		}
	}
}

// CollectYesNo asks question until the answer is y, yes, n or no in any case.
func (c *Collector) CollectYesNo(question string) (bool, error) {
	for {
		if err := c.printf("%s ", question); err != nil {
			return false, err
		}

		line, err := c.readLine()
		if err != nil {
			return false, err
		}

		if answer, ok := parseYesNo(line); ok {
			return answer, nil
		}

		if err := c.printf("❌ Please enter 'y' or 'n'\n"); err != nil {
			return false, err
		}
	}
}

// CollectOptions asks for each character class in alphabet order.
func (c *Collector) CollectOptions() (crypto.PasswordOptions, error) {
	var opts crypto.PasswordOptions

	if err := c.printf("\nSelect character types (y/n):\n"); err != nil {
		return opts, err
	}

	questions := []struct {
		text string
		dst  *bool
	}{
		{"Include uppercase letters (A-Z)?", &opts.Uppercase},
		{"Include lowercase letters (a-z)?", &opts.Lowercase},
		{"Include numbers (0-9)?", &opts.Numbers},
		{"Include symbols (!@#$%^&*)?", &opts.Symbols},
	}

	for _, q := range questions {
		answer, err := c.CollectYesNo(q.text)
		if err != nil {
			return crypto.PasswordOptions{}, err
		}
		*q.dst = answer
	}

	return opts, nil
}

// readLine returns the next line without its terminator. A final line with no
// newline is still returned; ErrInputClosed is returned once nothing is left.
func (c *Collector) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

func (c *Collector) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}
	return nil
}

// parseLength accepts an unsigned decimal, optionally prefixed with '+',
// within the allowed range.
func parseLength(s string) (int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if n < crypto.MinLength || n > crypto.MaxLength {
		return 0, false
	}
	return int(n), true
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
