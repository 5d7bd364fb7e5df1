package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// FallbackUI reads answers line by line. It is used when stdin is not a
// terminal (CI, piped input, testscript).
type FallbackUI struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewFallbackUI creates a FallbackUI reading from r and prompting on w.
func NewFallbackUI(r io.Reader, w io.Writer) *FallbackUI {
	return &FallbackUI{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// IsInteractive returns false.
func (*FallbackUI) IsInteractive() bool {
	return false
}

// Confirm prompts "title [Y/n]: ". Empty input or EOF picks the default.
func (f *FallbackUI) Confirm(title, description string, defaultValue bool) (bool, error) {
	hint := "[y/N]"
	if defaultValue {
		hint = "[Y/n]"
	}

	if description != "" {
		fmt.Fprintln(f.writer, description) //nolint:errcheck // prompt output
	}

	fmt.Fprintf(f.writer, "%s %s: ", title, hint) //nolint:errcheck // prompt output

	line, err := f.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidChoice, "%q", line)
	}
}

// Select lists the options numbered from 1 and reads a number or a value.
// Empty input picks defaultValue.
func (f *FallbackUI) Select(title string, options []Option, defaultValue string) (string, error) {
	fmt.Fprintln(f.writer, title) //nolint:errcheck // prompt output

	for i, opt := range options {
		marker := " "
		if opt.Value == defaultValue {
			marker = "*"
		}

		fmt.Fprintf(f.writer, "%s %d) %s\n", marker, i+1, opt.Label) //nolint:errcheck // prompt output
	}

	fmt.Fprint(f.writer, "Choice: ") //nolint:errcheck // prompt output

	line, err := f.readLine()
	if err != nil {
		return "", err
	}

	if line == "" {
		return defaultValue, nil
	}

	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(options) {
		return options[n-1].Value, nil
	}

	for _, opt := range options {
		if opt.Value == line {
			return opt.Value, nil
		}
	}

	return "", errors.Wrapf(ErrInvalidChoice, "%q", line)
}

func (f *FallbackUI) readLine() (string, error) {
	line, err := f.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "reading answer")
	}

	return strings.TrimSpace(line), nil
}
