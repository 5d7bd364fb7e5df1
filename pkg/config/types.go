package config

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/invopop/jsonschema"
)

var (
	// ErrNegativeDuration is returned when a negative duration is provided.
	ErrNegativeDuration = errors.New("duration must be non-negative")

	// ErrInvalidByteSize is returned when a size cannot be parsed.
	ErrInvalidByteSize = errors.New("invalid byte size")
)

// Duration wraps time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid duration")
	}

	if dur < 0 {
		return errors.Wrapf(ErrNegativeDuration, "got %s", dur)
	}

	*d = Duration(dur)

	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// ToDuration converts Duration to time.Duration.
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}

// JSONSchema returns the JSON Schema for the Duration type.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
		Description: "Go duration string",
		Examples:    []any{"5s", "1m30s"},
	}
}

// ByteSize is a size in bytes, written in config files as a humanized
// string such as "5MB" or "512KiB".
type ByteSize uint64

// ParseByteSize parses a humanized size.
func ParseByteSize(s string) (ByteSize, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.CombineErrors(errors.Wrapf(ErrInvalidByteSize, "%q", s), err)
	}

	return ByteSize(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}

	*b = n

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String returns the humanized size, e.g. "5.0 MB".
func (b ByteSize) String() string {
	return humanize.Bytes(uint64(b))
}

// JSONSchema returns the JSON Schema for the ByteSize type.
func (ByteSize) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer", Minimum: json.Number("0")},
			{Type: "string", Pattern: `^[0-9.]+ ?[A-Za-z]*$`},
		},
		Description: "Size in bytes or a humanized size",
		Examples:    []any{"5MB", 1048576},
	}
}
