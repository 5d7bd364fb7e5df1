package config

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/vocal-dev/vocal/internal/fsutil"
	"github.com/vocal-dev/vocal/internal/xdg"
	"github.com/vocal-dev/vocal/pkg/config"
)

// ErrConfigExists is returned when writing over an existing file without force.
var ErrConfigExists = errors.New("configuration file already exists")

const fileHeader = "# vocal configuration. See `vocal debug schema` for all keys.\n\n"

// Writer handles writing configuration to TOML files.
type Writer struct {
	paths xdg.PathResolver
}

// NewWriter creates a new Writer using the real XDG paths.
func NewWriter() *Writer {
	return &Writer{paths: xdg.DefaultResolver()}
}

// NewWriterWithHome creates a new Writer rooted at homeDir (for testing).
func NewWriterWithHome(homeDir string) *Writer {
	return &Writer{paths: xdg.ResolverFor(homeDir)}
}

// GlobalConfigPath returns the path to the global configuration file.
func (w *Writer) GlobalConfigPath() string {
	return w.paths.GlobalConfigFile()
}

// WriteGlobal writes cfg to the global config file.
func (w *Writer) WriteGlobal(cfg *config.Config, force bool) error {
	return w.WriteFile(w.GlobalConfigPath(), cfg, force)
}

// WriteFile writes cfg to path as TOML. An existing file is only replaced
// when force is set; the previous content is kept as a backup.
func (*Writer) WriteFile(path string, cfg *config.Config, force bool) error {
	if cfg == nil {
		return errors.Wrap(ErrInvalidConfig, "config is nil")
	}

	exists := fileExists(path)
	if exists && !force {
		return errors.Wrapf(ErrConfigExists, "%s", path)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := fsutil.AtomicWriteFile(path, data, exists); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// Marshal renders cfg as TOML with a short header.
func Marshal(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fileHeader)

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode config to TOML")
	}

	return buf.Bytes(), nil
}
