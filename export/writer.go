package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"

	"github.com/tsawler/hueloc/model"
)

// FormatVersion is the current container schema version.
const FormatVersion = "v0"

// ErrDestinationExists indicates the destination file already holds a
// prior export. The write is skipped; nothing is merged or overwritten.
var ErrDestinationExists = errors.New("export destination already exists")

// Container is the on-disk envelope around exported entity records.
type Container struct {
	Version string                   `json:"version"`
	RunID   string                   `json:"run_id"`
	Data    []model.EntityUploadInfo `json:"data"`
}

// Config controls serialization.
type Config struct {
	// Version is the schema tag embedded in the container.
	Version string

	// PrettyPrint indents the JSON output.
	PrettyPrint bool
}

// DefaultConfig returns the current format version with compact output.
func DefaultConfig() Config {
	return Config{Version: FormatVersion}
}

// Writer serializes entity upload records to versioned container files.
type Writer struct {
	config Config
}

// NewWriter creates a writer with default configuration.
func NewWriter() *Writer {
	return &Writer{config: DefaultConfig()}
}

// NewWriterWithConfig creates a writer with custom configuration.
func NewWriterWithConfig(config Config) *Writer {
	return &Writer{config: config}
}

// Write serializes the records to dest inside a versioned container. If
// dest already exists the write is refused and the error wraps
// [ErrDestinationExists]; the prior file's bytes are left untouched. The
// exclusive create makes the existence check race-free across workers.
func (w *Writer) Write(infos []model.EntityUploadInfo, dest string) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", dest, ErrDestinationExists)
		}
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	container := Container{
		Version: w.config.Version,
		RunID:   uuid.NewString(),
		Data:    infos,
	}

	encoder := json.NewEncoder(f)
	if w.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(container); err != nil {
		return fmt.Errorf("encoding export container: %w", err)
	}

	return nil
}

// Read loads a container back from disk, verifying its version tag against
// the writer's configured version.
func (w *Writer) Read(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	var container Container
	if err := json.NewDecoder(f).Decode(&container); err != nil {
		return nil, fmt.Errorf("decoding export container: %w", err)
	}
	if container.Version != w.config.Version {
		return nil, fmt.Errorf("export container %s has version %q, expected %q",
			path, container.Version, w.config.Version)
	}

	return &container, nil
}
