package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"

	"movienight/internal/catalog"
	"movienight/internal/logging"
	"movienight/internal/services"
)

//go:embed today.schema.json
var payloadSchema string

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// Writer persists payloads as indented UTF-8 JSON.
type Writer struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewWriter returns a Writer targeting path on fs.
func NewWriter(fs afero.Fs, path string, logger *slog.Logger) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{
		fs:     fs,
		path:   path,
		logger: logging.NewComponentLogger(logger, "output"),
	}
}

// Path returns the artifact location.
func (w *Writer) Path() string {
	return w.path
}

// Write encodes and validates payload, then replaces the artifact atomically.
func (w *Writer) Write(payload catalog.Payload) error {
	data, err := Encode(payload)
	if err != nil {
		return services.Wrap(services.ErrOutput, "output", "encode", "", err)
	}
	if err := ValidateDocument(data); err != nil {
		return services.Wrap(services.ErrOutput, "output", "validate", w.path, err)
	}

	if dir := filepath.Dir(w.path); dir != "" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrOutput, "output", "create directory", dir, err)
		}
	}

	tmpPath := w.path + ".tmp"
	if err := afero.WriteFile(w.fs, tmpPath, data, 0o644); err != nil {
		return services.Wrap(services.ErrOutput, "output", "write", tmpPath, err)
	}
	if err := w.fs.Rename(tmpPath, w.path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return services.Wrap(services.ErrOutput, "output", "rename", w.path, err)
	}

	w.logger.Info("artifact written",
		logging.String("path", w.path),
		logging.Int("items", len(payload.Items)),
		logging.Int("bytes", len(data)),
	)
	return nil
}

// Encode renders payload with two-space indentation and without HTML or
// non-ASCII escaping.
func Encode(payload catalog.Payload) ([]byte, error) {
	for i := range payload.Items {
		payload.Items[i].Normalize()
	}
	if payload.RowTitles == nil {
		payload.RowTitles = []string{}
	}
	if payload.Items == nil {
		payload.Items = []catalog.Item{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidateDocument checks an encoded payload against the artifact schema.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, field+": "+desc.Description())
	}
	return errors.New("schema violations: " + strings.Join(problems, "; "))
}

// Read loads an artifact from fs.
func Read(fs afero.Fs, path string) (*catalog.Payload, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var payload catalog.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return &payload, nil
}
