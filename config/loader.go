package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
)

// ConfigProcessor can modify a Document after it has been parsed.
// Returning an error rejects the document.
type ConfigProcessor func(*Document) error

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path      string
	processor ConfigProcessor
}

// WithPath reads the descriptor from path instead of the home-directory default.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithProcessor runs processor on every successfully parsed document.
func WithProcessor(processor ConfigProcessor) LoadOption {
	return func(o *loadOptions) {
		o.processor = processor
	}
}

// Result is the outcome of a single Load: either a Document or the reason it
// could not be produced. Callers choose how to unwrap it.
type Result struct {
	Document Document
	Path     string
	Err      error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Unwrap returns the loaded document and the load error, if any.
// On error the document is DefaultDocument().
func (r Result) Unwrap() (Document, error) {
	if r.Err != nil {
		return DefaultDocument(), r.Err
	}
	return r.Document, nil
}

// OrDefault returns the loaded document, or DefaultDocument() after logging
// the failure on logger. A nil logger discards the diagnostic.
func (r Result) OrDefault(logger *slog.Logger) Document {
	if r.Err == nil {
		return r.Document
	}
	if logger == nil {
		logger = discardLogger()
	}
	logger.Warn("mcp config unavailable, using defaults",
		"path", r.Path,
		"reason", string(ReasonOf(r.Err)),
		"error", r.Err,
	)
	return DefaultDocument()
}

// Load reads and parses the descriptor file through src. It never panics and
// reports every failure in the returned Result.
func Load(src Source, opts ...LoadOption) Result {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		home, ok := HomeDir(src)
		if !ok {
			return Result{
				Document: DefaultDocument(),
				Err: newLoadError(ReasonHomeUnset, "",
					fmt.Errorf("neither %s nor %s is set", EnvHome, EnvUserProfile)),
			}
		}
		path = DefaultPath(home)
	}

	data, err := src.ReadFile(path)
	if err != nil {
		reason := ReasonUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = ReasonNotFound
		}
		return Result{Document: DefaultDocument(), Path: path, Err: newLoadError(reason, path, err)}
	}

	doc, err := parse(data)
	if err != nil {
		return Result{Document: DefaultDocument(), Path: path, Err: newLoadError(ReasonMalformed, path, err)}
	}

	if o.processor != nil {
		if err := o.processor(&doc); err != nil {
			return Result{
				Document: DefaultDocument(),
				Path:     path,
				Err:      newLoadError(ReasonRejected, path, fmt.Errorf("error in config processor: %w", err)),
			}
		}
	}

	return Result{Document: doc, Path: path}
}

// LoadConfig loads the descriptor through src and falls back to
// DefaultDocument() on any failure, logging the cause.
func LoadConfig(src Source, logger *slog.Logger, opts ...LoadOption) Document {
	return Load(src, opts...).OrDefault(logger)
}

// LoadFromJSON parses descriptor JSON.
// The optional processor callback can be used to customize the loaded document.
func LoadFromJSON(data []byte, processor ConfigProcessor) (Document, error) {
	doc, err := parse(data)
	if err != nil {
		return Document{}, newLoadError(ReasonMalformed, "", err)
	}
	if processor != nil {
		if err := processor(&doc); err != nil {
			return Document{}, newLoadError(ReasonRejected, "", fmt.Errorf("error in config processor: %w", err))
		}
	}
	return doc, nil
}

func parse(data []byte) (Document, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return Document{}, fmt.Errorf("failed to parse config: %w", err)
	}
	root, ok := v.(map[string]interface{})
	if !ok {
		return Document{}, fmt.Errorf("failed to parse config: expected a JSON object, got %T", v)
	}

	doc, err := documentFromMap(root)
	if err != nil {
		return Document{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return doc, nil
}
