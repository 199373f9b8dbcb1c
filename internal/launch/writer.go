// Package launch builds cortex-debug launch configurations and merges them
// into a workspace's launch.json.
package launch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultDir  = ".vscode"
	DefaultFile = "launch.json"
)

var ErrNoWorkspace = errors.New("no workspace folder is open")

// Notifier receives the user-visible outcome of a write.
type Notifier interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Writer merges entries into one workspace's launch document.
type Writer struct {
	// Workspace is the project root. Empty means no workspace is open.
	Workspace string
	Dir       string
	File      string
	Template  Template

	notifier Notifier
	log      zerolog.Logger
}

// NewWriter returns a Writer for the default .vscode/launch.json location.
func NewWriter(workspace string, notifier Notifier, log zerolog.Logger) *Writer {
	return &Writer{
		Workspace: workspace,
		Dir:       DefaultDir,
		File:      DefaultFile,
		Template:  DefaultTemplate,
		notifier:  notifier,
		log:       log.With().Str("component", "launch").Logger(),
	}
}

func (w *Writer) dir() string {
	if w.Dir == "" {
		return DefaultDir
	}
	return w.Dir
}

func (w *Writer) file() string {
	if w.File == "" {
		return DefaultFile
	}
	return w.File
}

// Path returns the location of the launch document.
func (w *Writer) Path() (string, error) {
	if w.Workspace == "" {
		return "", ErrNoWorkspace
	}
	return filepath.Join(w.Workspace, w.dir(), w.file()), nil
}

// Load reads the current document. A missing file yields an empty document.
func (w *Writer) Load() (*Document, error) {
	path, err := w.Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		w.log.Debug().Str("path", path).Msg("no launch document yet")
		return NewDocument(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return doc, nil
}

// Write builds an entry from in, puts it first in the launch document and
// saves the document. Entries are never deduplicated. An unreadable or
// corrupt document is replaced by an empty one after a warning.
func (w *Writer) Write(in Input) (*Document, error) {
	if w.Workspace == "" {
		w.notifier.Error("No workspace folder is open")
		return nil, ErrNoWorkspace
	}

	entry := w.Template.Build(in)

	dir := filepath.Join(w.Workspace, w.dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.notifier.Error(fmt.Sprintf("Failed to create %s: %v", dir, err))
		return nil, errors.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, w.file())

	doc, err := w.Load()
	if err != nil {
		w.log.Warn().Err(err).Str("path", path).Msg("discarding launch document")
		w.notifier.Warning(fmt.Sprintf("Could not read existing %s, starting a new one: %v", w.file(), err))
		doc = NewDocument()
	}

	if err = doc.Prepend(entry); err != nil {
		w.notifier.Error(fmt.Sprintf("Failed to save launch configuration: %v", err))
		return nil, err
	}

	data, err := doc.Encode()
	if err != nil {
		w.notifier.Error(fmt.Sprintf("Failed to save launch configuration: %v", err))
		return nil, err
	}

	if err = writeFile(path, data, 0o644); err != nil {
		w.notifier.Error(fmt.Sprintf("Failed to write %s: %v", path, err))
		return nil, errors.Wrapf(err, "write %s", path)
	}

	w.log.Debug().
		Str("path", path).
		Str("device", in.DeviceName).
		Int("configurations", len(doc.Configurations)).
		Msg("launch document written")
	w.notifier.Info(fmt.Sprintf("Launch configuration %q saved to %s", entry.Name, path))

	return doc, nil
}
