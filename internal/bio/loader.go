package bio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/litescript/ls-stellations/internal/logging"
)

// IndexFile is the optional manifest at the root of a data directory.
const IndexFile = "index.json"

// Index lists categories and, optionally, the files within each. A
// category with no files is scanned.
type Index struct {
	Categories []IndexCategory `json:"categories"`
}

// IndexCategory is one category folder in an Index.
type IndexCategory struct {
	Name  string   `json:"name"`
	Files []string `json:"files,omitempty"`
}

// SkippedFile records a file that was not loaded.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadResult contains the result of a load operation.
type LoadResult struct {
	Data     *Dataset
	Skipped  []SkippedFile
	LoadedAt time.Time
	Duration time.Duration
	Error    error
}

// Loader reads bio records from a directory tree laid out as
// <root>/<Category>/<id>.{json,yaml,yml}.
type Loader struct {
	fsys   fs.FS
	source string
	logger *logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for skipped-file warnings.
func WithLogger(l *logging.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	return NewFSLoader(os.DirFS(dir), dir, opts...)
}

// NewFSLoader creates a loader over any fs.FS. source is only used for
// display and logging.
func NewFSLoader(fsys fs.FS, source string, opts ...LoaderOption) *Loader {
	l := &Loader{
		fsys:   fsys,
		source: source,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the configured data location.
func (l *Loader) Source() string {
	return l.source
}

// Load reads every bio record. Invalid or unreadable files are skipped and
// reported in LoadResult.Skipped; the load only fails when the tree cannot
// be read, the context is cancelled, or nothing usable was found.
func (l *Loader) Load(ctx context.Context) LoadResult {
	start := time.Now()
	result := LoadResult{LoadedAt: start}

	files, err := l.plan()
	if err != nil {
		result.Duration = time.Since(start)
		result.Error = err
		return result
	}

	data := &Dataset{Source: l.source, LoadedAt: start}
	seen := make(map[string]string)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			result.Error = fmt.Errorf("load bios: %w", err)
			return result
		}

		subject, err := l.loadFile(f)
		if err == nil {
			if prev, dup := seen[subject.ID]; dup {
				err = fmt.Errorf("duplicate subject %q (first in %s)", subject.ID, prev)
			}
		}
		if err != nil {
			l.logger.Warn("Skipping %s: %v", f.path, err)
			result.Skipped = append(result.Skipped, SkippedFile{Path: f.path, Err: err})
			continue
		}

		seen[subject.ID] = f.path
		data.Subjects = append(data.Subjects, subject)
	}

	result.Duration = time.Since(start)
	if len(data.Subjects) == 0 {
		result.Error = ErrNoSubjects
		return result
	}
	result.Data = data
	return result
}

type plannedFile struct {
	path     string
	category string
	format   Format
}

// plan lists the files to load, honouring the index when present.
func (l *Loader) plan() ([]plannedFile, error) {
	idx, err := l.readIndex()
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return l.scan()
	}

	var files []plannedFile
	for _, cat := range idx.Categories {
		if len(cat.Files) == 0 {
			scanned, err := l.scanCategory(cat.Name)
			if err != nil {
				return nil, err
			}
			files = append(files, scanned...)
			continue
		}
		for _, name := range cat.Files {
			p := path.Join(cat.Name, name)
			format, ok := FormatForPath(p)
			if !ok {
				format = FormatJSON
			}
			files = append(files, plannedFile{path: p, category: cat.Name, format: format})
		}
	}
	return files, nil
}

func (l *Loader) readIndex() (*Index, error) {
	data, err := fs.ReadFile(l.fsys, IndexFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", IndexFile, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", IndexFile, err)
	}
	return &idx, nil
}

// scan walks the root: each directory is a category and loose files go to
// DefaultCategory.
func (l *Loader) scan() ([]plannedFile, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var files []plannedFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if format, ok := FormatForPath(e.Name()); ok && e.Name() != IndexFile {
			files = append(files, plannedFile{path: e.Name(), category: DefaultCategory, format: format})
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		scanned, err := l.scanCategory(e.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, scanned...)
	}
	return files, nil
}

func (l *Loader) scanCategory(category string) ([]plannedFile, error) {
	entries, err := fs.ReadDir(l.fsys, category)
	if err != nil {
		return nil, fmt.Errorf("read category %s: %w", category, err)
	}

	var files []plannedFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, ok := FormatForPath(e.Name())
		if !ok {
			continue
		}
		files = append(files, plannedFile{
			path:     path.Join(category, e.Name()),
			category: category,
			format:   format,
		})
	}
	return files, nil
}

func (l *Loader) loadFile(f plannedFile) (Subject, error) {
	data, err := fs.ReadFile(l.fsys, f.path)
	if err != nil {
		return Subject{}, fmt.Errorf("read: %w", err)
	}
	return Parse(data, f.format, f.category)
}
