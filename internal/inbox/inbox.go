// Package inbox implements the directories record sources are picked up from, and the trash
// directory they are moved to once applied.
package inbox

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/leighmacdonald/team-tracker/internal/record"
)

const defaultExt = ".csv"

var (
	errInboxDir      = errors.New("inbox dir error")
	errConsume       = errors.New("failed to move consumed source")
	errForeignSource = errors.New("source does not belong to this inbox")
	errListSources   = errors.New("failed to list sources")
)

// Variant selects which inbox directory a source lives in.
type Variant int

const (
	Players Variant = iota
	Coaches
	Matches
)

func (v Variant) String() string {
	switch v {
	case Players:
		return "players"
	case Coaches:
		return "coaches"
	case Matches:
		return "matches"
	default:
		return "unknown"
	}
}

// File is a source backed by a file on disk.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string {
	return filepath.Base(f.path)
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// Filesystem implements source lookup and consumption over plain directories.
type Filesystem struct {
	dirs     map[Variant]string
	trashDir string
}

// New creates any missing directories.
func New(playersDir string, coachesDir string, matchesDir string, trashDir string) (Filesystem, error) {
	dirs := map[Variant]string{
		Players: playersDir,
		Coaches: coachesDir,
		Matches: matchesDir,
	}

	for _, dir := range append([]string{trashDir}, playersDir, coachesDir, matchesDir) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			slog.Error("Failed to make inbox dir", slog.String("error", err.Error()),
				slog.String("path", dir))

			return Filesystem{}, errors.Join(err, errInboxDir)
		}
	}

	return Filesystem{dirs: dirs, trashDir: trashDir}, nil
}

func (fs Filesystem) Dir(variant Variant) string {
	return fs.dirs[variant]
}

func (fs Filesystem) TrashDir() string {
	return fs.trashDir
}

// Source returns the named file within the variant's directory. A name without an extension
// gets ".csv" appended.
func (fs Filesystem) Source(variant Variant, name string) *File {
	if filepath.Ext(name) == "" {
		name += defaultExt
	}

	return NewFile(filepath.Join(fs.dirs[variant], filepath.Base(name)))
}

// Pending lists the match sheets waiting in the variant's directory, sorted by name.
func (fs Filesystem) Pending(variant Variant) ([]*File, error) {
	dirEntries, err := os.ReadDir(fs.dirs[variant])
	if err != nil {
		return nil, errors.Join(err, errListSources)
	}

	var files []*File
	for _, entry := range dirEntries {
		if entry.IsDir() || !record.IsSheet(entry.Name()) {
			continue
		}
		files = append(files, NewFile(filepath.Join(fs.dirs[variant], entry.Name())))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	return files, nil
}

// MarkConsumed moves an applied source into the trash directory so it is not processed again.
// An existing file of the same name in the trash is kept; the new one gets a timestamp suffix.
func (fs Filesystem) MarkConsumed(src record.Source) error {
	file, ok := src.(*File)
	if !ok {
		return fmt.Errorf("%w: %s", errForeignSource, src.Name())
	}

	destination := filepath.Join(fs.trashDir, file.Name())
	if _, errStat := os.Stat(destination); errStat == nil {
		ext := filepath.Ext(file.Name())
		destination = filepath.Join(fs.trashDir,
			strings.TrimSuffix(file.Name(), ext)+"-"+strconv.FormatInt(time.Now().UnixNano(), 10)+ext)
	}

	if err := os.Rename(file.path, destination); err != nil {
		return errors.Join(err, errConsume)
	}

	slog.Debug("Source consumed", slog.String("source", file.path), slog.String("trash", destination))

	return nil
}
