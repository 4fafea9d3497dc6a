// Package archive builds tile archives from in-memory entries and reads them back.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/mholt/archives"

	"github.com/glorpus-work/tilegrab/pkg/errutils"
	"github.com/glorpus-work/tilegrab/pkg/fsutil"
)

// Format selects the archive container.
type Format string

// Supported formats.
const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

// ParseFormat validates a format name; the empty string selects zip.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatZip:
		return FormatZip, nil
	case FormatTarGz, "tgz":
		return FormatTarGz, nil
	}
	return "", errutils.ErrInvalidArchiveFormatWithDetails(s)
}

// Extension is the file name suffix for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) archiver() (archives.Archiver, error) {
	switch f {
	case FormatZip, "":
		return archives.Zip{}, nil
	case FormatTarGz:
		return archives.CompressedArchive{
			Compression: archives.Gz{},
			Archival:    archives.Tar{},
		}, nil
	}
	return nil, errutils.ErrInvalidArchiveFormatWithDetails(string(f))
}

// Entry is one archive member. Directory entries carry no data.
type Entry struct {
	Name string
	Data []byte
	Dir  bool
}

// Manager handles archive creation and inspection.
type Manager struct {
	now func() time.Time
}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Write serializes entries, in order, into w using format.
func (am *Manager) Write(ctx context.Context, w io.Writer, entries []Entry, format Format) error {
	archiver, err := format.archiver()
	if err != nil {
		return err
	}

	modTime := am.now()
	files := make([]archives.FileInfo, 0, len(entries))
	for _, e := range entries {
		info := memInfo{name: path.Base(e.Name), size: int64(len(e.Data)), dir: e.Dir, modTime: modTime}
		data := e.Data
		files = append(files, archives.FileInfo{
			FileInfo:      info,
			NameInArchive: e.Name,
			Open: func() (fs.File, error) {
				return &memFile{Reader: bytes.NewReader(data), info: info}, nil
			},
		})
	}

	if err := archiver.Archive(ctx, w, files); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}

// Bytes is Write into a fresh buffer.
func (am *Manager) Bytes(ctx context.Context, entries []Entry, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := am.Write(ctx, &buf, entries, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// List returns the sorted paths of all files and folders in the archive at archivePath.
// Folders end with a slash.
func (am *Manager) List(ctx context.Context, archivePath string) ([]string, error) {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var names []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			p += "/"
		}
		names = append(names, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk archive %s: %w", archivePath, err)
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the content of one file inside the archive at archivePath.
func (am *Manager) ReadFile(ctx context.Context, archivePath, name string) ([]byte, error) {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from archive: %w", name, err)
	}
	return data, nil
}

func openArchive(ctx context.Context, archivePath string) (fs.FS, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	return fsys, nil
}

// memInfo is the fs.FileInfo of an in-memory entry.
type memInfo struct {
	name    string
	size    int64
	dir     bool
	modTime time.Time
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) ModTime() time.Time { return i.modTime }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }

func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | fsutil.DirModeDefault
	}
	return fsutil.FileModeDefault
}

type memFile struct {
	*bytes.Reader
	info memInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }
