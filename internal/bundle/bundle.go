// Package bundle packs generated token files into a single .tar.xz archive
// for shipping into a theme, and unpacks such archives.
package bundle

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/oltre/internal/security"
)

// Extension is the conventional suffix for bundles.
const Extension = ".tar.xz"

const (
	fileMode = 0o644

	// MaxFileSize bounds any single file read back from a bundle.
	MaxFileSize = 32 << 20

	// root anchors entry names for traversal checks.
	root = "/bundle"
)

// Write archives files as tar.xz. Entries are sorted by name and stamped with
// modTime so the same input always yields the same bytes.
func Write(w io.Writer, files map[string][]byte, modTime time.Time) error {
	names := make([]string, 0, len(files))
	for name := range files {
		if err := security.ValidateFilePath(name, root); err != nil {
			return fmt.Errorf("invalid bundle entry: %w", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}

	tw := tar.NewWriter(xzw)
	for _, name := range names {
		data := files[name]
		hdr := &tar.Header{
			Name:    name,
			Mode:    fileMode,
			Size:    int64(len(data)),
			ModTime: modTime.UTC().Truncate(time.Second),
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to close tar writer: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to close xz writer: %w", err)
	}
	return nil
}

// Bytes is Write into memory.
func Bytes(files map[string][]byte, modTime time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, files, modTime); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read unpacks a tar.xz bundle. Only regular files are returned; entries that
// would escape the extraction root are rejected.
func Read(r io.Reader) (map[string][]byte, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	tr := tar.NewReader(xzr)
	files := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}

		if err := security.ValidateFilePath(hdr.Name, root); err != nil {
			return nil, fmt.Errorf("unsafe bundle entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if hdr.Size > MaxFileSize {
			return nil, fmt.Errorf("bundle entry %s is too large (%d bytes)", hdr.Name, hdr.Size)
		}

		data, err := io.ReadAll(security.NewLimitedReader(tr, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		files[hdr.Name] = data
	}
	return files, nil
}
