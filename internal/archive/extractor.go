// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package archive extracts single entries out of release archives.
package archive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Define a maximum size for a single decompressed entry
var maxEntrySize int64 = 500 << 20 // 500 MB

var (
	ErrUnsupportedArchive = errors.New("unsupported archive type")
	ErrEntryNotFound      = errors.New("entry not found in archive")
	ErrEntryTooLarge      = errors.New("entry exceeds the maximum size")
)

// Extractor pulls a single named entry out of an archive.
type Extractor interface {
	// Extension is the file suffix this extractor handles, including the leading dot.
	Extension() string
	// Extract writes the entry to destDir, named newName if set. It returns the written path.
	Extract(archivePath, entryName, destDir, newName string) (string, error)
}

// registry is matched in order, so longer suffixes which share an ending must come first.
var registry = []Extractor{
	zipExtractor{},
	tarGzExtractor{},
	tarXzExtractor{},
}

// ForExtension returns the extractor registered for ext (".zip", ".tar.gz", ...).
func ForExtension(ext string) (Extractor, error) {
	for _, e := range registry {
		if e.Extension() == ext {
			return e, nil
		}
	}
	return nil, errors.Wrap(ErrUnsupportedArchive, ext)
}

// ForFile selects the extractor whose extension is a suffix of the file name.
func ForFile(archivePath string) (Extractor, error) {
	name := filepath.Base(archivePath)
	for _, e := range registry {
		if strings.HasSuffix(name, e.Extension()) {
			return e, nil
		}
	}
	return nil, errors.Wrap(ErrUnsupportedArchive, name)
}

// Extensions lists all supported archive suffixes.
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for _, e := range registry {
		exts = append(exts, e.Extension())
	}
	return exts
}

func prepareDestination(destDir, entryName, newName string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", errors.Wrap(err, "could not create destination directory")
	}
	if newName == "" {
		newName = filepath.Base(entryName)
	}
	return filepath.Join(destDir, newName), nil
}

// writeEntry is separated so the file is closed right after the entry is written.
func writeEntry(target string, r io.Reader, mode fs.FileMode) error {
	if mode.Perm() == 0 {
		mode = 0o755
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.Wrap(err, "could not create file")
	}
	defer out.Close()

	// one byte over the limit tells a truncated entry from one of exactly maxEntrySize
	lr := &io.LimitedReader{R: r, N: maxEntrySize + 1}
	if _, err := io.Copy(out, lr); err != nil {
		return errors.Wrap(err, "could not write file")
	}
	if lr.N == 0 {
		return errors.Wrapf(ErrEntryTooLarge, "%s is larger than %d bytes", filepath.Base(target), maxEntrySize)
	}
	return nil
}
