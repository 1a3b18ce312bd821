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

package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

type tarGzExtractor struct{}

func (tarGzExtractor) Extension() string { return ".tar.gz" }

func (tarGzExtractor) Extract(archivePath, entryName, destDir, newName string) (string, error) {
	return extractFromTar(archivePath, entryName, destDir, newName, func(r io.Reader) (io.Reader, error) {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "could not open gzip stream")
		}
		return gz, nil
	})
}

type tarXzExtractor struct{}

func (tarXzExtractor) Extension() string { return ".tar.xz" }

func (tarXzExtractor) Extract(archivePath, entryName, destDir, newName string) (string, error) {
	return extractFromTar(archivePath, entryName, destDir, newName, func(r io.Reader) (io.Reader, error) {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "could not open xz stream")
		}
		return xr, nil
	})
}

func extractFromTar(archivePath, entryName, destDir, newName string, decompress func(io.Reader) (io.Reader, error)) (string, error) {
	target, err := prepareDestination(destDir, entryName, newName)
	if err != nil {
		return "", err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return "", errors.Wrap(err, "could not open archive")
	}
	defer f.Close()

	stream, err := decompress(f)
	if err != nil {
		return "", err
	}

	tr := tar.NewReader(stream)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "could not read tar header")
		}

		if header.Typeflag != tar.TypeReg || path.Clean(header.Name) != path.Clean(entryName) {
			continue
		}

		if err := writeEntry(target, tr, header.FileInfo().Mode()); err != nil {
			return "", err
		}
		return target, nil
	}

	return "", errors.Wrapf(ErrEntryNotFound, "%s in %s", entryName, archivePath)
}
