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
	"archive/zip"
	"path"

	"github.com/pkg/errors"
)

type zipExtractor struct{}

func (zipExtractor) Extension() string { return ".zip" }

func (zipExtractor) Extract(archivePath, entryName, destDir, newName string) (string, error) {
	target, err := prepareDestination(destDir, entryName, newName)
	if err != nil {
		return "", err
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", errors.Wrap(err, "could not open zip archive")
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || path.Clean(f.Name) != path.Clean(entryName) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", errors.Wrapf(err, "could not open %s", f.Name)
		}
		defer rc.Close()

		if err := writeEntry(target, rc, f.Mode()); err != nil {
			return "", err
		}
		return target, nil
	}

	return "", errors.Wrapf(ErrEntryNotFound, "%s in %s", entryName, archivePath)
}
