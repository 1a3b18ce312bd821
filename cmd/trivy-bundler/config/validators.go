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


package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func sanitizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return url
	}

	url = strings.TrimSuffix(url, "/")

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}

// isValidPath checks that path can be used as an output directory. Unlike an
// input path it does not need to exist yet.
func isValidPath(path string) error {
	if len(path) == 0 {
		return fmt.Errorf("path is empty")
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("path is not valid utf-8")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains null bytes")
	}

	invalidChars := `<>:"|?*`
	for _, char := range invalidChars {
		if strings.ContainsRune(path, char) {
			return fmt.Errorf("invalid character '%c' in path", char)
		}
	}

	if len(path) > 260 {
		return fmt.Errorf("path length exceeds 260 characters")
	}
	return nil
}
