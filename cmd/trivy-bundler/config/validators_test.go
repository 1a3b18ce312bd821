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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"http://example.com/", "http://example.com"},
		{"example.com", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, sanitizeURL(test.input))
	}
}

func TestIsValidPath(t *testing.T) {
	assert.NoError(t, isValidPath("output"))
	assert.NoError(t, isValidPath("does/not/exist/yet"))
	assert.EqualError(t, isValidPath(""), "path is empty")
	assert.EqualError(t, isValidPath("out\xffput"), "path is not valid utf-8")
	assert.EqualError(t, isValidPath("out\x00put"), "path contains null bytes")
	assert.Error(t, isValidPath("out|put"))
	assert.Error(t, isValidPath(strings.Repeat("a", 261)))
}
