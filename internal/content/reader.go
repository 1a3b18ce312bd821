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

// Package content reads the YAML files of the bundler repository (scanner
// config, rule defaults, rule overrides) into generic maps with snake_case keys.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrNotMapping = errors.New("yaml document is not a mapping")

// ParseError is returned when a file exists but is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses the YAML file at path and replaces every hyphen in mapping keys
// with an underscore, so kebab-case files can be decoded into snake_case fields.
func Read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if doc == nil {
		return map[string]any{}, nil
	}

	normalized, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrNotMapping, path)
	}
	return normalized, nil
}

// NormalizeKeys returns a copy of data with hyphens in all keys replaced by underscores.
func NormalizeKeys(data map[string]any) map[string]any {
	return normalize(data).(map[string]any)
}

func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[strings.ReplaceAll(key, "-", "_")] = normalize(val)
		}
		return out
	case map[any]any:
		// yaml.v3 falls back to this type for non-string keys
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[strings.ReplaceAll(fmt.Sprint(key), "-", "_")] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// yaml11Bools are the YAML 1.1 boolean spellings yaml.v3 leaves as strings.
var yaml11Bools = map[string]bool{
	"yes": true, "y": true, "on": true,
	"no": false, "n": false, "off": false,
}

// yaml11BoolHook converts YAML 1.1 booleans like "yes" or "off" when the
// target field is a bool.
func yaml11BoolHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	if to.Kind() != reflect.Bool {
		return data, nil
	}
	if b, ok := yaml11Bools[strings.ToLower(strings.TrimSpace(data.(string)))]; ok {
		return b, nil
	}
	return data, nil
}

// Decode maps input onto out by mapstructure tags. Unknown keys are ignored
// and scalar types are converted where possible.
func Decode(input any, out any) error {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       yaml11BoolHook,
	})
	if err != nil {
		return errors.Wrap(err, "could not create decoder")
	}

	if err := decoder.Decode(input); err != nil {
		return err
	}

	if len(md.Unused) > 0 {
		slog.Debug("ignoring unknown keys", "keys", md.Unused)
	}
	return nil
}

// ReadInto reads path and decodes it into out.
func ReadInto(path string, out any) error {
	data, err := Read(path)
	if err != nil {
		return err
	}
	if err := Decode(data, out); err != nil {
		return errors.Wrapf(err, "could not decode %s", path)
	}
	return nil
}
