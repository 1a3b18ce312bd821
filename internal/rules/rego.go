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


package rules

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/open-policy-agent/opa/v1/ast"
	"gopkg.in/yaml.v3"
)

var metadataRegexp = regexp.MustCompile(`^\s*#\s*METADATA`)

// regoAnnotation is the subset of a METADATA block describing a check.
type regoAnnotation struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Custom      map[string]any `yaml:"custom"`
}

// ParseRegoFile returns the metadata of the check defined in the Rego file at
// path, or nothing if the file carries no METADATA block with an avd_id.
func ParseRegoFile(path string) ([]RuleMetadata, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	annotations, err := parseAnnotations(path, string(src))
	if err != nil {
		slog.Debug("could not parse rego module, reading metadata comments", "file", path, "err", err)
		annotation, err := parseMetadataComment(string(src))
		if err != nil {
			return nil, err
		}
		annotations = []regoAnnotation{annotation}
	}

	for _, a := range annotations {
		if rule, ok := a.toRuleMetadata(); ok {
			return []RuleMetadata{rule}, nil
		}
	}
	return nil, nil
}

// parseAnnotations parses the module with the OPA parser. Checks are written
// in both Rego versions, so v1 is tried before v0.
func parseAnnotations(path, src string) ([]regoAnnotation, error) {
	var module *ast.Module
	var err error
	for _, version := range []ast.RegoVersion{ast.RegoV1, ast.RegoV0} {
		module, err = ast.ParseModuleWithOpts(path, src, ast.ParserOptions{
			ProcessAnnotation: true,
			RegoVersion:       version,
		})
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	annotations := make([]regoAnnotation, 0, len(module.Annotations))
	for _, a := range module.Annotations {
		annotations = append(annotations, regoAnnotation{
			Title:       a.Title,
			Description: a.Description,
			Custom:      a.Custom,
		})
	}
	return annotations, nil
}

// parseMetadataComment reads the first METADATA comment block as YAML.
func parseMetadataComment(src string) (regoAnnotation, error) {
	var collected []string
	collect := false
	for _, line := range strings.Split(src, "\n") {
		if !collect {
			collect = metadataRegexp.MatchString(line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		collected = append(collected, strings.TrimPrefix(trimmed, "#"))
	}

	var annotation regoAnnotation
	if len(collected) == 0 {
		return annotation, nil
	}
	if err := yaml.Unmarshal([]byte(strings.Join(collected, "\n")), &annotation); err != nil {
		return annotation, err
	}
	return annotation, nil
}

func (a regoAnnotation) custom(key string) string {
	v, ok := a.Custom[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func (a regoAnnotation) toRuleMetadata() (RuleMetadata, bool) {
	id := a.custom("avd_id")
	if id == "" {
		return RuleMetadata{}, false
	}
	deprecated, _ := a.Custom["deprecated"].(bool)
	return RuleMetadata{
		AVDID:       id,
		Provider:    a.custom("provider"),
		Service:     a.custom("service"),
		ShortCode:   a.custom("short_code"),
		Summary:     strings.TrimSpace(a.Title),
		Resolution:  a.custom("recommended_action"),
		Explanation: strings.TrimSpace(a.Description),
		Severity:    NormalizeSeverity(a.custom("severity")),
		Deprecated:  deprecated,
	}, true
}
