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
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// ParseGoFile returns every scan.Rule literal declared in the Go file at path.
func ParseGoFile(path string) ([]RuleMetadata, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var rules []RuleMetadata
	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.CompositeLit)
		if !ok || !isScanRule(lit.Type) {
			return true
		}
		rules = append(rules, parseRuleLiteral(lit))
		return true
	})
	return rules, nil
}

func isScanRule(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "scan" && sel.Sel.Name == "Rule"
}

func parseRuleLiteral(lit *ast.CompositeLit) RuleMetadata {
	var rule RuleMetadata
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}

		switch key.Name {
		case "AVDID":
			rule.AVDID = stringValue(kv.Value)
		case "Provider":
			// providers.AWSProvider
			rule.Provider = strings.TrimSuffix(selectorOrString(kv.Value), "Provider")
		case "Service":
			rule.Service = stringValue(kv.Value)
		case "ShortCode":
			rule.ShortCode = stringValue(kv.Value)
		case "Summary":
			rule.Summary = stringValue(kv.Value)
		case "Impact":
			rule.Impact = stringValue(kv.Value)
		case "Resolution":
			rule.Resolution = stringValue(kv.Value)
		case "Explanation":
			rule.Explanation = stringValue(kv.Value)
		case "Severity":
			// severity.High
			rule.Severity = NormalizeSeverity(selectorOrString(kv.Value))
		case "Deprecated":
			ident, ok := kv.Value.(*ast.Ident)
			rule.Deprecated = ok && ident.Name == "true"
		}
	}
	return rule
}

// stringValue evaluates string literals, including concatenations of them.
func stringValue(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.BasicLit:
		if v.Kind != token.STRING {
			return ""
		}
		s, err := strconv.Unquote(v.Value)
		if err != nil {
			return strings.Trim(v.Value, "\"`")
		}
		return s
	case *ast.BinaryExpr:
		if v.Op != token.ADD {
			return ""
		}
		return stringValue(v.X) + stringValue(v.Y)
	case *ast.ParenExpr:
		return stringValue(v.X)
	}
	return ""
}

// selectorOrString returns the selected name of pkg.Name expressions and the
// value of string literals.
func selectorOrString(expr ast.Expr) string {
	if sel, ok := expr.(*ast.SelectorExpr); ok {
		return sel.Sel.Name
	}
	return stringValue(expr)
}
