// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/mthnguyener/simple-agentic-workflow/internal/pool"
)

// ErrMissingVariable is returned by [Format] when a placeholder names a variable that was not supplied.
var ErrMissingVariable = errors.New("missing template variable")

var placeholderRe = regexp.MustCompile(`{+[^{}]*}+`)

// Format substitutes {name} placeholders in template with vars.
//
// Only single-braced placeholders whose content is an identifier are substituted.
// Anything else in braces, such as JSON snippets or {{doubled}} braces, is kept verbatim.
// Substituted values are not scanned again.
func Format(template string, vars map[string]string) (string, error) {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	last := 0
	for _, loc := range placeholderRe.FindAllStringIndex(template, -1) {
		start, end := loc[0], loc[1]
		sb.WriteString(template[last:start])
		last = end

		match := template[start:end]
		name := match[1 : len(match)-1]
		if match[1] == '{' || match[len(match)-2] == '}' || !isIdentifier(name) {
			sb.WriteString(match)
			continue
		}

		val, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingVariable, name)
		}
		sb.WriteString(val)
	}
	sb.WriteString(template[last:])

	return sb.String(), nil
}

func isIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
