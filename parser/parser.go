// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package parser extracts XML-like tagged sections from model output.
//
// Tags are matched case-sensitively and non-greedily; nested tags of the same
// name are not supported. Malformed or missing sections degrade to empty values
// and never produce an error.
package parser

import (
	"regexp"
	"strings"
	"sync"

	"github.com/mthnguyener/simple-agentic-workflow/internal/pool"
)

// Task is one subtask proposed by a composer model.
type Task struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

var (
	taskBlockRe = regexp.MustCompile(`(?s)<task>(.*?)</task>`)
	taskBodyRe  = regexp.MustCompile(`(?s)\A\s*<type>(.*?)</type>\s*<description>(.*?)</description>\s*\z`)
)

// tagCache memoizes compiled per-tag patterns.
var tagCache sync.Map // map[string]*regexp.Regexp

func tagPattern(tag string) *regexp.Regexp {
	if re, ok := tagCache.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	q := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?s)<` + q + `>(.*?)</` + q + `>`)
	actual, _ := tagCache.LoadOrStore(tag, re)
	return actual.(*regexp.Regexp)
}

// ExtractTag returns the content between the first <tag> and the following </tag>.
//
// It returns "" when the tag is absent or not closed.
func ExtractTag(text, tag string) string {
	if tag == "" {
		return ""
	}
	m := tagPattern(tag).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseTasks returns every well-formed <task> block of xml in document order.
//
// Each block must contain a <type> followed by a <description>; whitespace
// between the tags is allowed. Fields are trimmed. Blocks lacking either
// sub-tag are skipped.
func ParseTasks(xml string) []Task {
	var tasks []Task
	for _, b := range taskBlockRe.FindAllStringSubmatch(xml, -1) {
		m := taskBodyRe.FindStringSubmatch(b[1])
		if m == nil {
			continue
		}
		tasks = append(tasks, Task{
			Type:        strings.TrimSpace(m[1]),
			Description: strings.TrimSpace(m[2]),
		})
	}
	return tasks
}

// After returns the text following the first closing </tag>.
//
// The whole text is returned when the closing tag is absent.
func After(text, tag string) string {
	if tag == "" {
		return text
	}
	_, rest, found := strings.Cut(text, "</"+tag+">")
	if !found {
		return text
	}
	return rest
}

// FormatTasks serializes tasks into the <task> block grammar understood by [ParseTasks].
func FormatTasks(tasks []Task) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	for i, t := range tasks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("<task>\n<type>")
		sb.WriteString(t.Type)
		sb.WriteString("</type>\n<description>")
		sb.WriteString(t.Description)
		sb.WriteString("</description>\n</task>")
	}
	return sb.String()
}
