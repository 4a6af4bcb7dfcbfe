// Package corrections applies transcription fixups to recognized page text.
//
// Rules load from a JSON file in one of two shapes: an object mapping wrong
// words to replacements (matched case-insensitively on word boundaries,
// longest entries first), or an array of [pattern, replacement] pairs applied
// in order as case-insensitive regular expressions.
package corrections

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// Common recognizer slips that are safe to fix without a rules file.
var generic = []substitution{
	{regexp.MustCompile(`(?i)\btered\b`), "tired"},
	{regexp.MustCompile(`(?i)\bliet\b`), "diet"},
}

// Rules holds compiled substitutions applied after the generic baseline.
type Rules struct {
	subs []substitution
}

// Load reads and compiles a rules file. An empty path or a missing file
// yields empty rules rather than an error.
func Load(path string) (*Rules, error) {
	if path == "" {
		return &Rules{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Rules{}, nil
		}
		return nil, fmt.Errorf("read corrections file: %w", err)
	}

	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse corrections file %s: %w", path, err)
	}

	return rules, nil
}

// Parse compiles rules from JSON data, detecting the object or array shape.
func Parse(data []byte) (*Rules, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return &Rules{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		return parsePairs(data)
	}
	return parseMapping(data)
}

func parsePairs(data []byte) (*Rules, error) {
	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("decode pair list: %w", err)
	}

	rules := &Rules{}
	for _, pair := range pairs {
		if len(pair) != 2 {
			continue
		}

		pattern, err := regexp.Compile("(?i)" + pair[0])
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pair[0], err)
		}

		rules.subs = append(rules.subs, substitution{pattern, pair[1]})
	}

	return rules, nil
}

func parseMapping(data []byte) (*Rules, error) {
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		if strings.TrimSpace(key) != "" {
			keys = append(keys, key)
		}
	}

	// Longest first so multi-word entries win over their substrings.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	rules := &Rules{}
	for _, key := range keys {
		wrong := strings.TrimSpace(key)
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(wrong) + `\b`)
		rules.subs = append(rules.subs, substitution{pattern, mapping[key]})
	}

	return rules, nil
}

// Apply runs the generic baseline and then the compiled rules over text.
func (r *Rules) Apply(text string) string {
	out := text
	for _, sub := range generic {
		out = sub.pattern.ReplaceAllString(out, sub.replacement)
	}
	for _, sub := range r.subs {
		out = sub.pattern.ReplaceAllString(out, sub.replacement)
	}
	return out
}
