package template

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FieldPrefix starts every field token, as in $LINE.PHONE_NUMBER.
const FieldPrefix = "$LINE."

var (
	// tagPattern matches <Pn>, </Pn> and <P/n>.
	tagPattern = regexp.MustCompile(`<(/?)P(/?)([0-9]{1,4})>`)

	tokenPattern = regexp.MustCompile(`\$LINE\.([A-Za-z0-9_]+)`)
)

// RenderLine renders block for one line at position offset within its
// device.
//
// Every P-value tag whose id appears in placeholders is rewritten to
// id+offset in a single scan, so a shifted id is never shifted again. Field
// tokens are then replaced with the line's values; when one field name
// prefixes another the longer name wins. Tokens without a matching field
// are kept.
func RenderLine(block string, placeholders []int, line map[string]string, offset int) string {
	out := block
	if offset != 0 && len(placeholders) > 0 {
		out = reindex(out, placeholders, offset)
	}
	if len(line) > 0 {
		out = fieldReplacer(line).Replace(out)
	}
	return out
}

func reindex(block string, placeholders []int, offset int) string {
	shift := make(map[int]struct{}, len(placeholders))
	for _, id := range placeholders {
		shift[id] = struct{}{}
	}
	return tagPattern.ReplaceAllStringFunc(block, func(tag string) string {
		m := tagPattern.FindStringSubmatch(tag)
		id, err := strconv.Atoi(m[3])
		if err != nil {
			return tag
		}
		if _, ok := shift[id]; !ok {
			return tag
		}
		return "<" + m[1] + "P" + m[2] + strconv.Itoa(id+offset) + ">"
	})
}

// fieldReplacer builds a single-pass replacer for the line's tokens, longest
// field name first.
func fieldReplacer(line map[string]string) *strings.Replacer {
	keys := fieldNames(line)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, FieldPrefix+k, line[k])
	}
	return strings.NewReplacer(pairs...)
}

// maskReplacer matches tokens exactly as fieldReplacer does but replaces
// them with a byte that cannot extend a token.
func maskReplacer(line map[string]string) *strings.Replacer {
	keys := fieldNames(line)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, FieldPrefix+k, "\x00")
	}
	return strings.NewReplacer(pairs...)
}

// fieldNames returns the non-empty keys of line, longest first, ties sorted.
func fieldNames(line map[string]string) []string {
	keys := make([]string, 0, len(line))
	for k := range line {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// RenderLine renders the index's block for one line.
func (idx *Index) RenderLine(line map[string]string, offset int) string {
	return RenderLine(idx.Block, idx.Placeholders, line, offset)
}

// Build renders a whole device configuration: the prefix lines, the block
// once per line with offsets 0, 1, 2..., then the suffix lines, joined by
// newlines.
func (idx *Index) Build(lines []map[string]string) string {
	parts := make([]string, 0, len(idx.Prefix)+len(lines)+len(idx.Suffix))
	parts = append(parts, idx.Prefix...)
	for i, line := range lines {
		parts = append(parts, idx.RenderLine(line, i))
	}
	parts = append(parts, idx.Suffix...)
	return strings.Join(parts, "\n")
}

// Unresolved returns the distinct field tokens that Build would leave in the
// output for lines: tokens in the prefix or suffix, and block tokens with no
// matching field in some line. Substituted values are never inspected, so a
// cell containing token-like text is not reported.
func (idx *Index) Unresolved(lines []map[string]string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	collect := func(text string) {
		for _, tok := range UnresolvedTokens(text) {
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				tokens = append(tokens, tok)
			}
		}
	}

	collect(strings.Join(idx.Prefix, "\n"))
	for _, line := range lines {
		block := idx.Block
		if len(line) > 0 {
			block = maskReplacer(line).Replace(block)
		}
		collect(block)
	}
	collect(strings.Join(idx.Suffix, "\n"))
	return tokens
}

// UnresolvedTokens returns the distinct field tokens left in text, in order
// of first appearance.
func UnresolvedTokens(text string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// VerifyResolved returns an error wrapping ErrUnresolvedToken when text
// still contains field tokens.
func VerifyResolved(text string) error {
	tokens := UnresolvedTokens(text)
	if len(tokens) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnresolvedToken, strings.Join(tokens, ", "))
}
