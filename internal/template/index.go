package template

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Default markers delimiting the repeating section.
const (
	DefaultOpenMarker  = "<!-- for LINE in LINES -->"
	DefaultCloseMarker = "<!-- endfor -->"
)

// openTagPattern matches opening P-value tags and captures the numeric id.
var openTagPattern = regexp.MustCompile(`<P([0-9]{1,4})>`)

// Index is the parsed structure of a template.
type Index struct {
	// Prefix holds the lines before the open marker.
	Prefix []string

	// Block is the text between the markers, lines joined by "\n".
	Block string

	// Suffix holds the lines after the close marker.
	Suffix []string

	// Placeholders lists the distinct P-value ids opened in Block, ascending.
	Placeholders []int

	openMarker  string
	closeMarker string
}

type options struct {
	openMarker  string
	closeMarker string
}

// Option configures Parse.
type Option func(*options)

// WithMarkers overrides the marker lines delimiting the repeating section.
// Empty values keep the defaults.
func WithMarkers(openMarker, closeMarker string) Option {
	return func(o *options) {
		if s := strings.TrimSpace(openMarker); s != "" {
			o.openMarker = s
		}
		if s := strings.TrimSpace(closeMarker); s != "" {
			o.closeMarker = s
		}
	}
}

// Parse splits raw into prefix, repeating block and suffix.
//
// A marker matches a line whose trimmed content equals it exactly. The first
// open marker and the first close marker after it delimit the block.
func Parse(raw string, opts ...Option) (*Index, error) {
	o := options{openMarker: DefaultOpenMarker, closeMarker: DefaultCloseMarker}
	for _, opt := range opts {
		opt(&o)
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	start, end := -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == o.closeMarker {
				return nil, fmt.Errorf("%w: close marker %q on line %d precedes open marker",
					ErrMalformedTemplate, o.closeMarker, i+1)
			}
			if trimmed == o.openMarker {
				start = i
			}
			continue
		}
		if trimmed == o.closeMarker {
			end = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: open marker %q not found", ErrMalformedTemplate, o.openMarker)
	}
	if end < 0 {
		return nil, fmt.Errorf("%w: close marker %q not found after line %d",
			ErrMalformedTemplate, o.closeMarker, start+1)
	}

	block := strings.Join(lines[start+1:end], "\n")
	return &Index{
		Prefix:       cloneLines(lines[:start]),
		Block:        block,
		Suffix:       cloneLines(lines[end+1:]),
		Placeholders: placeholderIDs(block),
		openMarker:   o.openMarker,
		closeMarker:  o.closeMarker,
	}, nil
}

// Load reads and parses the template file at path.
func Load(path string, opts ...Option) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	idx, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return idx, nil
}

// String reconstructs the template text. Parsing the result with the same
// markers yields an identical Index.
func (idx *Index) String() string {
	openMarker, closeMarker := idx.openMarker, idx.closeMarker
	if openMarker == "" {
		openMarker = DefaultOpenMarker
	}
	if closeMarker == "" {
		closeMarker = DefaultCloseMarker
	}

	parts := make([]string, 0, len(idx.Prefix)+len(idx.Suffix)+3)
	parts = append(parts, idx.Prefix...)
	parts = append(parts, openMarker, idx.Block, closeMarker)
	parts = append(parts, idx.Suffix...)
	return strings.Join(parts, "\n")
}

// placeholderIDs returns the distinct ids of opening P-value tags in block.
func placeholderIDs(block string) []int {
	seen := make(map[int]struct{})
	for _, m := range openTagPattern.FindAllStringSubmatch(block, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[id] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
