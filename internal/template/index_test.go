package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleTemplate = `<?xml version="1.0" encoding="UTF-8" ?>
<gs_provision version="1">
  <config version="1">
    <P2>admin</P2>
    <!-- for LINE in LINES -->
    <P35>$LINE.USER_ID</P35>
    <P34>$LINE.PASSWORD</P34>
    <!-- endfor -->
  </config>
</gs_provision>`

func TestParse(t *testing.T) {
	idx, err := Parse(sampleTemplate)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Index{
		Prefix: []string{
			`<?xml version="1.0" encoding="UTF-8" ?>`,
			`<gs_provision version="1">`,
			`  <config version="1">`,
			`    <P2>admin</P2>`,
		},
		Block:        "    <P35>$LINE.USER_ID</P35>\n    <P34>$LINE.PASSWORD</P34>",
		Suffix:       []string{"  </config>", "</gs_provision>"},
		Placeholders: []int{34, 35},
	}
	if diff := cmp.Diff(want, idx, cmpopts.IgnoreUnexported(Index{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no markers", "A\nB"},
		{"missing close marker", "A\n<!-- for LINE in LINES -->\nx"},
		{"missing open marker", "A\nx\n<!-- endfor -->"},
		{"close before open", "<!-- endfor -->\n<!-- for LINE in LINES -->\nx\n<!-- endfor -->"},
		{"marker not on its own line", "A <!-- for LINE in LINES -->\nx\n<!-- endfor -->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if !errors.Is(err, ErrMalformedTemplate) {
				t.Errorf("Parse() error = %v, want ErrMalformedTemplate", err)
			}
		})
	}
}

func TestParse_MarkerWhitespaceAndCRLF(t *testing.T) {
	raw := "A\r\n\t<!-- for LINE in LINES -->  \r\nx\r\n   <!-- endfor -->\r\nB"

	idx, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if idx.Block != "x" {
		t.Errorf("Block = %q, want %q", idx.Block, "x")
	}
	if diff := cmp.Diff([]string{"B"}, idx.Suffix); diff != "" {
		t.Errorf("Suffix mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FirstCloseAfterOpen(t *testing.T) {
	raw := "<!-- for LINE in LINES -->\nx\n<!-- endfor -->\ny\n<!-- endfor -->"

	idx, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if idx.Block != "x" {
		t.Errorf("Block = %q, want x", idx.Block)
	}
	if diff := cmp.Diff([]string{"y", "<!-- endfor -->"}, idx.Suffix); diff != "" {
		t.Errorf("Suffix mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CustomMarkers(t *testing.T) {
	raw := "A\n# begin\n<P1>$LINE.NAME</P1>\n# end\nB"

	idx, err := Parse(raw, WithMarkers("# begin", "# end"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if idx.Block != "<P1>$LINE.NAME</P1>" {
		t.Errorf("Block = %q", idx.Block)
	}
	if got := idx.String(); got != raw {
		t.Errorf("String() = %q, want %q", got, raw)
	}

	if _, err := Parse(raw); !errors.Is(err, ErrMalformedTemplate) {
		t.Errorf("Parse() with default markers error = %v, want ErrMalformedTemplate", err)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		sampleTemplate,
		"<!-- for LINE in LINES -->\n<!-- endfor -->",
		"A\n<!-- for LINE in LINES -->\n\n<!-- endfor -->\n",
		"  <!-- for LINE in LINES -->\n<P1>a</P1>\n<P/1>\n <!-- endfor -->\nB\n\n",
		"A\n<!-- for LINE in LINES -->\n<!-- for LINE in LINES -->\n<!-- endfor -->",
	}

	for i, raw := range inputs {
		first, err := Parse(raw)
		if err != nil {
			t.Fatalf("input %d: Parse() error = %v", i, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("input %d: re-Parse() error = %v", i, err)
		}
		if diff := cmp.Diff(first, second, cmp.AllowUnexported(Index{})); diff != "" {
			t.Errorf("input %d: re-parse mismatch (-first +second):\n%s", i, diff)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ht8xx.xml")
	if err := os.WriteFile(good, []byte(sampleTemplate), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte("no markers"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	idx, err := Load(good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(idx.Block, "$LINE.USER_ID") {
		t.Errorf("Block = %q, want USER_ID token", idx.Block)
	}

	if _, err := Load(bad); !errors.Is(err, ErrMalformedTemplate) {
		t.Errorf("Load(bad) error = %v, want ErrMalformedTemplate", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}
