package template

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const headerTemplate = `#ifndef __included_@SM_PREFIX@_build_number_h
#define __included_@SM_PREFIX@_build_number_h

#define @PREFIX@_VERSION_MAJOR @VERSION_MAJOR@
#define @PREFIX@_VERSION_MINOR @VERSION_MINOR@
#define @PREFIX@_VERSION_REVISION @VERSION_REVISION@
#define @PREFIX@_VERSION_BUILD @VERSION_BUILD@
#define @PREFIX@_VERSION_GIT "@GIT_TAG@"

#endif
`

func TestRender_AllTokens(t *testing.T) {
	v := Values{
		SMPrefix: "cc",
		Prefix:   "CC_LIB",
		Major:    "1",
		Minor:    "2",
		Revision: "3",
		Build:    "7",
		GitTag:   "1.2.3-7-gabcd123",
	}
	got := string(Render([]byte(headerTemplate), v))

	for _, tok := range Tokens {
		if strings.Contains(got, tok) {
			t.Fatalf("token %s left in output:\n%s", tok, got)
		}
	}
	if u := Unresolved([]byte(got)); len(u) != 0 {
		t.Fatalf("unresolved tokens %v", u)
	}
	for _, want := range []string{
		"#ifndef __included_cc_build_number_h",
		"#define CC_LIB_VERSION_MAJOR 1",
		"#define CC_LIB_VERSION_MINOR 2",
		"#define CC_LIB_VERSION_REVISION 3",
		"#define CC_LIB_VERSION_BUILD 7",
		`#define CC_LIB_VERSION_GIT "1.2.3-7-gabcd123"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRender_EmptyGitTag(t *testing.T) {
	got := Render([]byte(`"@GIT_TAG@" @VERSION_BUILD@`), Values{Build: "0"})
	if string(got) != `"" 0` {
		t.Fatalf("got %q", got)
	}
}

// @SM_PREFIX@ contains PREFIX@ but not @PREFIX@; both must substitute independently.
func TestRender_OverlappingNames(t *testing.T) {
	got := Render([]byte("@SM_PREFIX@|@PREFIX@"), Values{SMPrefix: "s", Prefix: "P"})
	if string(got) != "s|P" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_ValuesNotRescanned(t *testing.T) {
	got := Render([]byte("@PREFIX@"), Values{Prefix: "@VERSION_MAJOR@", Major: "1"})
	if string(got) != "@VERSION_MAJOR@" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_NoTokensUnchanged(t *testing.T) {
	in := []byte("int x = 1; // @ sign alone\n")
	if got := Render(in, Values{}); !bytes.Equal(got, in) {
		t.Fatalf("got %q", got)
	}
}

func TestUnresolved(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"plain text", nil},
		{"user@example.com", nil},
		{"@FOO@ and @BAR_2@ and @FOO@", []string{"@FOO@", "@BAR_2@"}},
		{"@lower@", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Unresolved([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("Unresolved(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Unresolved(%q) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestPairs_CoversTokens(t *testing.T) {
	p := Values{}.Pairs()
	if len(p) != 2*len(Tokens) {
		t.Fatalf("pairs length = %d, want %d", len(p), 2*len(Tokens))
	}
	for i, tok := range Tokens {
		if p[2*i] != tok {
			t.Fatalf("pair %d token = %s, want %s", i, p[2*i], tok)
		}
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(p, []byte("\xef\xbb\xbf@PREFIX@\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(b) != "@PREFIX@\n" {
		t.Fatalf("got %q", b)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.in")); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
