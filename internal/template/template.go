package template

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/genbuildnum/internal/fsutil"
)

// Placeholder tokens recognised in header templates.
const (
	SMPrefixToken = "@SM_PREFIX@"
	PrefixToken   = "@PREFIX@"
	MajorToken    = "@VERSION_MAJOR@"
	MinorToken    = "@VERSION_MINOR@"
	RevisionToken = "@VERSION_REVISION@"
	BuildToken    = "@VERSION_BUILD@"
	GitTagToken   = "@GIT_TAG@"
)

// Tokens lists every placeholder in the order they are substituted.
var Tokens = []string{
	SMPrefixToken,
	PrefixToken,
	MajorToken,
	MinorToken,
	RevisionToken,
	BuildToken,
	GitTagToken,
}

// DefaultFileName is the template looked up in the tool directory.
const DefaultFileName = "build_number.h.in"

// Values holds the substitution for each placeholder. Empty strings are
// valid; GitTag is empty whenever the version came from the release file.
type Values struct {
	SMPrefix string
	Prefix   string
	Major    string
	Minor    string
	Revision string
	Build    string
	GitTag   string
}

// Pairs returns token, value pairs in Tokens order.
func (v Values) Pairs() []string {
	return []string{
		SMPrefixToken, v.SMPrefix,
		PrefixToken, v.Prefix,
		MajorToken, v.Major,
		MinorToken, v.Minor,
		RevisionToken, v.Revision,
		BuildToken, v.Build,
		GitTagToken, v.GitTag,
	}
}

// Load reads a template, dropping any byte order mark.
func Load(path string) ([]byte, error) {
	return fsutil.ReadText(path)
}

// Render replaces every placeholder in text with its value. Tokens are
// matched literally and substituted values are not scanned again.
func Render(text []byte, v Values) []byte {
	return []byte(strings.NewReplacer(v.Pairs()...).Replace(string(text)))
}

var tokenPattern = regexp.MustCompile(`@[A-Z0-9_]+@`)

// Unresolved returns the distinct @NAME@ tokens still present in text,
// in order of first appearance.
func Unresolved(text []byte) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range tokenPattern.FindAll(text, -1) {
		s := string(m)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
