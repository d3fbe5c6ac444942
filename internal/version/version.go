package version

import (
	"fmt"
	"strings"
)

// Version holds the dotted components of a release tag. Components are kept
// as strings because they are substituted verbatim into generated sources.
type Version struct {
	Major    string
	Minor    string
	Revision string
	Build    string
}

// String returns major.minor.revision.build.
func (v Version) String() string {
	return v.Major + "." + v.Minor + "." + v.Revision + "." + v.Build
}

// ParseError reports a tag that does not split into enough components.
type ParseError struct {
	Tag  string
	Want int
	Got  int
}

func (e *ParseError) Error() string {
	if e.Tag == "" {
		return "parse version: empty tag"
	}
	return fmt.Sprintf("parse version %q: want at least %d dot-separated components, got %d", e.Tag, e.Want, e.Got)
}

// Parse splits tag into its components.
//
// A tag whose first component starts with 'v' carries its own build number
// ("v1.2.3.45"); the leading 'v' is dropped and the fourth component
// replaces build. Any other tag is read as "major.minor.revision" and build
// is kept as given. Components past the expected count are ignored.
func Parse(tag, build string) (Version, error) {
	if tag == "" {
		return Version{}, &ParseError{Tag: tag}
	}
	parts := strings.Split(tag, ".")
	if strings.HasPrefix(parts[0], "v") {
		if len(parts) < 4 {
			return Version{}, &ParseError{Tag: tag, Want: 4, Got: len(parts)}
		}
		return Version{
			Major:    parts[0][1:],
			Minor:    parts[1],
			Revision: parts[2],
			Build:    parts[3],
		}, nil
	}
	if len(parts) < 3 {
		return Version{}, &ParseError{Tag: tag, Want: 3, Got: len(parts)}
	}
	return Version{
		Major:    parts[0],
		Minor:    parts[1],
		Revision: parts[2],
		Build:    build,
	}, nil
}
