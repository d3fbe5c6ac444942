package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// manifest is a machine-readable record of what a run resolved, written
// next to the header for build scripts that want the version without
// parsing C.
type manifest struct {
	Tag        string `json:"tag"`
	FromGit    bool   `json:"from_git"`
	Major      string `json:"major"`
	Minor      string `json:"minor"`
	Revision   string `json:"revision"`
	Build      string `json:"build"`
	Descriptor string `json:"descriptor"`
	Output     string `json:"output"`
	SHA256     string `json:"sha256"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of data.
func computeSHA256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// marshalManifestJSON encodes the sidecar. It carries no timestamps so an
// unchanged checkout produces identical bytes.
func marshalManifestJSON(res Result, output string, rendered []byte) ([]byte, error) {
	m := manifest{
		Tag:        res.Tag.Name,
		FromGit:    res.Tag.FromGit,
		Major:      res.Version.Major,
		Minor:      res.Version.Minor,
		Revision:   res.Version.Revision,
		Build:      res.Version.Build,
		Descriptor: res.Descriptor,
		Output:     output,
		SHA256:     computeSHA256Hex(rendered),
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
