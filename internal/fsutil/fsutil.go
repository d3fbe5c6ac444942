package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TempSuffix is appended to the destination path for the staging file.
const TempSuffix = ".tmp"

// ReadText reads the whole file at path. A leading byte order mark is
// consumed: UTF-8 BOMs are dropped and UTF-16 input is transcoded to UTF-8.
// Input without a BOM is returned byte for byte.
func ReadText(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := transform.NewReader(f, unicode.BOMOverride(transform.Nop))
	return io.ReadAll(r)
}

// WriteIfChanged stages data in dest+".tmp" and replaces dest with it only
// when the bytes differ from the current contents of dest. When they are
// equal the staging file is removed and dest keeps its modification time.
// It reports whether dest was replaced. The staging file never outlives the
// call, and dest is never left partially written.
func WriteIfChanged(dest string, data []byte, perm os.FileMode) (bool, error) {
	tmp := dest + TempSuffix
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("write %s: %w", tmp, err)
	}

	equal, err := sameContents(tmp, dest)
	if err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	if equal {
		if err := os.Remove(tmp); err != nil {
			return false, fmt.Errorf("remove %s: %w", tmp, err)
		}
		return false, nil
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("replace %s: %w", dest, err)
	}
	return true, nil
}

// sameContents compares two files byte for byte. A missing b is reported as
// different rather than as an error.
func sameContents(a, b string) (bool, error) {
	want, err := os.ReadFile(b)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", b, err)
	}
	got, err := os.ReadFile(a)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", a, err)
	}
	return bytes.Equal(got, want), nil
}

// Diff returns a unified diff from the current contents of dest to data.
// A missing dest diffs against empty input. The result is empty when
// nothing would change.
func Diff(dest string, data []byte) (string, error) {
	current, err := os.ReadFile(dest)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", dest, err)
	}
	if bytes.Equal(current, data) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(data)),
		FromFile: dest,
		ToFile:   dest + TempSuffix,
		Context:  3,
	})
}
