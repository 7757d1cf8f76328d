// Package hwpxzip provides named-entry access to the ZIP container an
// HWPX (XmlZip) document is packaged in, built on the standard library's
// archive/zip — the idiomatic Go analogue of the original crate's zip
// reader, and the one random-access-by-name API the rest of this module
// needs.
package hwpxzip

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/iyulab/go-unhwp/hwperr"
)

// Archive wraps a zip.Reader with the lookups C8/C9/C13 need.
type Archive struct {
	zr *zip.Reader
}

// Open reads a ZIP container from an in-memory buffer.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, "opening ZIP container", err)
	}
	return &Archive{zr: zr}, nil
}

func (a *Archive) find(name string) *zip.File {
	for _, f := range a.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ReadBinary returns the raw bytes of a member file.
func (a *Archive) ReadBinary(name string) ([]byte, error) {
	f := a.find(name)
	if f == nil {
		return nil, hwperr.New(hwperr.KindMissingComponent, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, name, err)
	}
	return data, nil
}

// ReadFile returns a member file's contents decoded as UTF-8 text.
func (a *Archive) ReadFile(name string) (string, error) {
	data, err := a.ReadBinary(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether a member file is present.
func (a *Archive) Exists(name string) bool {
	return a.find(name) != nil
}

// ListPrefix returns, in lexicographic order, the names of every member
// file beginning with prefix. Used as the fallback section-discovery path
// when content.hpf's manifest is absent or unreadable.
func (a *Archive) ListPrefix(prefix string) []string {
	var names []string
	for _, f := range a.zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}
