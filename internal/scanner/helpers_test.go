package scanner

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxvaer/classver/internal/classfile"
)

type entry struct {
	name string
	data []byte
}

func classBytes(major uint16) []byte {
	// Header plus a little trailing data, as a real classfile would have.
	return append(classfile.Encode(classfile.Version{Major: major}), 0x00, 0x10, 0x07)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func zipBytes(t *testing.T, entries []entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeJar(t *testing.T, name string, entries []entry) string {
	t.Helper()
	return writeFile(t, name, zipBytes(t, entries))
}
