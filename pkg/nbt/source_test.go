package nbt

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"os"
	"path/filepath"
	"testing"
)

func gzipped(data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

func zlibbed(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestOpen_PlainFile(t *testing.T) {
	path := writeTemp(t, "chunk.nbt", buildChunkTree())

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	tag, ok := ExtractPath(src, "A.B")
	if !ok {
		t.Fatal("extraction over plain file failed")
	}
	if v, _ := tag.GetInt("C"); v != 42 {
		t.Errorf("B.C = %d, want 42", v)
	}
}

func TestOpen_GzipContainer(t *testing.T) {
	path := writeTemp(t, "chunk.nbt.gz", gzipped(buildChunkTree()))

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if _, ok := ExtractPath(src, "A.B"); !ok {
		t.Error("extraction over gzip container failed")
	}
}

func TestDecompress_ZlibContainer(t *testing.T) {
	src, err := Decompress(newSource(zlibbed(buildChunkTree())))
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}

	if _, ok := ExtractPath(src, "A.D"); !ok {
		t.Error("extraction over zlib container failed")
	}
}

func TestDecompress_ClosePropagates(t *testing.T) {
	under := newSource(gzipped(buildChunkTree()))

	src, err := Decompress(under)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}

	NewParser(src).Parse(VisitorFuncs{})

	if !under.closed {
		t.Error("closing the wrapped source must close the underlying one")
	}
}

func TestOpenMmap(t *testing.T) {
	path := writeTemp(t, "region.nbt", buildChunkTree())

	src, err := OpenMmap(path)
	if err != nil {
		t.Fatalf("OpenMmap() error: %v", err)
	}

	tag, ok := ExtractPath(src, "A.B")
	if !ok {
		t.Fatal("extraction over mmap source failed")
	}
	if v, _ := tag.GetInt("C"); v != 42 {
		t.Errorf("B.C = %d, want 42", v)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.nbt")); err == nil {
		t.Error("Open() of a missing file should fail")
	}
}
