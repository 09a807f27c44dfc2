package nbt

import (
	"bufio"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Container magic bytes. Chunk tag trees arrive either raw, gzip-wrapped
// (standalone files) or zlib-wrapped (region file payloads).
const (
	gzipMagic1 = 0x1f
	gzipMagic2 = 0x8b
	zlibMagic  = 0x78
)

// Open opens path as a tag byte source, transparently unwrapping a gzip
// or zlib container when one is detected.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tag source: %w", err)
	}

	src, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// Decompress wraps src with the matching decompressor when its first bytes
// carry a gzip or zlib signature. Closing the result closes src.
func Decompress(src io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(src)

	magic, err := br.Peek(2)
	if err != nil {
		// Too short for a container header; let the codec report it
		return &wrappedSource{r: br, closer: src}, nil
	}

	switch {
	case magic[0] == gzipMagic1 && magic[1] == gzipMagic2:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip container: %w", err)
		}
		return &wrappedSource{r: zr, closer: src, inner: zr}, nil

	case magic[0] == zlibMagic:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open zlib container: %w", err)
		}
		return &wrappedSource{r: zr, closer: src, inner: zr}, nil

	default:
		return &wrappedSource{r: br, closer: src}, nil
	}
}

// wrappedSource reads through an optional decompressor and closes both the
// decompressor and the underlying source.
type wrappedSource struct {
	r      io.Reader
	inner  io.Closer // decompressor, may be nil
	closer io.Closer // underlying source
}

func (s *wrappedSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *wrappedSource) Close() error {
	if s.inner != nil {
		s.inner.Close()
	}
	return s.closer.Close()
}

// OpenMmap memory-maps path and serves it as a sequential byte source.
// Useful for repeated extractions over large uncompressed region data,
// where the page cache does the buffering.
func OpenMmap(path string) (io.ReadCloser, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap tag source: %w", err)
	}
	return &mmapSource{
		ra: ra,
		sr: io.NewSectionReader(ra, 0, int64(ra.Len())),
	}, nil
}

type mmapSource struct {
	ra *mmap.ReaderAt
	sr *io.SectionReader
}

func (s *mmapSource) Read(p []byte) (int, error) {
	return s.sr.Read(p)
}

func (s *mmapSource) Close() error {
	return s.ra.Close()
}
