// Package reader turns text game logs into rcg.Handler notifications.
package reader

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Open opens a game log, transparently decompressing gzip content. The
// compression is detected from the file content, not its name.
func Open(path string) (io.ReadCloser, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("log path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rc, err := decompress(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return rc, nil
}

type gzipFile struct {
	*gzip.Reader
	file io.Closer
}

func (g gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}

type plainFile struct {
	io.Reader
	file io.Closer
}

func (p plainFile) Close() error {
	return p.file.Close()
}

func decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("peek header: %w", err)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}
		return gzipFile{Reader: zr, file: rc}, nil
	}
	return plainFile{Reader: br, file: rc}, nil
}
