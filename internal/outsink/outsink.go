/*
Copyright (C) 2026  The Proboscis Authors

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package outsink resolves a -o/--output destination — stdout, a local
// path, or an s3://bucket/key URI — into an io.WriteCloser, and wraps
// it with an lz4 or xz codec when --compress asks for one.
package outsink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Open resolves path into a writer. "" and "-" mean stdout, which is
// never closed by the returned WriteCloser. An "s3://bucket/key" path
// buffers the full output in memory and uploads it on Close.
func Open(path string) (io.WriteCloser, error) {
	switch {
	case path == "" || path == "-":
		return nopCloser{os.Stdout}, nil
	case strings.HasPrefix(path, "s3://"):
		return newS3Sink(path)
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("outsink: open %q: %w", path, err)
		}
		return f, nil
	}
}

// Compress wraps w with the named codec ("none", "lz4", "xz"). The
// returned WriteCloser's Close flushes the compressor and then closes w.
func Compress(w io.WriteCloser, codec string) (io.WriteCloser, error) {
	switch codec {
	case "", "none":
		return w, nil
	case "lz4":
		zw := lz4.NewWriter(w)
		return &compressSink{enc: zw, under: w}, nil
	case "xz":
		zw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("outsink: xz writer: %w", err)
		}
		return &compressSink{enc: zw, under: w}, nil
	default:
		return nil, fmt.Errorf("outsink: unknown compress codec %q", codec)
	}
}

type flusher interface {
	io.Writer
	Close() error
}

type compressSink struct {
	enc   flusher
	under io.WriteCloser
}

func (c *compressSink) Write(p []byte) (int, error) { return c.enc.Write(p) }

func (c *compressSink) Close() error {
	if err := c.enc.Close(); err != nil {
		c.under.Close()
		return err
	}
	return c.under.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
