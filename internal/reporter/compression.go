package reporter

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression wraps a file stream with a compression codec. WrapWriter's
// result must be closed to flush the codec's trailer before the underlying
// file is closed.
type Compression interface {
	WrapWriter(w io.Writer) (io.WriteCloser, error)
	WrapReader(r io.Reader) (io.ReadCloser, error)
}

var compressions = newRegistry[Compression]("compression algorithm")

// RegisterCompression adds a compression codec under the given name.
func RegisterCompression(name string, c Compression) error {
	return compressions.register(name, c)
}

// DeregisterCompression removes a compression codec by name.
func DeregisterCompression(name string) {
	compressions.deregister(name)
}

// LookupCompression returns the codec registered under name.
func LookupCompression(name string) (Compression, error) {
	return compressions.lookup(name)
}

type gzipCompression struct{}

func (gzipCompression) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (gzipCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

type zstdCompression struct{}

func (zstdCompression) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

func (zstdCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(RegisterCompression("gz", gzipCompression{}))
	must(RegisterCompression("gzip", gzipCompression{}))
	must(RegisterCompression("zst", zstdCompression{}))
}
