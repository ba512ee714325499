package ibdlinkage

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"path"
	"strings"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x78},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// CompressionExtensions are the file name suffixes of the supported
// compressed formats.
var CompressionExtensions = []string{".gz", ".zip", ".xz", ".z", ".bz2"}

// DetectDataType identifies a stream by its leading bytes without consuming
// them. Streams shorter than every signature are uncompressed.
func DetectDataType(r *bufio.Reader) DataType {
	head, _ := r.Peek(6)

	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(head, sig) {
			// zlib's second byte makes the header a multiple of 31.
			if dt == DataTypeZ && (len(head) < 2 || (uint16(head[0])<<8|uint16(head[1]))%31 != 0) {
				continue
			}
			return dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress wraps r in a decompressor if its content is compressed.
// Zip archives yield their first entry.
func MaybeDecompress(r io.Reader) (io.Reader, error) {
	buffered := bufio.NewReader(r)

	switch DetectDataType(buffered) {
	case DataTypeGzip:
		return gzip.NewReader(buffered)
	case DataTypeZip:
		zr := zipstream.NewReader(buffered)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return zr, nil
	case DataTypeBZip2:
		return bzip2.NewReader(buffered), nil
	case DataTypeXZ:
		return xz.NewReader(buffered, 0)
	case DataTypeZ:
		return zlib.NewReader(buffered)
	}

	return buffered, nil
}

// TrimCompressionExt removes a compression suffix such as .gz from name.
func TrimCompressionExt(name string) string {
	ext := path.Ext(name)
	for _, known := range CompressionExtensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(name, ext)
		}
	}

	return name
}
