package ibdlinkage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gsPrefix = "gs://"

// IsGoogleStoragePath reports whether path names a Google Storage object or
// prefix.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// SplitGoogleStoragePath splits gs://bucket/some/path into its bucket and
// object name. The object name may be empty.
func SplitGoogleStoragePath(path string) (bucket, name string, err error) {
	if !IsGoogleStoragePath(path) {
		return "", "", fmt.Errorf("%s is not a google storage path", path)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if pathParts[0] == "" {
		return "", "", fmt.Errorf("%s: no bucket name", path)
	}
	if len(pathParts) == 1 {
		return pathParts[0], "", nil
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens path from Google Storage if it is a gs://
// path and client is set, and from the local filesystem otherwise.
func MaybeOpenFromGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client != nil && IsGoogleStoragePath(path) {
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ReadAll reads and, if needed, decompresses the whole file or object at path.
func ReadAll(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	rdr, err := MaybeOpenFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	decompressed, err := MaybeDecompress(rdr)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	data, err := io.ReadAll(decompressed)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return data, nil
}
