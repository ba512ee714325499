package comparison

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ibdlinkage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

func isComparisonFile(name string) bool {
	return strings.EqualFold(filepath.Ext(ibdlinkage.TrimCompressionExt(name)), ".csv")
}

// List returns the comparison files (*.csv, optionally compressed) of a directory in sorted order.
// Unless recursive is set, only direct children are considered. dir may be a
// gs://bucket/prefix path, in which case client must be set.
func List(ctx context.Context, dir string, recursive bool, client *storage.Client) ([]string, error) {
	var (
		files []string
		err   error
	)

	if ibdlinkage.IsGoogleStoragePath(dir) {
		files, err = listGoogleStorage(ctx, dir, recursive, client)
	} else {
		files, err = listLocal(dir, recursive)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

func listLocal(dir string, recursive bool) ([]string, error) {
	files := make([]string, 0)

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !isComparisonFile(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}

		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isComparisonFile(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files, err
}

func listGoogleStorage(ctx context.Context, dir string, recursive bool, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, pfx.Err(fmt.Errorf("a storage client is required to list %s", dir))
	}

	bucketName, prefix, err := ibdlinkage.SplitGoogleStoragePath(dir)
	if err != nil {
		return nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	files := make([]string, 0)
	itr := client.Bucket(bucketName).Objects(ctx, query)
	for {
		attrs, err := itr.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		// Synthetic directory entries only carry a Prefix
		if attrs.Name == "" || !isComparisonFile(attrs.Name) {
			continue
		}
		files = append(files, "gs://"+bucketName+"/"+attrs.Name)
	}

	return files, nil
}
