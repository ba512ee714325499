package comparison

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ibdlinkage"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/sirupsen/logrus"
)

// ErrReservedName is returned for a comparison file whose individual would be
// indistinguishable from the proband.
var ErrReservedName = errors.New("individual name is reserved for the proband")

// Loader ingests comparison files into a Store. Every file is one individual.
type Loader struct {
	Store     *partition.Store
	Recursive bool

	// Storage is only needed for gs:// paths.
	Storage *storage.Client

	Log logrus.FieldLogger
}

// FileStats describes one loaded comparison file.
type FileStats struct {
	Individual string
	Segments   int

	// Skipped counts rows on chromosomes that are not scanned, such as Y.
	Skipped int
}

// LoadDirectory registers every comparison file under dir as an individual of
// group g and ingests its segments. Any unreadable file aborts the load, since
// a missing individual would distort every population count.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, g partition.Group) ([]FileStats, error) {
	files, err := List(ctx, dir, l.Recursive, l.Storage)
	if err != nil {
		return nil, fmt.Errorf("listing %s directory %s: %w", g, dir, err)
	}

	if len(files) == 0 {
		l.logger().WithFields(logrus.Fields{"dir": dir, "group": g.String()}).Warnln("No comparison files found")
	}

	out := make([]FileStats, 0, len(files))
	for _, file := range files {
		stats, err := l.LoadFile(ctx, file, g)
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}

	return out, nil
}

// LoadFile registers the individual behind one comparison file and ingests its
// segments.
func (l *Loader) LoadFile(ctx context.Context, path string, g partition.Group) (FileStats, error) {
	name := IndividualName(path)
	if strings.EqualFold(name, partition.ProbandName) {
		return FileStats{}, fmt.Errorf("%s: %q: %w", path, name, ErrReservedName)
	}

	data, err := ibdlinkage.ReadAll(ctx, path, l.Storage)
	if err != nil {
		return FileStats{}, err
	}

	rows, err := Parse(data)
	if err != nil {
		return FileStats{}, fmt.Errorf("%s: %w", path, err)
	}

	stats := FileStats{Individual: name}
	id := l.Store.Register(stats.Individual, g)
	for _, row := range rows {
		err := l.Store.Ingest(row.Chromosome, row.Start, row.End, id)
		if errors.Is(err, partition.ErrUnknownChromosome) {
			stats.Skipped++
			continue
		} else if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.Segments++
	}

	l.logger().WithFields(logrus.Fields{
		"file":       path,
		"individual": stats.Individual,
		"group":      g.String(),
		"segments":   stats.Segments,
		"skipped":    stats.Skipped,
	}).Debugln("Loaded comparison file")

	return stats, nil
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}
