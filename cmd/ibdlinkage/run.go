package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ibdlinkage"
	"github.com/carbocation/ibdlinkage/comparison"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/carbocation/ibdlinkage/report"
	"github.com/carbocation/ibdlinkage/significance"
	"github.com/sirupsen/logrus"
)

const (
	histogramBins  = 20
	histogramWidth = 50
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func run(ctx context.Context, opts Options, log logrus.FieldLogger, std streams) error {
	var group partition.Group
	var counted bool
	var err error
	if opts.Proband == "" {
		group, counted, err = promptProband(std.in, std.err)
	} else {
		group, counted, err = parseProband(opts.Proband)
	}
	if err != nil {
		return fmt.Errorf("resolving the proband: %w", err)
	}

	var client *storage.Client
	if ibdlinkage.IsGoogleStoragePath(opts.Cases) || ibdlinkage.IsGoogleStoragePath(opts.Controls) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	store := partition.NewStore(opts.Form(), partition.Chromosomes)
	loader := &comparison.Loader{
		Store:     store,
		Recursive: opts.Recursive,
		Storage:   client,
		Log:       log,
	}

	for _, dir := range []struct {
		path  string
		group partition.Group
	}{
		{opts.Cases, partition.Case},
		{opts.Controls, partition.Control},
	} {
		files, err := loader.LoadDirectory(ctx, dir.path, dir.group)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"dir": dir.path, "group": dir.group.String(), "files": len(files)}).Debugln("Loaded directory")
	}

	if counted {
		store.AddProband(group)
	}

	if err := report.WriteStartup(std.err, store); err != nil {
		return err
	}

	summary, err := store.Summarize()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"cells":           summary.Cells,
		"interior_cells":  summary.InteriorCells,
		"median_interior": summary.MedianInteriorSize,
	}).Debugln("Partitioned the genome")

	cfg := opts.ScanConfig()
	results, err := significance.Scan(store, cfg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"tested":      len(results),
		"significant": len(significance.Significant(results)),
		"threshold":   cfg.Threshold(),
	}).Debugln("Scanned")

	wrote, err := report.WriteTable(std.out, results, report.TableOptions{
		Method:  cfg.Method == significance.Auto,
		Yates:   cfg.Yates,
		Misfits: cfg.Misfits,
	})
	if err != nil {
		return err
	}
	if !wrote {
		fmt.Fprintln(std.err, report.NoDifference)
	}

	if opts.Histogram {
		if err := report.WriteHistogram(std.err, results, histogramBins, histogramWidth); err != nil {
			return err
		}
	}

	if opts.Plot != "" {
		if err := writePlot(opts, store, results, cfg.Threshold()); err != nil {
			return err
		}
	}

	if opts.BigQuery != "" {
		if err := report.InsertBigQuery(ctx, opts.BigQuery, results, cfg.Yates); err != nil {
			return err
		}
		log.WithField("table", opts.BigQuery).Infoln("Inserted", len(results), "cells into BigQuery")
	}

	return nil
}

func writePlot(opts Options, store *partition.Store, results []significance.Result, threshold float64) error {
	path, err := ibdlinkage.ExpandHome(opts.Plot)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.WritePlot(f, results, report.PlotConfig{
		Assembly:    opts.Assembly,
		Chromosomes: store.Chromosomes(),
		Threshold:   threshold,
	}); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
