package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/ibdlinkage/significance"
	"google.golang.org/api/googleapi"
)

// Row is one tested cell as stored in BigQuery.
type Row struct {
	Chromosome     string              `bigquery:"chromosome"`
	Start          int64               `bigquery:"start"`
	End            int64               `bigquery:"end"`
	CaseWith       int64               `bigquery:"case_with"`
	ControlWith    int64               `bigquery:"control_with"`
	CaseWithout    int64               `bigquery:"case_without"`
	ControlWithout int64               `bigquery:"control_without"`
	CaseFreq       float64             `bigquery:"case_freq"`
	ControlFreq    float64             `bigquery:"control_freq"`
	P              float64             `bigquery:"p"`
	Method         string              `bigquery:"method"`
	Significant    bool                `bigquery:"significant"`
	CaseMisfits    bigquery.NullString `bigquery:"case_misfits"`
	ControlMisfits bigquery.NullString `bigquery:"control_misfits"`
}

// Rows converts results into BigQuery rows.
func Rows(results []significance.Result, yates bool) []*Row {
	out := make([]*Row, 0, len(results))
	for _, r := range results {
		row := &Row{
			Chromosome:     r.Chromosome,
			Start:          r.Start,
			End:            r.End,
			CaseWith:       int64(r.Table.CaseWith),
			ControlWith:    int64(r.Table.ControlWith),
			CaseWithout:    int64(r.Table.CaseWithout),
			ControlWithout: int64(r.Table.ControlWithout),
			CaseFreq:       r.CaseFreq,
			ControlFreq:    r.ControlFreq,
			P:              r.P,
			Method:         r.Method.Label(yates),
			Significant:    r.Significant,
		}
		if r.Misfits != nil {
			row.CaseMisfits = bigquery.NullString{StringVal: strings.Join(r.Misfits.Cases, ","), Valid: true}
			row.ControlMisfits = bigquery.NullString{StringVal: strings.Join(r.Misfits.Controls, ","), Valid: true}
		}
		out = append(out, row)
	}

	return out
}

// ParseTable splits a fully qualified "project.dataset.table" name.
func ParseTable(name string) (project, dataset, table string, err error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("BigQuery table %q is not of the form project.dataset.table", name)
	}
	for _, part := range parts {
		if part == "" {
			return "", "", "", fmt.Errorf("BigQuery table %q is not of the form project.dataset.table", name)
		}
	}

	return parts[0], parts[1], parts[2], nil
}

// InsertBigQuery streams every tested cell into the named table, creating
// the table if it does not exist yet.
func InsertBigQuery(ctx context.Context, name string, results []significance.Result, yates bool) error {
	project, dataset, tableName, err := ParseTable(name)
	if err != nil {
		return err
	}

	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return fmt.Errorf("connecting to BigQuery: %w", err)
	}
	defer client.Close()

	table := client.Dataset(dataset).Table(tableName)
	if _, err := table.Metadata(ctx); err != nil {
		var apiErr *googleapi.Error
		if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
			return fmt.Errorf("looking up %s: %w", name, err)
		}

		schema, err := bigquery.InferSchema(Row{})
		if err != nil {
			return err
		}
		if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}

	rows := Rows(results, yates)
	if len(rows) == 0 {
		return nil
	}

	return table.Inserter().Put(ctx, rows)
}
