// Package comparison reads the shared-segment reports of a proband against
// each relative and loads them into a partition store.
package comparison

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/carbocation/ibdlinkage"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/gocarina/gocsv"
)

// Header is the header row of a comparison file. A row exactly equal to it is
// skipped wherever it appears.
var Header = []string{"Comparison", "Chromosome", "Start Point", "End Point", "Genetic Distance", "#SNPs"}

// Row is one shared segment. Only the chromosome and coordinates are parsed;
// the remaining columns are kept as text.
type Row struct {
	Comparison      string
	Chromosome      string
	Start           partition.Coordinate
	End             partition.Coordinate
	GeneticDistance string
	SNPs            string
}

type record struct {
	Comparison      string `csv:"Comparison"`
	Chromosome      string `csv:"Chromosome"`
	StartPoint      string `csv:"Start Point"`
	EndPoint        string `csv:"End Point"`
	GeneticDistance string `csv:"Genetic Distance"`
	SNPs            string `csv:"#SNPs"`
}

func (r record) isHeader() bool {
	return r.Comparison == Header[0] &&
		r.Chromosome == Header[1] &&
		r.StartPoint == Header[2] &&
		r.EndPoint == Header[3] &&
		r.GeneticDistance == Header[4] &&
		r.SNPs == Header[5]
}

// Parse decodes the rows of one comparison file. The delimiter is detected
// from the content. Rows with the wrong number of columns or with coordinates
// that are not non-negative base-10 integers are an error.
func Parse(data []byte) ([]Row, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ibdlinkage.DetermineDelimiter(bytes.NewReader(data))
	cr.FieldsPerRecord = len(Header)

	records := []*record{}
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &records); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if rec.isHeader() {
			continue
		}

		start, err := parseCoordinate(rec.StartPoint)
		if err != nil {
			return nil, fmt.Errorf("row %d: start point: %w", i+1, err)
		}
		end, err := parseCoordinate(rec.EndPoint)
		if err != nil {
			return nil, fmt.Errorf("row %d: end point: %w", i+1, err)
		}

		rows = append(rows, Row{
			Comparison:      rec.Comparison,
			Chromosome:      rec.Chromosome,
			Start:           start,
			End:             end,
			GeneticDistance: rec.GeneticDistance,
			SNPs:            rec.SNPs,
		})
	}

	return rows, nil
}

func parseCoordinate(value string) (partition.Coordinate, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative coordinate %d", n)
	}

	return n, nil
}
