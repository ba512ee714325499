package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/ibdlinkage/misfit"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/carbocation/ibdlinkage/significance"
)

func sampleResults() []significance.Result {
	return []significance.Result{
		{
			Chromosome:  "1",
			Start:       100,
			End:         200,
			Table:       significance.NewTable(3, 0, 3, 8),
			CaseFreq:    1,
			ControlFreq: 0,
			P:           0.0006,
			Method:      significance.Fisher,
			Significant: true,
			Misfits:     &misfit.Misfits{Controls: []string{}, Cases: []string{}},
		},
		{
			Chromosome:  "2",
			Start:       5000,
			End:         6000,
			Table:       significance.NewTable(1, 8, 3, 8),
			CaseFreq:    1.0 / 3,
			ControlFreq: 1,
			P:           0.06,
			Method:      significance.Fisher,
			Significant: false,
		},
		{
			Chromosome:  "X",
			Start:       10,
			End:         20,
			Table:       significance.NewTable(0, 6, 3, 8),
			CaseFreq:    0,
			ControlFreq: 0.75,
			P:           0.0001,
			Method:      significance.ChiSquared,
			Significant: true,
			Misfits: &misfit.Misfits{
				ExpectedCarriers: partition.Control,
				Cases:            []string{},
				Controls:         []string{"anna", "bob"},
			},
		},
	}
}

func TestWriteTable(t *testing.T) {
	cases := []struct {
		opts     TableOptions
		expected string
	}{
		{
			TableOptions{},
			"Chromosome\tStart\tEnd\tCase freq\tControl freq\tp\n" +
				"1\t100\t200\t1\t0\t0.0006\n" +
				"X\t10\t20\t0\t0.75\t0.0001\n",
		},
		{
			TableOptions{Method: true, Yates: true, Misfits: true},
			"Chromosome\tStart\tEnd\tCase freq\tControl freq\tp\tMethod\tCase misfits\tControl misfits\n" +
				"1\t100\t200\t1\t0\t0.0006\tFisher\t\t\n" +
				"X\t10\t20\t0\t0.75\t0.0001\tYates chi-squared\t\tanna,bob\n",
		},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		wrote, err := WriteTable(&buf, sampleResults(), c.opts)
		if err != nil {
			t.Fatal(err)
		}
		if !wrote {
			t.Errorf("Expected the table to be written with %+v", c.opts)
		}
		if buf.String() != c.expected {
			t.Errorf("Options %+v\nGot:\n%q\nExpected:\n%q", c.opts, buf.String(), c.expected)
		}
	}
}

func TestWriteTableWithoutSignificance(t *testing.T) {
	results := sampleResults()[1:2]

	var buf bytes.Buffer
	wrote, err := WriteTable(&buf, results, TableOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if wrote || buf.Len() != 0 {
		t.Errorf("Expected nothing to be written, got %q", buf.String())
	}
}

func TestWriteStartup(t *testing.T) {
	s := partition.NewStore(partition.Counts, []string{"1", "2"})
	s.AddProband(partition.Case)
	id := s.Register("sib", partition.Case)
	s.Ingest("1", 100, 200, id)
	s.Register("cousin", partition.Control)

	var buf bytes.Buffer
	if err := WriteStartup(&buf, s); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Comparing 4 segments between 2 cases and 1 controls.\n") {
		t.Errorf("Unexpected startup line %q", out)
	}
	if !strings.Contains(out, "less than 10 cases") {
		t.Errorf("Expected a small population warning, got %q", out)
	}
}

func TestWriteStartupLargePopulation(t *testing.T) {
	s := partition.NewStore(partition.Counts, []string{"1"})
	for i := 0; i < 10; i++ {
		s.Register("case", partition.Case)
		s.Register("control", partition.Control)
	}

	var buf bytes.Buffer
	if err := WriteStartup(&buf, s); err != nil {
		t.Fatal(err)
	}
	if expected := "Comparing 1 segments between 10 cases and 10 controls.\n"; buf.String() != expected {
		t.Errorf("Got %q, expected %q", buf.String(), expected)
	}
}

func TestWriteHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistogram(&buf, sampleResults(), 5, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "p-values of 3 tested cells:\n") {
		t.Errorf("Unexpected histogram %q", buf.String())
	}

	buf.Reset()
	if err := WriteHistogram(&buf, nil, 5, 20); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No cells were tested.\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestLayout(t *testing.T) {
	points, err := layout(sampleResults(), PlotConfig{
		Assembly:    "grch37",
		Chromosomes: []string{"1", "2", "X"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(points.x) != 3 || len(points.ticks) != 3 {
		t.Fatalf("Expected 3 points and 3 ticks, got %d and %d", len(points.x), len(points.ticks))
	}
	if points.x[0] != 150 {
		t.Errorf("Expected chr1 cell at 150, got %f", points.x[0])
	}
	if expected := 249250621.0 + 5500; points.x[1] != expected {
		t.Errorf("Expected chr2 cell at %f, got %f", expected, points.x[1])
	}
	for i := 1; i < len(points.ticks); i++ {
		if points.ticks[i].Value <= points.ticks[i-1].Value {
			t.Errorf("Ticks are not increasing: %v", points.ticks)
		}
	}
	if math.Abs(points.y[2]-4) > 1e-12 {
		t.Errorf("Expected -log10(0.0001) = 4, got %f", points.y[2])
	}
}

func TestLayoutUnknownAssembly(t *testing.T) {
	if _, err := layout(nil, PlotConfig{Assembly: "hg00"}); err == nil {
		t.Error("Expected an error for an unknown assembly")
	}
}

func TestWritePlot(t *testing.T) {
	var buf bytes.Buffer
	err := WritePlot(&buf, sampleResults(), PlotConfig{
		Assembly:    "grch38",
		Chromosomes: partition.Chromosomes,
		Threshold:   0.05 / 23,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Output is not a PNG")
	}
}

func TestParseTable(t *testing.T) {
	project, dataset, table, err := ParseTable("proj.ds.tab")
	if err != nil {
		t.Fatal(err)
	}
	if project != "proj" || dataset != "ds" || table != "tab" {
		t.Errorf("Got %s %s %s", project, dataset, table)
	}

	for _, bad := range []string{"", "proj.ds", "proj..tab", "a.b.c.d"} {
		if _, _, _, err := ParseTable(bad); err == nil {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResults(), false)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if rows[0].CaseWith != 3 || rows[0].ControlWithout != 8 || rows[0].Method != "Fisher" {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	if rows[1].CaseMisfits.Valid {
		t.Errorf("Expected no misfits on an untested row")
	}
	if rows[2].Method != "Chi-squared" || rows[2].ControlMisfits.StringVal != "anna,bob" {
		t.Errorf("Unexpected last row %+v", rows[2])
	}
}
