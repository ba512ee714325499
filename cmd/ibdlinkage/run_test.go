package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

const header = "Comparison,Chromosome,Start Point,End Point,Genetic Distance,#SNPs\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// family has two siblings sharing chr1:100-200 with an affected proband and
// eight unaffected cousins sharing chr2:5000-6000.
func family(t *testing.T) Options {
	dir := t.TempDir()
	for _, name := range []string{"sib1", "sib2"} {
		writeFile(t, filepath.Join(dir, "cases", name+".csv"), header+"proband vs "+name+",1,100,200,1.0,10\n")
	}
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("cousin%d", i)
		writeFile(t, filepath.Join(dir, "controls", name+".CSV"), header+"proband vs "+name+",2,5000,6000,1.0,10\n")
	}

	opts := defaultOptions()
	opts.Cases = filepath.Join(dir, "cases")
	opts.Controls = filepath.Join(dir, "controls")
	opts.Proband = "case"

	return opts
}

func runFamily(t *testing.T, opts Options, stdin string) (string, string) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), opts, log, streams{in: strings.NewReader(stdin), out: &stdout, err: &stderr}); err != nil {
		t.Fatal(err)
	}

	return stdout.String(), stderr.String()
}

func TestRunWithCorrection(t *testing.T) {
	stdout, stderr := runFamily(t, family(t), "")

	if stdout != "" {
		t.Errorf("Expected no table, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "Comparing 27 segments between 3 cases and 8 controls.\n") {
		t.Errorf("Unexpected startup line in %q", stderr)
	}
	if !strings.Contains(stderr, "WARNING") {
		t.Errorf("Expected a small population warning in %q", stderr)
	}
	if !strings.Contains(stderr, "There is no significant difference between the cases and the controls.") {
		t.Errorf("Expected the no difference message in %q", stderr)
	}
}

func TestRunWithoutCorrection(t *testing.T) {
	opts := family(t)
	opts.NoBonferroni = true
	opts.Misfits = true
	opts.Histogram = true
	opts.Plot = filepath.Join(t.TempDir(), "scan.png")

	stdout, stderr := runFamily(t, opts, "")

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected a header and one row, got %q", stdout)
	}
	if lines[0] != "Chromosome\tStart\tEnd\tCase freq\tControl freq\tp\tMethod\tCase misfits\tControl misfits" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1\t100\t200\t1\t0\t") || !strings.HasSuffix(lines[1], "\tFisher\t\t") {
		t.Errorf("Unexpected row %q", lines[1])
	}
	if !strings.Contains(stderr, "p-values of") {
		t.Errorf("Expected a histogram in %q", stderr)
	}

	png, err := os.ReadFile(opts.Plot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Plot is not a PNG")
	}
}

func TestRunPromptsForProband(t *testing.T) {
	opts := family(t)
	opts.Proband = ""
	opts.Counts = true

	_, stderr := runFamily(t, opts, "unknown\n")
	if !strings.Contains(stderr, "Is the proband") {
		t.Errorf("Expected a prompt in %q", stderr)
	}
	if !strings.Contains(stderr, "between 2 cases and 8 controls.") {
		t.Errorf("An unknown proband should not be counted: %q", stderr)
	}
}

func TestRunFailsOnMissingDirectory(t *testing.T) {
	opts := family(t)
	opts.Cases = filepath.Join(t.TempDir(), "missing")

	log := logrus.New()
	log.SetOutput(io.Discard)
	err := run(context.Background(), opts, log, streams{in: strings.NewReader(""), out: io.Discard, err: io.Discard})
	if err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
