// Package chrpos knows the lengths of the human chromosomes in the GRCh37 and
// GRCh38 assemblies.
package chrpos

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/carbocation/pfx"
)

//go:embed lookups/*
var embeddedTemplates embed.FS

// Lengths maps chromosome names ("1".."22", "X", "Y", "MT") to their length in
// base pairs. Valid values for assembly are grch37 and grch38.
func Lengths(assembly string) (map[string]int64, error) {
	fileBytes, err := embeddedTemplates.ReadFile("lookups/" + assembly)
	if err != nil {
		return nil, fmt.Errorf("unknown assembly %q: %w", assembly, err)
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = '\t'
	entries, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	header := make(map[string]int)
	out := make(map[string]int64)
	for i, v := range entries {
		if i == 0 {
			for key, name := range v {
				header[name] = key
			}
			continue
		}

		end, err := strconv.ParseInt(v[header["chromEnd"]], 10, 64)
		if err != nil {
			return nil, pfx.Err(err)
		}
		out[v[header["name"]]] = end
	}

	return out, nil
}

// Offsets lays the given chromosomes end to end, in the order given, and
// returns the genome-wide position at which each one starts. Chromosomes
// without a known length are given length fallback.
func Offsets(assembly string, chromosomes []string, fallback int64) (map[string]int64, int64, error) {
	lengths, err := Lengths(assembly)
	if err != nil {
		return nil, 0, err
	}

	offsets := make(map[string]int64, len(chromosomes))
	var total int64
	for _, chr := range chromosomes {
		offsets[chr] = total
		length, exists := lengths[chr]
		if !exists {
			length = fallback
		}
		total += length
	}

	return offsets, total, nil
}
