package ibdlinkage

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters that comparison exports are known to use, in order of preference.
var knownDelimiters = []string{",", "\t", ";", "|"}

// DetermineDelimiter returns the most likely rune that would delimit the values
// in the reader, assuming a CSV-like file. Only known delimiters are
// considered, so that spaces inside values are never picked; comma is the
// fallback.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, known := range knownDelimiters {
		for _, candidate := range delimiters {
			if candidate == known {
				return rune(known[0])
			}
		}
	}

	return ','
}
