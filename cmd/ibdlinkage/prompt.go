package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/ibdlinkage/partition"
)

// parseProband resolves an affection status. An unknown proband is not
// counted in either group.
func parseProband(value string) (partition.Group, bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "case":
		return partition.Case, true, nil
	case "control":
		return partition.Control, true, nil
	case "unknown":
		return partition.Case, false, nil
	}

	return partition.Case, false, fmt.Errorf("proband must be case, control or unknown, got %q", value)
}

// promptProband asks until a valid answer is given. Running out of input is
// an error.
func promptProband(in io.Reader, out io.Writer) (partition.Group, bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Is the proband a case, a control or unknown? ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return partition.Case, false, err
			}
			return partition.Case, false, io.ErrUnexpectedEOF
		}

		g, counted, err := parseProband(scanner.Text())
		if err == nil {
			return g, counted, nil
		}
		fmt.Fprintln(out, "Please answer case, control or unknown.")
	}
}
