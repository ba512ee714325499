// Package misfit finds the individuals whose carrier status contradicts the
// pattern of a significant cell.
package misfit

import (
	"errors"
	"sort"

	"github.com/carbocation/ibdlinkage/partition"
)

// ErrCountForm is returned for cells that only track membership counts.
var ErrCountForm = errors.New("misfits need identity-form membership")

type Misfits struct {
	// ExpectedCarriers is the group assumed to carry the segment: whichever
	// group carries it more frequently, with ties going to the cases.
	ExpectedCarriers partition.Group

	Cases    []string
	Controls []string
}

// Analyze computes the misfits of a cell. If cases are the expected carriers,
// the case misfits are the cases lacking the segment and the control misfits
// are the controls carrying it; otherwise the case misfits are the cases
// carrying it and the control misfits are the controls lacking it.
func Analyze(cell partition.Cell, roster *partition.Roster) (Misfits, error) {
	members, ok := cell.Membership.(*partition.IdentityMembership)
	if !ok {
		return Misfits{}, ErrCountForm
	}

	cases, controls := members.Members(partition.Case), members.Members(partition.Control)
	allCases, allControls := roster.All(partition.Case), roster.All(partition.Control)

	out := Misfits{ExpectedCarriers: ExpectedCarriers(cell, roster)}
	if out.ExpectedCarriers == partition.Case {
		out.Cases = roster.Names(allCases.Difference(cases))
		out.Controls = roster.Names(controls)
	} else {
		out.Cases = roster.Names(cases)
		out.Controls = roster.Names(allControls.Difference(controls))
	}
	sort.Strings(out.Cases)
	sort.Strings(out.Controls)

	return out, nil
}

// ExpectedCarriers compares a/A with b/B. An empty population has frequency 0.
func ExpectedCarriers(cell partition.Cell, roster *partition.Roster) partition.Group {
	caseFreq := frequency(cell.Count(partition.Case), roster.Population(partition.Case))
	controlFreq := frequency(cell.Count(partition.Control), roster.Population(partition.Control))
	if caseFreq >= controlFreq {
		return partition.Case
	}

	return partition.Control
}

func frequency(n, population int) float64 {
	if population == 0 {
		return 0
	}
	return float64(n) / float64(population)
}
