package partition

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Group is the side of the case/control split that an individual belongs to.
type Group int

const (
	Case Group = iota
	Control
)

func (g Group) String() string {
	switch g {
	case Case:
		return "case"
	case Control:
		return "control"
	}

	return fmt.Sprintf("Group(%d)", int(g))
}

// Form selects the representation used for per-cell membership.
type Form int

const (
	// Identities tracks exactly which individuals cover a cell. Misfit
	// diagnostics need this form.
	Identities Form = iota

	// Counts only tracks how many individuals of each group cover a cell.
	Counts
)

// Membership records which (or how many) individuals of each group cover one
// cell. Implementations must return an independent value from Clone, since the
// two halves of a split cell diverge afterwards.
type Membership interface {
	Add(g Group, individual int)
	Count(g Group) int
	Clone() Membership
	Equal(other Membership) bool
}

// NewMembership returns an empty membership of the requested form.
func NewMembership(form Form) Membership {
	if form == Counts {
		return &CountMembership{}
	}

	return &IdentityMembership{
		cases:    bitset.New(0),
		controls: bitset.New(0),
	}
}

// CountMembership is the count form of Membership.
type CountMembership struct {
	Cases    int
	Controls int
}

func (m *CountMembership) Add(g Group, individual int) {
	if g == Case {
		m.Cases++
		return
	}
	m.Controls++
}

func (m *CountMembership) Count(g Group) int {
	if g == Case {
		return m.Cases
	}
	return m.Controls
}

func (m *CountMembership) Clone() Membership {
	out := *m
	return &out
}

func (m *CountMembership) Equal(other Membership) bool {
	o, ok := other.(*CountMembership)
	if !ok {
		return false
	}
	return *m == *o
}

// IdentityMembership is the identity form of Membership. Individuals are
// identified by their index in the Roster.
type IdentityMembership struct {
	cases    *bitset.BitSet
	controls *bitset.BitSet
}

func (m *IdentityMembership) set(g Group) *bitset.BitSet {
	if g == Case {
		return m.cases
	}
	return m.controls
}

func (m *IdentityMembership) Add(g Group, individual int) {
	m.set(g).Set(uint(individual))
}

func (m *IdentityMembership) Count(g Group) int {
	return int(m.set(g).Count())
}

// Members returns the set of roster indices of group g that cover the cell.
// The returned set must not be modified.
func (m *IdentityMembership) Members(g Group) *bitset.BitSet {
	return m.set(g)
}

func (m *IdentityMembership) Clone() Membership {
	return &IdentityMembership{
		cases:    m.cases.Clone(),
		controls: m.controls.Clone(),
	}
}

func (m *IdentityMembership) Equal(other Membership) bool {
	o, ok := other.(*IdentityMembership)
	if !ok {
		return false
	}
	// Equal on bitsets also compares capacity, which depends on history.
	return m.cases.SymmetricDifferenceCardinality(o.cases) == 0 &&
		m.controls.SymmetricDifferenceCardinality(o.controls) == 0
}
