package partition

import "github.com/bits-and-blooms/bitset"

// ProbandName is the identifier given to the proband.
const ProbandName = "Proband"

// Individual is one member of the case or control population.
type Individual struct {
	Name  string
	Group Group
}

// Roster holds every individual loaded for a run, in load order. An
// individual's index in the roster is its identifier in identity-form
// memberships.
type Roster struct {
	individuals []Individual
	cases       *bitset.BitSet
	controls    *bitset.BitSet
}

func NewRoster() *Roster {
	return &Roster{
		cases:    bitset.New(0),
		controls: bitset.New(0),
	}
}

// Add registers an individual and returns its index.
func (r *Roster) Add(name string, g Group) int {
	id := len(r.individuals)
	r.individuals = append(r.individuals, Individual{Name: name, Group: g})
	if g == Case {
		r.cases.Set(uint(id))
	} else {
		r.controls.Set(uint(id))
	}

	return id
}

// Population is the number of individuals loaded into group g.
func (r *Roster) Population(g Group) int {
	return int(r.All(g).Count())
}

// All returns the indices of every individual of group g. The returned set
// must not be modified.
func (r *Roster) All(g Group) *bitset.BitSet {
	if g == Case {
		return r.cases
	}
	return r.controls
}

func (r *Roster) Individual(id int) Individual {
	return r.individuals[id]
}

func (r *Roster) Len() int {
	return len(r.individuals)
}

// Names resolves a set of indices to individual names, in index order.
func (r *Roster) Names(ids *bitset.BitSet) []string {
	out := make([]string, 0, ids.Count())
	for i, ok := ids.NextSet(0); ok; i, ok = ids.NextSet(i + 1) {
		out = append(out, r.individuals[i].Name)
	}

	return out
}
