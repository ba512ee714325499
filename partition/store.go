package partition

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrUnknownChromosome is returned when a segment names a chromosome that is
// not part of the scan.
var ErrUnknownChromosome = errors.New("chromosome is not scanned")

// Store owns one Partition per scanned chromosome together with the Roster of
// individuals whose segments were ingested.
type Store struct {
	form        Form
	roster      *Roster
	chromosomes []string
	partitions  map[string]*Partition
}

// NewStore creates a single-cell partition for every chromosome.
func NewStore(form Form, chromosomes []string) *Store {
	ordered := append([]string(nil), chromosomes...)
	SortChromosomes(ordered)

	s := &Store{
		form:        form,
		roster:      NewRoster(),
		chromosomes: ordered,
		partitions:  make(map[string]*Partition, len(ordered)),
	}
	for _, chr := range ordered {
		s.partitions[chr] = NewPartition(chr, NewMembership(form))
	}

	return s
}

func (s *Store) Form() Form {
	return s.form
}

func (s *Store) Roster() *Roster {
	return s.roster
}

// Chromosomes returns the scanned chromosomes in display order.
func (s *Store) Chromosomes() []string {
	return s.chromosomes
}

func (s *Store) Partition(chromosome string) (*Partition, bool) {
	p, ok := s.partitions[chromosome]
	return p, ok
}

// Register adds an individual to the roster and returns its identifier.
func (s *Store) Register(name string, g Group) int {
	return s.roster.Add(name, g)
}

// AddProband registers the proband in group g. The proband shares every
// segment with itself, so it covers every cell of every chromosome.
func (s *Store) AddProband(g Group) int {
	id := s.roster.Add(ProbandName, g)
	for _, p := range s.partitions {
		p.AddEverywhere(g, id)
	}

	return id
}

// Ingest applies a segment of a registered individual to its chromosome.
func (s *Store) Ingest(chromosome string, start, end Coordinate, individual int) error {
	p, ok := s.partitions[chromosome]
	if !ok {
		return fmt.Errorf("%q: %w", chromosome, ErrUnknownChromosome)
	}
	p.Ingest(start, end, s.roster.Individual(individual).Group, individual)

	return nil
}

// Population is the number of individuals loaded into group g, including the
// proband.
func (s *Store) Population(g Group) int {
	return s.roster.Population(g)
}

// Summary describes the size of the partitions.
type Summary struct {
	Cells              int
	InteriorCells      int
	MedianInteriorSize float64
}

func (s *Store) Summarize() (Summary, error) {
	var out Summary
	sizes := make(stats.Float64Data, 0)
	for _, chr := range s.chromosomes {
		for _, cell := range s.partitions[chr].Cells() {
			out.Cells++
			if !cell.Interior() {
				continue
			}
			out.InteriorCells++
			sizes = append(sizes, float64(cell.End-cell.Start+1))
		}
	}

	if len(sizes) == 0 {
		return out, nil
	}

	median, err := stats.Median(sizes)
	if err != nil {
		return out, err
	}
	out.MedianInteriorSize = median

	return out, nil
}
