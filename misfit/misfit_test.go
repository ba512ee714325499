package misfit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/carbocation/ibdlinkage/partition"
)

func build(t *testing.T, form partition.Form) *partition.Store {
	t.Helper()

	s := partition.NewStore(form, []string{"1"})
	s.AddProband(partition.Case)
	for _, v := range []struct {
		name  string
		group partition.Group
		carry bool
	}{
		{"ann", partition.Case, true},
		{"ben", partition.Case, false},
		{"cat", partition.Case, true},
		{"dan", partition.Control, false},
		{"eve", partition.Control, true},
		{"fay", partition.Control, false},
	} {
		id := s.Register(v.name, v.group)
		if !v.carry {
			continue
		}
		if err := s.Ingest("1", 100, 200, id); err != nil {
			t.Fatal(err)
		}
	}

	return s
}

func middle(s *partition.Store) partition.Cell {
	p, _ := s.Partition("1")
	return p.Cells()[1]
}

func TestCasesExpected(t *testing.T) {
	s := build(t, partition.Identities)
	cell := middle(s)

	m, err := Analyze(cell, s.Roster())
	if err != nil {
		t.Fatal(err)
	}

	if m.ExpectedCarriers != partition.Case {
		t.Fatalf("Expected cases to be the carriers, got %v", m.ExpectedCarriers)
	}
	if !reflect.DeepEqual(m.Cases, []string{"ben"}) {
		t.Errorf("Case misfits: %v", m.Cases)
	}
	if !reflect.DeepEqual(m.Controls, []string{"eve"}) {
		t.Errorf("Control misfits: %v", m.Controls)
	}

	// Nothing is lost: misfits plus carriers make up all cases.
	carriers := s.Roster().Names(cell.Membership.(*partition.IdentityMembership).Members(partition.Case))
	if len(carriers)+len(m.Cases) != s.Population(partition.Case) {
		t.Errorf("%v + %v does not cover all %d cases", carriers, m.Cases, s.Population(partition.Case))
	}
}

func TestControlsExpected(t *testing.T) {
	s := partition.NewStore(partition.Identities, []string{"1"})
	s.AddProband(partition.Control)
	a := s.Register("ann", partition.Case)
	b := s.Register("bob", partition.Control)
	c := s.Register("cal", partition.Control)
	for _, id := range []int{a, b, c} {
		if err := s.Ingest("1", 10, 20, id); err != nil {
			t.Fatal(err)
		}
	}
	// Only the proband and bob carry the second segment, so controls are the
	// carriers (2/3 vs 0/1).
	if err := s.Ingest("1", 30, 40, b); err != nil {
		t.Fatal(err)
	}

	p, _ := s.Partition("1")
	var cell partition.Cell
	for _, candidate := range p.Cells() {
		if candidate.Start == 30 {
			cell = candidate
		}
	}

	m, err := Analyze(cell, s.Roster())
	if err != nil {
		t.Fatal(err)
	}
	if m.ExpectedCarriers != partition.Control {
		t.Fatalf("Expected controls to be the carriers, got %v", m.ExpectedCarriers)
	}
	if len(m.Cases) != 0 {
		t.Errorf("Case misfits: %v", m.Cases)
	}
	if !reflect.DeepEqual(m.Controls, []string{"cal"}) {
		t.Errorf("Control misfits: %v", m.Controls)
	}
}

func TestTieFavorsCases(t *testing.T) {
	s := partition.NewStore(partition.Identities, []string{"1"})
	a := s.Register("ann", partition.Case)
	s.Register("ben", partition.Case)
	c := s.Register("cat", partition.Control)
	s.Register("dan", partition.Control)
	for _, id := range []int{a, c} {
		if err := s.Ingest("1", 10, 20, id); err != nil {
			t.Fatal(err)
		}
	}

	p, _ := s.Partition("1")
	if g := ExpectedCarriers(p.Cells()[1], s.Roster()); g != partition.Case {
		t.Fatalf("Expected a tie to favor cases, got %v", g)
	}
}

func TestCountFormIsRejected(t *testing.T) {
	s := build(t, partition.Counts)
	if _, err := Analyze(middle(s), s.Roster()); !errors.Is(err, ErrCountForm) {
		t.Fatalf("Expected ErrCountForm, got %v", err)
	}
}
