package schematic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrShort reports a pin that belongs to more than one net.
	ErrShort = errors.New("schematic: pin shorts nets")
	// ErrDuplicateRef reports a reference designator used by more than one component.
	ErrDuplicateRef = errors.New("schematic: duplicate reference designator")
	// ErrDanglingPin reports a net pin whose component is not in the schematic.
	ErrDanglingPin = errors.New("schematic: pin references unknown component")
)

// Short describes a pin that is a member of several nets.
type Short struct {
	Pin  Pin
	Nets []string
}

func (s Short) String() string {
	return fmt.Sprintf("%s joins %s", s.Pin, strings.Join(s.Nets, ", "))
}

// Shorts returns every pin found on more than one net. Results are ordered by
// the first net each pin appears on, then by pin order within that net.
func (s *Schematic) Shorts() []Short {
	membership := make(map[Pin][]string)
	var order []Pin
	for _, net := range s.nets {
		for _, pin := range net.pins {
			if _, seen := membership[pin]; !seen {
				order = append(order, pin)
			}
			membership[pin] = append(membership[pin], net.name)
		}
	}

	var shorts []Short
	for _, pin := range order {
		if nets := membership[pin]; len(nets) > 1 {
			shorts = append(shorts, Short{Pin: pin, Nets: nets})
		}
	}
	return shorts
}

// DuplicateRefs returns, sorted, the reference designators used by more than
// one component.
func (s *Schematic) DuplicateRefs() []string {
	counts := make(map[string]int)
	for _, c := range s.components {
		counts[c.Ref]++
	}

	var dups []string
	for ref, n := range counts {
		if n > 1 {
			dups = append(dups, ref)
		}
	}
	sort.Strings(dups)
	return dups
}

// Validate checks the structural integrity of the schematic: no shorted pins,
// unique reference designators and no net pins on components that were never
// placed. All problems are reported together.
func (s *Schematic) Validate() error {
	var errs []error

	for _, short := range s.Shorts() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrShort, short))
	}

	for _, ref := range s.DuplicateRefs() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateRef, ref))
	}

	placed := make(map[string]bool, len(s.components))
	for _, c := range s.components {
		placed[c.Ref] = true
	}
	for _, net := range s.nets {
		for _, pin := range net.pins {
			if !placed[pin.Ref] {
				errs = append(errs, fmt.Errorf("%w: %s on net %s", ErrDanglingPin, pin, net.name))
			}
		}
	}

	return errors.Join(errs...)
}
