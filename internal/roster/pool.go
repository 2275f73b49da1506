// Package roster contains the first-fit candidate pool used when assigning
// crew to pairings.
package roster

import "github.com/raviagarwal526/aioscrew/internal/domain"

// Eligible reports whether a candidate may fly the given pairing beyond the
// base match the pool already applies.
type Eligible func(crew domain.CrewMember, pairing domain.Pairing) bool

// Pool is an ordered set of candidate crew. When exclusive, a crew member
// picked for one pairing is removed from consideration for the rest of the
// run.
type Pool struct {
	crew      []domain.CrewMember
	removed   map[int]struct{}
	exclusive bool
}

// NewPool creates a pool over crew in the given order.
func NewPool(crew []domain.CrewMember, exclusive bool) *Pool {
	return &Pool{
		crew:      crew,
		removed:   make(map[int]struct{}),
		exclusive: exclusive,
	}
}

// Pick returns the first remaining candidate whose base equals the pairing's
// start base and who passes eligible (when non-nil). ok is false when no
// candidate qualifies.
func (p *Pool) Pick(pairing domain.Pairing, eligible Eligible) (domain.CrewMember, bool) {
	for i, c := range p.crew {
		if _, gone := p.removed[i]; gone {
			continue
		}
		if c.Base != pairing.StartBase {
			continue
		}
		if eligible != nil && !eligible(c, pairing) {
			continue
		}
		if p.exclusive {
			p.removed[i] = struct{}{}
		}
		return c, true
	}
	return domain.CrewMember{}, false
}

// Remaining returns the number of candidates still available.
func (p *Pool) Remaining() int {
	return len(p.crew) - len(p.removed)
}
