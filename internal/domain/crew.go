package domain

import (
	"time"
)

// QualificationStatusActive is the only qualification status that counts
// toward eligibility.
const QualificationStatusActive = "active"

// CrewMember is a crew member eligible for rostering.
type CrewMember struct {
	ID        string
	FirstName string
	LastName  string
	Role      string
	Base      string
	Status    string
}

// FullName returns the crew member's display name, falling back to the ID.
func (c *CrewMember) FullName() string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		return c.ID
	}
	return name
}

// Qualification is a crew member's type rating or certificate.
type Qualification struct {
	CrewID     string
	Code       string
	Status     string
	ExpiryDate *time.Time
}

// IsValidOn returns true if the qualification is active and not expired on
// the given date. A qualification expiring on the date itself is still valid.
func (q *Qualification) IsValidOn(day time.Time) bool {
	if q.Status != QualificationStatusActive {
		return false
	}
	if q.ExpiryDate == nil {
		return true
	}
	return !DateOnly(*q.ExpiryDate).Before(DateOnly(day))
}

// HoldsAll returns true if every code in required is covered by a
// qualification in quals that is valid on day.
func HoldsAll(quals []Qualification, required []string, day time.Time) bool {
	valid := make(map[string]bool, len(quals))
	for i := range quals {
		if quals[i].IsValidOn(day) {
			valid[quals[i].Code] = true
		}
	}
	for _, code := range required {
		if !valid[code] {
			return false
		}
	}
	return true
}

// FindAvailableParams contains parameters for resolving the available crew pool.
type FindAvailableParams struct {
	Start          time.Time
	End            time.Time
	Base           string   // Optional exact match
	Qualifications []string // Optional; all must be held
}
