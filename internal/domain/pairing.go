package domain

import "time"

// PairingStatusDraft marks pairings that are still open for assignment.
const PairingStatusDraft = "draft"

// Pairing is a multi-leg flight sequence flown by one crew member as a unit.
type Pairing struct {
	ID                     string
	StartDate              time.Time
	EndDate                time.Time
	StartBase              string
	EndBase                string
	TotalFlightHours       float64
	TotalCreditHours       float64
	RequiredQualifications []string
	Status                 string
	Legs                   []PairingLeg
}

// PairingLeg is a single flight within a pairing.
type PairingLeg struct {
	Sequence           int
	FlightNumber       string
	DepartureAirport   string
	ArrivalAirport     string
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
}
