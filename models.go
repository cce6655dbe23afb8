/*
SPDX-License-Identifier: Apache-2.0
*/

package main

// Airline lifecycle states. Transitions are one-way:
// nominated -> registered -> funded.
const (
	AirlineNominated  = "nominated"
	AirlineRegistered = "registered"
	AirlineFunded     = "funded"
)

// Flight status codes as reported by the oracle layer. Only StatusLateAirline
// qualifies policies for payout.
const (
	StatusUnknown       = 0
	StatusOnTime        = 10
	StatusLateAirline   = 20
	StatusLateWeather   = 30
	StatusLateTechnical = 40
	StatusLateOther     = 50
)

// Config holds the pool-level parameters fixed at initialization.
type Config struct {
	// MinimumStake an airline must accumulate before it becomes funded.
	MinimumStake uint64 `json:"minimumStake"`
	// PremiumCap bounds a single policy's premium (and therefore its payout).
	PremiumCap uint64 `json:"premiumCap"`
	// UnconditionalAdmissions is how many airlines are admitted without votes;
	// after that, promotion needs votes from at least half the funded airlines.
	UnconditionalAdmissions int `json:"unconditionalAdmissions"`
}

// Airline is a pool participant. Airlines are never deleted, only advanced,
// so a recreated identity can never replay old votes.
type Airline struct {
	Address     string   `json:"address"`
	Status      string   `json:"status"`
	Voters      []string `json:"voters"`
	Funds       uint64   `json:"funds"`
	Counted     bool     `json:"counted"` // registered counter already incremented
	NominatedBy string   `json:"nominatedBy"`
}

// Flight is keyed by the hash of (airline, designator, departure) so any
// party can recompute the key off-chain.
type Flight struct {
	Registered bool     `json:"registered"`
	Airline    string   `json:"airline"`
	Designator string   `json:"designator"`
	Departure  int64    `json:"departure"`
	StatusCode int      `json:"statusCode"`
	Passengers []string `json:"passengers"`
}

// Policy is one passenger's coverage on one flight. Keyed by the composite
// (flight key, passenger) pair; a passenger holds independent policies per
// flight.
type Policy struct {
	Passenger string `json:"passenger"`
	FlightKey string `json:"flightKey"`
	Premium   uint64 `json:"premium"`
	Payable   bool   `json:"payable"`
	Settled   bool   `json:"settled"`
}

// AuthRecord marks an address as an authorized caller.
type AuthRecord struct {
	Address   string `json:"address"`
	GrantedBy string `json:"grantedBy"`
}

// PayoutReceipt is written after a successful withdrawal; the orchestration
// layer consumes it to perform the actual value transfer.
type PayoutReceipt struct {
	Passenger string `json:"passenger"`
	FlightKey string `json:"flightKey"`
	Amount    uint64 `json:"amount"`
}
