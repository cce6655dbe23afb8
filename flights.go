/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// flightKey derives the deterministic lookup handle for a flight. The
// canonical form "len(airline):airline|len(designator):designator|departure"
// is hashed with SHA-256; length-prefixing keeps fields containing the
// delimiter from colliding, and any party can recompute the key off-chain
// from the same inputs.
func flightKey(airline, designator string, departure int64) string {
	canonical := fmt.Sprintf("%d:%s|%d:%s|%d", len(airline), airline, len(designator), designator, departure)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func parseDeparture(s string) (int64, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: departure timestamp '%s'", ErrInvalidAmount, s)
	}
	return ts, nil
}

func (s *SmartContract) getFlight(ctx contractapi.TransactionContextInterface, key string) (*Flight, error) {
	var flight Flight
	found, err := getJSON(ctx, flightPrefix+key, &flight)
	if err != nil {
		return nil, err
	}
	if !found || !flight.Registered {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlight, key)
	}
	return &flight, nil
}

// ComputeFlightKey is the pure key derivation, callable by anyone.
// departureStr is a unix timestamp string.
func (s *SmartContract) ComputeFlightKey(ctx contractapi.TransactionContextInterface, airline, designator, departureStr string) (string, error) {
	departure, err := parseDeparture(departureStr)
	if err != nil {
		return "", err
	}
	return flightKey(airline, designator, departure), nil
}

// RegisterFlight stores a new flight under its derived key and returns the
// key. Registering the same (airline, designator, departure) twice fails
// rather than overwriting.
func (s *SmartContract) RegisterFlight(ctx contractapi.TransactionContextInterface, airline, designator, departureStr, statusCodeStr string) (string, error) {
	if err := s.requireMutable(ctx); err != nil {
		return "", err
	}
	departure, err := parseDeparture(departureStr)
	if err != nil {
		return "", err
	}
	statusCode, err := strconv.Atoi(statusCodeStr)
	if err != nil {
		return "", fmt.Errorf("%w: status code '%s'", ErrInvalidAmount, statusCodeStr)
	}

	key := flightKey(airline, designator, departure)
	var existing Flight
	found, err := getJSON(ctx, flightPrefix+key, &existing)
	if err != nil {
		return "", err
	}
	if found && existing.Registered {
		return "", fmt.Errorf("%w: %s", ErrFlightAlreadyRegistered, key)
	}

	flight := Flight{
		Registered: true,
		Airline:    airline,
		Designator: designator,
		Departure:  departure,
		StatusCode: statusCode,
		Passengers: []string{},
	}
	if err := putJSON(ctx, flightPrefix+key, flight); err != nil {
		return "", err
	}
	return key, nil
}

// ReportFlightStatus overwrites a flight's status code. Intended caller is
// the oracle layer; a qualifying delay here is what makes SettleFlight mark
// the flight's policies payable.
func (s *SmartContract) ReportFlightStatus(ctx contractapi.TransactionContextInterface, key, statusCodeStr string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}
	statusCode, err := strconv.Atoi(statusCodeStr)
	if err != nil {
		return fmt.Errorf("%w: status code '%s'", ErrInvalidAmount, statusCodeStr)
	}

	flight, err := s.getFlight(ctx, key)
	if err != nil {
		return err
	}
	flight.StatusCode = statusCode
	return putJSON(ctx, flightPrefix+key, flight)
}

// IsFlightRegistered reports whether a flight record exists for the key.
// Callers check this before RegisterFlight to avoid the duplicate error.
func (s *SmartContract) IsFlightRegistered(ctx contractapi.TransactionContextInterface, key string) (bool, error) {
	var flight Flight
	found, err := getJSON(ctx, flightPrefix+key, &flight)
	if err != nil {
		return false, err
	}
	return found && flight.Registered, nil
}

// GetFlight returns the stored flight record.
func (s *SmartContract) GetFlight(ctx contractapi.TransactionContextInterface, key string) (*Flight, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return nil, err
	}
	return s.getFlight(ctx, key)
}
