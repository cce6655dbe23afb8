/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import "errors"

// Sentinel errors surfaced by the contract. Every failing operation wraps one
// of these so callers can match with errors.Is; a returned error aborts the
// transaction and discards its writes.
var (
	ErrAlreadyInitialized      = errors.New("contract already initialized")
	ErrNotOperational          = errors.New("contract is not operational")
	ErrUnauthorized            = errors.New("caller is not authorized")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrUnknownAirline          = errors.New("unknown airline")
	ErrAlreadyNominated        = errors.New("airline already nominated")
	ErrDuplicateVote           = errors.New("duplicate vote")
	ErrInsufficientVotes       = errors.New("insufficient votes for admission")
	ErrAirlineNotRegistered    = errors.New("airline not registered")
	ErrUnknownFlight           = errors.New("unknown flight")
	ErrFlightAlreadyRegistered = errors.New("flight already registered")
	ErrAlreadyInsured          = errors.New("passenger already insured for flight")
	ErrPremiumExceedsCap       = errors.New("premium exceeds cap")
	ErrNoQualifyingDelay       = errors.New("flight status is not a qualifying delay")
	ErrNotPayable              = errors.New("policy is not payable")
	ErrAlreadySettled          = errors.New("policy already settled")
	ErrInsufficientPool        = errors.New("insufficient pool balance")
)
