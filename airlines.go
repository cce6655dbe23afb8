/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func (s *SmartContract) getAirline(ctx contractapi.TransactionContextInterface, address string) (*Airline, error) {
	var airline Airline
	found, err := getJSON(ctx, airlinePrefix+address, &airline)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAirline, address)
	}
	return &airline, nil
}

// NominateAirline creates a new airline record in nominated status. Airlines
// are permanent once nominated; there is no removal.
func (s *SmartContract) NominateAirline(ctx contractapi.TransactionContextInterface, address string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}

	existing, err := ctx.GetStub().GetState(airlinePrefix + address)
	if err != nil {
		return fmt.Errorf("failed to read airline %s: %v", address, err)
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyNominated, address)
	}

	caller, err := s.callerID(ctx)
	if err != nil {
		return err
	}
	airline := Airline{
		Address:     address,
		Status:      AirlineNominated,
		Voters:      []string{},
		NominatedBy: caller,
	}
	return putJSON(ctx, airlinePrefix+address, airline)
}

// VoteForAirline records one vote toward an airline's admission and returns
// the new vote count. Each voter address counts at most once per airline;
// casting a vote never changes status by itself.
func (s *SmartContract) VoteForAirline(ctx contractapi.TransactionContextInterface, airlineAddress, voterAddress string) (int, error) {
	if err := s.requireMutable(ctx); err != nil {
		return 0, err
	}

	airline, err := s.getAirline(ctx, airlineAddress)
	if err != nil {
		return 0, err
	}
	for _, v := range airline.Voters {
		if v == voterAddress {
			return 0, fmt.Errorf("%w: %s already voted for %s", ErrDuplicateVote, voterAddress, airlineAddress)
		}
	}

	airline.Voters = append(airline.Voters, voterAddress)
	if err := putJSON(ctx, airlinePrefix+airlineAddress, airline); err != nil {
		return 0, err
	}
	return len(airline.Voters), nil
}

// PromoteAirline advances a nominated airline to registered once the
// admission rule is satisfied: the first UnconditionalAdmissions airlines are
// admitted without votes, after that admission needs votes from at least half
// the funded airlines. Idempotent for airlines already registered or funded.
func (s *SmartContract) PromoteAirline(ctx contractapi.TransactionContextInterface, airlineAddress string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}

	airline, err := s.getAirline(ctx, airlineAddress)
	if err != nil {
		return err
	}
	if airline.Status != AirlineNominated {
		return nil
	}

	cfg, err := s.config(ctx)
	if err != nil {
		return err
	}
	registered, err := getUint(ctx, registeredCntKey)
	if err != nil {
		return err
	}
	if registered >= uint64(cfg.UnconditionalAdmissions) {
		funded, err := getUint(ctx, fundedCntKey)
		if err != nil {
			return err
		}
		if uint64(len(airline.Voters))*2 < funded {
			return fmt.Errorf("%w: %d of %d funded airlines", ErrInsufficientVotes, len(airline.Voters), funded)
		}
	}

	airline.Status = AirlineRegistered
	// Counted guards the counter against repeated promotion calls.
	if !airline.Counted {
		airline.Counted = true
		if err := putUint(ctx, registeredCntKey, registered+1); err != nil {
			return err
		}
	}
	return putJSON(ctx, airlinePrefix+airlineAddress, airline)
}

// FundAirline adds stake to a registered airline and credits the pool. Once
// cumulative funds reach the minimum stake the airline becomes funded; the
// transition is monotonic.
func (s *SmartContract) FundAirline(ctx contractapi.TransactionContextInterface, airlineAddress, amountStr string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidAmount)
	}

	airline, err := s.getAirline(ctx, airlineAddress)
	if err != nil {
		return err
	}
	if airline.Status == AirlineNominated {
		return fmt.Errorf("%w: %s", ErrAirlineNotRegistered, airlineAddress)
	}

	cfg, err := s.config(ctx)
	if err != nil {
		return err
	}
	airline.Funds += amount
	if airline.Status == AirlineRegistered && airline.Funds >= cfg.MinimumStake {
		airline.Status = AirlineFunded
		funded, err := getUint(ctx, fundedCntKey)
		if err != nil {
			return err
		}
		if err := putUint(ctx, fundedCntKey, funded+1); err != nil {
			return err
		}
	}
	if err := putJSON(ctx, airlinePrefix+airlineAddress, airline); err != nil {
		return err
	}
	return s.creditPool(ctx, amount)
}

// ------------------ Read accessors ------------------

// GetAirline returns the stored airline record.
func (s *SmartContract) GetAirline(ctx contractapi.TransactionContextInterface, address string) (*Airline, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return nil, err
	}
	return s.getAirline(ctx, address)
}

// AirlineStatus returns the three-way lifecycle status.
func (s *SmartContract) AirlineStatus(ctx contractapi.TransactionContextInterface, address string) (string, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return "", err
	}
	airline, err := s.getAirline(ctx, address)
	if err != nil {
		return "", err
	}
	return airline.Status, nil
}

// VoteCount returns how many distinct voters backed the airline.
func (s *SmartContract) VoteCount(ctx contractapi.TransactionContextInterface, address string) (int, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return 0, err
	}
	airline, err := s.getAirline(ctx, address)
	if err != nil {
		return 0, err
	}
	return len(airline.Voters), nil
}

// RegisteredAirlineCount returns the number of airlines ever promoted.
func (s *SmartContract) RegisteredAirlineCount(ctx contractapi.TransactionContextInterface) (uint64, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return 0, err
	}
	return getUint(ctx, registeredCntKey)
}
