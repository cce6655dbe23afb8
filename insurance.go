/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// policyKey is the composite (flight key, passenger) handle. Keying by
// passenger alone would let one flight's policy overwrite another's.
func policyKey(flightKey, passenger string) string {
	return policyPrefix + flightKey + "_" + passenger
}

func (s *SmartContract) getPolicy(ctx contractapi.TransactionContextInterface, flightKey, passenger string) (*Policy, bool, error) {
	var policy Policy
	found, err := getJSON(ctx, policyKey(flightKey, passenger), &policy)
	if err != nil {
		return nil, false, err
	}
	return &policy, found, nil
}

// BuyInsurance sells a passenger coverage on a registered flight. The premium
// is credited to the pool in the same transaction; because the payout equals
// the premium, the pool stays solvent against its outstanding liability.
func (s *SmartContract) BuyInsurance(ctx contractapi.TransactionContextInterface, passenger, key, premiumStr string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}
	premium, err := parseAmount(premiumStr)
	if err != nil {
		return err
	}
	if premium == 0 {
		return fmt.Errorf("%w: premium must be positive", ErrInvalidAmount)
	}

	flight, err := s.getFlight(ctx, key)
	if err != nil {
		return err
	}
	_, found, err := s.getPolicy(ctx, key, passenger)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: %s on %s", ErrAlreadyInsured, passenger, key)
	}

	cfg, err := s.config(ctx)
	if err != nil {
		return err
	}
	if premium > cfg.PremiumCap {
		return fmt.Errorf("%w: %d > %d", ErrPremiumExceedsCap, premium, cfg.PremiumCap)
	}

	// Solvency check: existing liability must already be covered before this
	// policy's premium and matching worst-case payout are both added.
	balance, err := getUint(ctx, poolBalanceKey)
	if err != nil {
		return err
	}
	liability, err := getUint(ctx, poolLiabilityKey)
	if err != nil {
		return err
	}
	if balance < liability {
		return fmt.Errorf("%w: balance %d below liability %d", ErrInsufficientPool, balance, liability)
	}

	flight.Passengers = append(flight.Passengers, passenger)
	if err := putJSON(ctx, flightPrefix+key, flight); err != nil {
		return err
	}
	policy := Policy{
		Passenger: passenger,
		FlightKey: key,
		Premium:   premium,
	}
	if err := putJSON(ctx, policyKey(key, passenger), policy); err != nil {
		return err
	}
	return s.creditPool(ctx, premium)
}

// SettleFlight marks every policy on a delayed flight payable. Iteration is
// bounded by a snapshot of the insured list's length, and re-settling is a
// no-op per policy, so the call is idempotent.
func (s *SmartContract) SettleFlight(ctx contractapi.TransactionContextInterface, key string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}

	flight, err := s.getFlight(ctx, key)
	if err != nil {
		return err
	}
	if flight.StatusCode != StatusLateAirline {
		return fmt.Errorf("%w: status %d on %s", ErrNoQualifyingDelay, flight.StatusCode, key)
	}

	liability, err := getUint(ctx, poolLiabilityKey)
	if err != nil {
		return err
	}
	insured := flight.Passengers
	for i := 0; i < len(insured); i++ {
		policy, found, err := s.getPolicy(ctx, key, insured[i])
		if err != nil {
			return err
		}
		if !found || policy.Payable || policy.Settled {
			continue
		}
		policy.Payable = true
		if err := putJSON(ctx, policyKey(key, insured[i]), policy); err != nil {
			return err
		}
		liability += policy.Premium
	}
	return putUint(ctx, poolLiabilityKey, liability)
}

// Withdraw pays out a payable policy to its passenger. The caller must be the
// passenger. State effects land before the payout receipt is written, so a
// nested call observes the policy already settled.
func (s *SmartContract) Withdraw(ctx contractapi.TransactionContextInterface, passenger, key string) (uint64, error) {
	if err := s.requireOperational(ctx); err != nil {
		return 0, err
	}
	if !s.isCaller(ctx, passenger) {
		return 0, fmt.Errorf("%w: only the passenger can withdraw", ErrUnauthorized)
	}

	policy, found, err := s.getPolicy(ctx, key, passenger)
	if err != nil {
		return 0, err
	}
	if !found || !policy.Payable {
		return 0, fmt.Errorf("%w: %s on %s", ErrNotPayable, passenger, key)
	}
	if policy.Settled {
		return 0, fmt.Errorf("%w: %s on %s", ErrAlreadySettled, passenger, key)
	}

	policy.Settled = true
	if err := putJSON(ctx, policyKey(key, passenger), policy); err != nil {
		return 0, err
	}
	if err := s.debitPool(ctx, policy.Premium); err != nil {
		return 0, err
	}
	liability, err := getUint(ctx, poolLiabilityKey)
	if err != nil {
		return 0, err
	}
	if err := putUint(ctx, poolLiabilityKey, liability-policy.Premium); err != nil {
		return 0, err
	}

	receipt := PayoutReceipt{Passenger: passenger, FlightKey: key, Amount: policy.Premium}
	if err := putJSON(ctx, payoutPrefix+key+"_"+passenger, receipt); err != nil {
		return 0, err
	}
	return policy.Premium, nil
}

// GetPolicy returns the stored policy record.
func (s *SmartContract) GetPolicy(ctx contractapi.TransactionContextInterface, passenger, key string) (*Policy, error) {
	if err := s.requireAuthorized(ctx); err != nil {
		return nil, err
	}
	policy, found, err := s.getPolicy(ctx, key, passenger)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no policy for %s on %s", passenger, key)
	}
	return policy, nil
}
