/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// World-state key layout.
const (
	ownerKey         = "OWNER"
	operationalKey   = "OPERATIONAL"
	configKey        = "CONFIG"
	poolBalanceKey   = "POOL_BALANCE"
	poolLiabilityKey = "POOL_LIABILITY"
	registeredCntKey = "REGISTERED_COUNT"
	fundedCntKey     = "FUNDED_COUNT"

	authPrefix    = "AUTH_"
	airlinePrefix = "AIRLINE_"
	flightPrefix  = "FLIGHT_"
	policyPrefix  = "POLICY_"
	payoutPrefix  = "PAYOUT_"
)

// SmartContract is the flight-delay insurance pool ledger.
type SmartContract struct {
	contractapi.Contract
}

// InitLedger records the submitter as owner, authorizes it and stores the
// pool parameters. Numeric args arrive as strings because chaincode args are
// strings; converted inside.
func (s *SmartContract) InitLedger(ctx contractapi.TransactionContextInterface, minimumStakeStr, premiumCapStr, unconditionalAdmissionsStr string) error {
	existing, err := ctx.GetStub().GetState(ownerKey)
	if err != nil {
		return fmt.Errorf("failed to read owner: %v", err)
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	minimumStake, err := parseAmount(minimumStakeStr)
	if err != nil {
		return err
	}
	premiumCap, err := parseAmount(premiumCapStr)
	if err != nil {
		return err
	}
	freeSlots, err := strconv.Atoi(unconditionalAdmissionsStr)
	if err != nil || freeSlots < 0 {
		return fmt.Errorf("%w: unconditional admissions '%s'", ErrInvalidAmount, unconditionalAdmissionsStr)
	}

	owner, err := s.callerID(ctx)
	if err != nil {
		return err
	}
	if err := ctx.GetStub().PutState(ownerKey, []byte(owner)); err != nil {
		return err
	}
	if err := ctx.GetStub().PutState(operationalKey, []byte(strconv.FormatBool(true))); err != nil {
		return err
	}
	cfg := Config{
		MinimumStake:            minimumStake,
		PremiumCap:              premiumCap,
		UnconditionalAdmissions: freeSlots,
	}
	return putJSON(ctx, configKey, cfg)
}

// ------------------ Helpers ------------------

func (s *SmartContract) callerID(ctx contractapi.TransactionContextInterface) (string, error) {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to read caller identity: %v", err)
	}
	return id, nil
}

// isCaller reports whether the transaction submitter is the given address.
func (s *SmartContract) isCaller(ctx contractapi.TransactionContextInterface, address string) bool {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return false
	}
	return id == address
}

func (s *SmartContract) owner(ctx contractapi.TransactionContextInterface) (string, error) {
	b, err := ctx.GetStub().GetState(ownerKey)
	if err != nil {
		return "", fmt.Errorf("failed to read owner: %v", err)
	}
	return string(b), nil
}

// requireOwner admits only the contract owner. It does not check the
// operational flag: unpausing must stay possible while paused.
func (s *SmartContract) requireOwner(ctx contractapi.TransactionContextInterface) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if owner == "" || !s.isCaller(ctx, owner) {
		return fmt.Errorf("%w: owner only", ErrUnauthorized)
	}
	return nil
}

// requireAuthorized admits the owner and any address in the authorization
// table. Reads use this alone; mutations also call requireOperational.
func (s *SmartContract) requireAuthorized(ctx contractapi.TransactionContextInterface) error {
	caller, err := s.callerID(ctx)
	if err != nil {
		return err
	}
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if caller == owner && owner != "" {
		return nil
	}
	b, err := ctx.GetStub().GetState(authPrefix + caller)
	if err != nil {
		return fmt.Errorf("failed to read authorization for %s: %v", caller, err)
	}
	if b == nil {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	return nil
}

func (s *SmartContract) requireOperational(ctx contractapi.TransactionContextInterface) error {
	operational, err := s.IsOperational(ctx)
	if err != nil {
		return err
	}
	if !operational {
		return ErrNotOperational
	}
	return nil
}

// requireMutable is the gate every state-changing operation passes first.
func (s *SmartContract) requireMutable(ctx contractapi.TransactionContextInterface) error {
	if err := s.requireOperational(ctx); err != nil {
		return err
	}
	return s.requireAuthorized(ctx)
}

func (s *SmartContract) config(ctx contractapi.TransactionContextInterface) (*Config, error) {
	var cfg Config
	found, err := getJSON(ctx, configKey, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("pool config not initialized")
	}
	return &cfg, nil
}

func parseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidAmount, s)
	}
	return v, nil
}

func getJSON(ctx contractapi.TransactionContextInterface, key string, v interface{}) (bool, error) {
	b, err := ctx.GetStub().GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %v", key, err)
	}
	return true, nil
}

func putJSON(ctx contractapi.TransactionContextInterface, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", key, err)
	}
	return ctx.GetStub().PutState(key, b)
}

// getUint reads a decimal scalar; a missing key reads as zero.
func getUint(ctx contractapi.TransactionContextInterface, key string) (uint64, error) {
	b, err := ctx.GetStub().GetState(key)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %v", key, err)
	}
	if b == nil {
		return 0, nil
	}
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt scalar %s: %v", key, err)
	}
	return v, nil
}

func putUint(ctx contractapi.TransactionContextInterface, key string, v uint64) error {
	return ctx.GetStub().PutState(key, []byte(strconv.FormatUint(v, 10)))
}

func main() {
	chaincode, err := contractapi.NewChaincode(&SmartContract{})
	if err != nil {
		fmt.Printf("Error creating chaincode: %v\n", err)
		return
	}

	if err := chaincode.Start(); err != nil {
		fmt.Printf("Error starting chaincode: %v\n", err)
	}
}
