/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// IsOperational reports the global pause flag. Always callable.
func (s *SmartContract) IsOperational(ctx contractapi.TransactionContextInterface) (bool, error) {
	b, err := ctx.GetStub().GetState(operationalKey)
	if err != nil {
		return false, fmt.Errorf("failed to read operational flag: %v", err)
	}
	if b == nil {
		return false, nil
	}
	return strconv.ParseBool(string(b))
}

// SetOperationalStatus pauses or resumes the contract. Owner only; reads stay
// available while paused, every other mutation fails NotOperational.
func (s *SmartContract) SetOperationalStatus(ctx contractapi.TransactionContextInterface, mode bool) error {
	if err := s.requireOwner(ctx); err != nil {
		return err
	}
	return ctx.GetStub().PutState(operationalKey, []byte(strconv.FormatBool(mode)))
}

// AuthorizeCaller grants an address the right to invoke mutating operations.
// Idempotent: re-authorizing is a no-op.
func (s *SmartContract) AuthorizeCaller(ctx contractapi.TransactionContextInterface, address string) error {
	if err := s.requireOperational(ctx); err != nil {
		return err
	}
	if err := s.requireOwner(ctx); err != nil {
		return err
	}

	existing, err := ctx.GetStub().GetState(authPrefix + address)
	if err != nil {
		return fmt.Errorf("failed to read authorization for %s: %v", address, err)
	}
	if existing != nil {
		return nil
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return putJSON(ctx, authPrefix+address, AuthRecord{Address: address, GrantedBy: owner})
}

// DeauthorizeCaller revokes an address. The owner cannot be deauthorized;
// revoking an unknown address is a no-op.
func (s *SmartContract) DeauthorizeCaller(ctx contractapi.TransactionContextInterface, address string) error {
	if err := s.requireOperational(ctx); err != nil {
		return err
	}
	if err := s.requireOwner(ctx); err != nil {
		return err
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if address == owner {
		return fmt.Errorf("%w: owner cannot be deauthorized", ErrUnauthorized)
	}
	return ctx.GetStub().DelState(authPrefix + address)
}

// IsAuthorizedCaller reports whether an address may invoke mutating
// operations. The owner is always authorized.
func (s *SmartContract) IsAuthorizedCaller(ctx contractapi.TransactionContextInterface, address string) (bool, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return false, err
	}
	if address == owner && owner != "" {
		return true, nil
	}
	b, err := ctx.GetStub().GetState(authPrefix + address)
	if err != nil {
		return false, fmt.Errorf("failed to read authorization for %s: %v", address, err)
	}
	return b != nil, nil
}
