/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func (s *SmartContract) creditPool(ctx contractapi.TransactionContextInterface, amount uint64) error {
	balance, err := getUint(ctx, poolBalanceKey)
	if err != nil {
		return err
	}
	return putUint(ctx, poolBalanceKey, balance+amount)
}

func (s *SmartContract) debitPool(ctx contractapi.TransactionContextInterface, amount uint64) error {
	balance, err := getUint(ctx, poolBalanceKey)
	if err != nil {
		return err
	}
	if amount > balance {
		return fmt.Errorf("%w: %d > %d", ErrInsufficientPool, amount, balance)
	}
	return putUint(ctx, poolBalanceKey, balance-amount)
}

// Deposit is the inbound value-transfer entry point: airline top-ups and
// sponsor contributions credit the pool directly.
func (s *SmartContract) Deposit(ctx contractapi.TransactionContextInterface, amountStr string) error {
	if err := s.requireMutable(ctx); err != nil {
		return err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("%w: deposit must be positive", ErrInvalidAmount)
	}
	return s.creditPool(ctx, amount)
}

// PoolBalance returns the custodied balance.
func (s *SmartContract) PoolBalance(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return getUint(ctx, poolBalanceKey)
}

// OutstandingLiability returns the sum of payable-but-unpaid policy amounts.
func (s *SmartContract) OutstandingLiability(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return getUint(ctx, poolLiabilityKey)
}
