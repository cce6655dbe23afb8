package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominateAirline(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	initPool(t, contract, ctx, caller, testStake, testCap, testFreeAdm)

	require.NoError(t, contract.NominateAirline(ctx, airlineOne))

	status, err := contract.AirlineStatus(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, AirlineNominated, status)

	err = contract.NominateAirline(ctx, airlineOne)
	assert.ErrorIs(t, err, ErrAlreadyNominated)
}

func TestVoteDeduplication(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	initPool(t, contract, ctx, caller, testStake, testCap, testFreeAdm)
	require.NoError(t, contract.NominateAirline(ctx, airlineOne))

	count, err := contract.VoteForAirline(ctx, airlineOne, airlineTwo)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = contract.VoteForAirline(ctx, airlineOne, airlineTwo)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	count, err = contract.VoteCount(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "duplicate vote must not raise the tally")

	_, err = contract.VoteForAirline(ctx, "0xNOBODY", airlineTwo)
	assert.ErrorIs(t, err, ErrUnknownAirline)
}

func TestPromoteCountsExactlyOnce(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	initPool(t, contract, ctx, caller, testStake, testCap, testFreeAdm)
	require.NoError(t, contract.NominateAirline(ctx, airlineOne))

	require.NoError(t, contract.PromoteAirline(ctx, airlineOne))
	count, err := contract.RegisteredAirlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Repeat promotion is an idempotent no-op, including the counter.
	require.NoError(t, contract.PromoteAirline(ctx, airlineOne))
	count, err = contract.RegisteredAirlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	status, err := contract.AirlineStatus(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, AirlineRegistered, status)
}

func TestAdmissionThreshold(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	// Only the first airline is admitted unconditionally.
	initPool(t, contract, ctx, caller, testStake, testCap, "1")

	require.NoError(t, contract.NominateAirline(ctx, airlineOne))
	require.NoError(t, contract.PromoteAirline(ctx, airlineOne))
	require.NoError(t, contract.FundAirline(ctx, airlineOne, testStake))

	require.NoError(t, contract.NominateAirline(ctx, airlineTwo))
	err := contract.PromoteAirline(ctx, airlineTwo)
	assert.ErrorIs(t, err, ErrInsufficientVotes)

	_, err = contract.VoteForAirline(ctx, airlineTwo, airlineOne)
	require.NoError(t, err)
	require.NoError(t, contract.PromoteAirline(ctx, airlineTwo), "one of one funded airlines is a majority")

	status, err := contract.AirlineStatus(ctx, airlineTwo)
	require.NoError(t, err)
	assert.Equal(t, AirlineRegistered, status)
}

func TestFundAirline(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	initPool(t, contract, ctx, caller, testStake, testCap, testFreeAdm)
	require.NoError(t, contract.NominateAirline(ctx, airlineOne))

	err := contract.FundAirline(ctx, airlineOne, "500")
	assert.ErrorIs(t, err, ErrAirlineNotRegistered, "nominated airlines cannot stake yet")

	require.NoError(t, contract.PromoteAirline(ctx, airlineOne))
	require.NoError(t, contract.FundAirline(ctx, airlineOne, "500"))
	status, err := contract.AirlineStatus(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, AirlineRegistered, status, "below minimum stake")

	require.NoError(t, contract.FundAirline(ctx, airlineOne, "500"))
	status, err = contract.AirlineStatus(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, AirlineFunded, status)

	// Funded is monotonic; further stake keeps the status.
	require.NoError(t, contract.FundAirline(ctx, airlineOne, "1"))
	status, err = contract.AirlineStatus(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, AirlineFunded, status)

	airline, err := contract.GetAirline(ctx, airlineOne)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), airline.Funds)

	balance, err := contract.PoolBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), balance, "stake is credited to the pool")

	assert.ErrorIs(t, contract.FundAirline(ctx, airlineOne, "0"), ErrInvalidAmount)
	assert.ErrorIs(t, contract.FundAirline(ctx, "0xNOBODY", "100"), ErrUnknownAirline)
}

func TestAirlineReadsRequireAuthorization(t *testing.T) {
	contract, _, ctx, caller := setupContract(t)
	initPool(t, contract, ctx, caller, testStake, testCap, testFreeAdm)
	require.NoError(t, contract.NominateAirline(ctx, airlineOne))

	caller.SetID(malloryID)
	_, err := contract.AirlineStatus(ctx, airlineOne)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = contract.RegisteredAirlineCount(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
