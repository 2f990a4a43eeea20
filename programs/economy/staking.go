// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economy

import (
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"

	"github.com/soldas11/solana-speedsters/components/authority"
	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/economy/state"
)

// Stake deposits [amount] of the configured stake asset from [caller] into
// the pooled vault and credits the caller's stake account.
func (e *Economy) Stake(caller ids.ShortID, amount uint64) error {
	if err := e.commit(e.stake(caller, amount)); err != nil {
		return err
	}

	e.metrics.numStakes.Inc()
	e.log.Info("staked",
		"owner", caller,
		"amount", amount,
	)
	return nil
}

func (e *Economy) stake(caller ids.ShortID, amount uint64) error {
	if e.cfg.StakeAssetID == ids.Empty {
		return errStakeAssetNotConfigured
	}

	vault, _ := authority.Derive(authority.StakingVaultTag, e.cfg.StakeAssetID, e.programID)
	if err := e.tokens.Transfer(e.cfg.StakeAssetID, caller, vault, ledger.Signer{Addr: caller}, amount); err != nil {
		return err
	}

	account, err := e.state.GetStakeAccount(caller)
	switch {
	case err == database.ErrNotFound:
		account = &state.StakeAccount{Owner: caller}
	case err != nil:
		return err
	}

	account.Balance, err = safemath.Add64(account.Balance, amount)
	if err != nil {
		return err
	}
	account.LastStakedAt = e.clock.UnixTime()
	return e.state.PutStakeAccount(account)
}

// Unstake returns [amount] of the caller's outstanding stake from the
// pooled vault. Only the stake account's owner may draw from it.
func (e *Economy) Unstake(caller ids.ShortID, amount uint64) error {
	if err := e.commit(e.unstake(caller, amount)); err != nil {
		return err
	}

	e.metrics.numUnstakes.Inc()
	e.log.Info("unstaked",
		"owner", caller,
		"amount", amount,
	)
	return nil
}

func (e *Economy) unstake(caller ids.ShortID, amount uint64) error {
	if e.cfg.StakeAssetID == ids.Empty {
		return errStakeAssetNotConfigured
	}

	account, err := e.state.GetStakeAccount(caller)
	switch {
	case err == database.ErrNotFound:
		return ErrInsufficientStake
	case err != nil:
		return err
	case account.Owner != caller:
		return ErrUnauthorized
	case account.Balance < amount:
		return ErrInsufficientStake
	}

	vault, proof := authority.Derive(authority.StakingVaultTag, e.cfg.StakeAssetID, e.programID)
	if err := e.tokens.Transfer(e.cfg.StakeAssetID, vault, caller, ledger.Derived{Proof: proof}, amount); err != nil {
		return err
	}

	account.Balance, err = safemath.Sub(account.Balance, amount)
	if err != nil {
		return err
	}
	return e.state.PutStakeAccount(account)
}
