// Copyright 2025 The CodeVault Authors
// This file is part of CodeVault.
//
// CodeVault is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CodeVault is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with CodeVault. If not, see <http://www.gnu.org/licenses/>.

// Package vm implements the hosting environment the factory runs inside:
// the low-level creation primitives (implicit-address and salted), program
// invocation, code inspection and value transfer. Execution is sequential;
// an invocation either completes or is rolled back via state snapshots.
package vm

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/ledgerwatch/log/v3"

	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/core/state"
	"github.com/codevault-eth/codevault/crypto"
	"github.com/codevault-eth/codevault/params"
)

// Env is the execution environment. Creation failures are reported as the
// zero address, matching the low-level primitive contract; the reason is
// logged at debug level.
type Env struct {
	state *state.IntraState

	// gasDemand models recipients whose own receive logic needs more than
	// a plain transfer allowance.
	gasDemand map[common.Address]uint64

	logger log.Logger
}

// NewEnv creates an environment over the given state.
func NewEnv(s *state.IntraState, logger log.Logger) *Env {
	return &Env{
		state:     s,
		gasDemand: make(map[common.Address]uint64),
		logger:    logger,
	}
}

// State exposes the underlying state, mainly for tests and inspection.
func (env *Env) State() *state.IntraState { return env.state }

// InitAccount places a fresh contract account at addr, starting its
// creation sequence at 1. No-op if the account already exists.
func (env *Env) InitAccount(addr common.Address) {
	if env.state.Exist(addr) {
		return
	}
	env.state.CreateAccount(addr)
	env.state.SetNonce(addr, 1)
}

// Create runs a creation program at an address derived from the caller's
// identity and its current creation sequence number. Returns the zero
// address on failure.
func (env *Env) Create(caller common.Address, initCode []byte, value *uint256.Int) common.Address {
	contractAddr := crypto.CreateAddress(caller, env.state.GetNonce(caller))
	return env.create(caller, initCode, value, contractAddr)
}

// Create2 runs a creation program at the salted deterministic address
// keccak256(0xff ++ caller ++ salt ++ keccak256(initCode))[12:]. Returns
// the zero address on failure.
func (env *Env) Create2(caller common.Address, salt common.Hash, initCode []byte, value *uint256.Int) common.Address {
	contractAddr := crypto.CreateAddress2(caller, salt, crypto.Keccak256(initCode))
	return env.create(caller, initCode, value, contractAddr)
}

func (env *Env) create(caller common.Address, initCode []byte, value *uint256.Int, address common.Address) common.Address {
	if len(initCode) > params.MaxInitCodeSize {
		env.logger.Debug("creation rejected", "err", ErrMaxInitCodeSizeExceeded, "size", len(initCode))
		return common.Address{}
	}
	if value != nil && env.state.GetBalance(caller).Lt(value) {
		env.logger.Debug("creation rejected", "err", ErrInsufficientBalance, "caller", caller)
		return common.Address{}
	}
	nonce := env.state.GetNonce(caller)
	if nonce+1 < nonce {
		env.logger.Debug("creation rejected", "err", ErrNonceUintOverflow, "caller", caller)
		return common.Address{}
	}
	env.state.SetNonce(caller, nonce+1)

	// Ensure there's no existing contract already at the designated address.
	// Re-creation at an occupied address is rejected, never overwritten.
	if env.state.GetNonce(address) != 0 || env.state.GetCodeSize(address) != 0 {
		env.logger.Debug("creation rejected", "err", ErrContractAddressCollision, "address", address)
		return common.Address{}
	}

	snapshot := env.state.Snapshot()
	env.state.CreateAccount(address)
	env.state.SetNonce(address, 1)
	if value != nil && !value.IsZero() {
		env.state.SubBalance(caller, value)
		env.state.AddBalance(address, value)
	}

	runtime, err := runtimeOf(initCode)
	if err == nil && len(runtime) > params.MaxCodeSize {
		err = ErrMaxCodeSizeExceeded
	}
	if err != nil {
		env.state.RevertToSnapshot(snapshot)
		env.logger.Debug("creation reverted", "err", err, "address", address)
		return common.Address{}
	}
	env.state.SetCode(address, runtime)
	return address
}

// Call invokes the code stored at `to` with the given input. The only
// executable programs are the forwarder, which re-creates its input as a
// new unit and returns the created address as a 32-byte word, and stored
// data units, which halt immediately and return nothing.
func (env *Env) Call(caller, to common.Address, input []byte, value *uint256.Int) ([]byte, error) {
	code := env.state.GetCode(to)
	if len(code) == 0 {
		return nil, ErrNoProgram
	}
	snapshot := env.state.Snapshot()
	if value != nil && !value.IsZero() {
		if env.state.GetBalance(caller).Lt(value) {
			return nil, ErrInsufficientBalance
		}
		env.state.SubBalance(caller, value)
		env.state.AddBalance(to, value)
	}
	switch {
	case bytes.Equal(code, forwarderRuntime):
		created := env.Create(to, input, value)
		if created == (common.Address{}) {
			env.state.RevertToSnapshot(snapshot)
			return nil, ErrNestedCreationFailed
		}
		word := make([]byte, common.HashLength)
		copy(word[common.HashLength-common.AddressLength:], created.Bytes())
		return word, nil
	case code[0] == stopByte:
		return nil, nil
	default:
		env.state.RevertToSnapshot(snapshot)
		return nil, ErrNotExecutable
	}
}

// GetCode returns the code currently stored at addr, nil when there is
// none.
func (env *Env) GetCode(addr common.Address) []byte {
	return env.state.GetCode(addr)
}

// GetBalance returns the balance of addr. The returned value must not be
// mutated.
func (env *Env) GetBalance(addr common.Address) *uint256.Int {
	return env.state.GetBalance(addr)
}

// Transfer moves amount between accounts within the given gas allowance
// for the recipient's own logic. Returns false, without touching state,
// when the recipient demands more gas than the allowance or the sender's
// balance is short.
func (env *Env) Transfer(from, to common.Address, amount *uint256.Int, gas uint64) bool {
	if env.gasDemand[to] > gas {
		return false
	}
	if env.state.GetBalance(from).Lt(amount) {
		return false
	}
	env.state.SubBalance(from, amount)
	env.state.AddBalance(to, amount)
	return true
}

// ForceTransfer sweeps the entire balance of from into to, bypassing the
// recipient's logic, in the style of a self-destruct beneficiary payout.
func (env *Env) ForceTransfer(from, to common.Address) {
	balance := env.state.GetBalance(from).Clone()
	if balance.IsZero() {
		return
	}
	env.state.SubBalance(from, balance)
	env.state.AddBalance(to, balance)
}

// SetGasDemand declares the minimum transfer gas allowance addr insists on.
func (env *Env) SetGasDemand(addr common.Address, gas uint64) {
	env.gasDemand[addr] = gas
}

// Snapshot returns an identifier for the current revision of the
// environment's state.
func (env *Env) Snapshot() int { return env.state.Snapshot() }

// RevertToSnapshot rolls back every effect made since the given revision.
func (env *Env) RevertToSnapshot(revid int) { env.state.RevertToSnapshot(revid) }

// AddLog appends a notification record to the environment's log.
func (env *Env) AddLog(l state.Log) { env.state.AddLog(l) }
