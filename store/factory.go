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

// Package store implements the payload storage factory: it persists
// arbitrary byte payloads as the immutable code of newly created units,
// predicts the resulting addresses without creating anything, and reads
// payloads back through the environment's code-inspection primitive.
package store

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/ledgerwatch/log/v3"

	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/core/state"
	"github.com/codevault-eth/codevault/core/vm"
)

// transferGasAllowance bounds the gas granted to the receiver's own logic
// during Withdraw before falling back to the forced transfer.
const transferGasAllowance = 50_000

// Environment is the collaborator surface the factory needs from its host:
// the two low-level creation primitives, program invocation, code
// inspection, value transfer and atomic rollback. A creation returning the
// zero address means the environment refused or could not complete it.
type Environment interface {
	InitAccount(addr common.Address)
	Create(caller common.Address, initCode []byte, value *uint256.Int) common.Address
	Create2(caller common.Address, salt common.Hash, initCode []byte, value *uint256.Int) common.Address
	Call(caller, to common.Address, input []byte, value *uint256.Int) ([]byte, error)
	GetCode(addr common.Address) []byte
	GetBalance(addr common.Address) *uint256.Int
	Transfer(from, to common.Address, amount *uint256.Int, gas uint64) bool
	ForceTransfer(from, to common.Address)
	Snapshot() int
	RevertToSnapshot(revid int)
	AddLog(l state.Log)
}

// Factory creates, predicts and reads storage units. It holds no index of
// what it has stored: a creation's pointer exists only as the return value
// and the emitted notification.
type Factory struct {
	env      Environment
	self     common.Address
	receiver common.Address
	logger   log.Logger
}

// New constructs a factory living at self, with the fixed withdrawal
// receiver. The factory's account is initialized in the environment so its
// creation sequence starts at a known value.
func New(env Environment, self, receiver common.Address, logger log.Logger) *Factory {
	env.InitAccount(self)
	return &Factory{
		env:      env,
		self:     self,
		receiver: receiver,
		logger:   logger,
	}
}

// Address returns the factory's own address.
func (f *Factory) Address() common.Address { return f.self }

// Create stores payload as the code of a new unit at an address derived
// from the factory's identity and its creation sequence. Emits a
// Pointer(address) notification on success.
func (f *Factory) Create(payload []byte) (common.Address, error) {
	snapshot := f.env.Snapshot()
	pointer := f.env.Create(f.self, CreationCode(payload), nil)
	if pointer == (common.Address{}) {
		f.env.RevertToSnapshot(snapshot)
		return common.Address{}, ErrCreationFailed
	}
	f.env.AddLog(pointerLog(f.self, pointer))
	f.logger.Debug("stored payload", "pointer", pointer, "size", len(payload))
	return pointer, nil
}

// CreateBatch applies Create to each payload in input order. All or
// nothing: if any element fails, every prior element of the batch is
// rolled back, notifications included. Each element emits
// Pointer(index,address) with its input position.
func (f *Factory) CreateBatch(payloads [][]byte) ([]common.Address, error) {
	snapshot := f.env.Snapshot()
	pointers := make([]common.Address, len(payloads))
	for i, payload := range payloads {
		pointer := f.env.Create(f.self, CreationCode(payload), nil)
		if pointer == (common.Address{}) {
			f.env.RevertToSnapshot(snapshot)
			return nil, fmt.Errorf("batch element %d: %w", i, ErrCreationFailed)
		}
		f.env.AddLog(indexedPointerLog(f.self, uint64(i), pointer))
		pointers[i] = pointer
	}
	f.logger.Debug("stored batch", "count", len(payloads))
	return pointers, nil
}

// CreateCounterfactual stores payload at the content address derived from
// (payload, salt): the salted creation rule over the exact creation
// program. The address is computable beforehand with
// PredictCounterfactualAddress. Re-using a (payload, salt) pair fails with
// ErrCreationFailed, since the target address already holds code.
func (f *Factory) CreateCounterfactual(payload []byte, salt common.Hash) (common.Address, error) {
	snapshot := f.env.Snapshot()
	pointer := f.env.Create2(f.self, salt, CreationCode(payload), nil)
	if pointer == (common.Address{}) {
		f.env.RevertToSnapshot(snapshot)
		return common.Address{}, ErrCreationFailed
	}
	f.env.AddLog(pointerLog(f.self, pointer))
	f.logger.Debug("stored payload", "pointer", pointer, "salt", salt, "size", len(payload))
	return pointer, nil
}

// CreateCounterfactualBatch behaves as repeated CreateCounterfactual calls
// in input order, all or nothing. Fails with ErrArrayLengthMismatch before
// any creation when the slices differ in length.
func (f *Factory) CreateCounterfactualBatch(payloads [][]byte, salts []common.Hash) ([]common.Address, error) {
	if len(payloads) != len(salts) {
		return nil, ErrArrayLengthMismatch
	}
	snapshot := f.env.Snapshot()
	pointers := make([]common.Address, len(payloads))
	for i, payload := range payloads {
		pointer := f.env.Create2(f.self, salts[i], CreationCode(payload), nil)
		if pointer == (common.Address{}) {
			f.env.RevertToSnapshot(snapshot)
			return nil, fmt.Errorf("batch element %d: %w", i, ErrCreationFailed)
		}
		f.env.AddLog(indexedPointerLog(f.self, uint64(i), pointer))
		pointers[i] = pointer
	}
	return pointers, nil
}

// CreateDeterministic stores payload at an address that depends only on
// the salt and the factory's identity, never on the payload. Two stages:
// first the payload-independent forwarder is deployed at the salted
// address, then it is invoked with the creation program as input and
// creates the final unit from its own fresh sequence. Any second use of
// the salt, with any payload, fails with ErrCreationFailed because the
// forwarder's address is already occupied.
func (f *Factory) CreateDeterministic(payload []byte, salt common.Hash) (common.Address, error) {
	snapshot := f.env.Snapshot()
	forwarder := f.env.Create2(f.self, salt, vm.ForwarderInitCode, nil)
	if forwarder == (common.Address{}) {
		f.env.RevertToSnapshot(snapshot)
		return common.Address{}, fmt.Errorf("%w: salt already consumed", ErrCreationFailed)
	}
	ret, err := f.env.Call(f.self, forwarder, CreationCode(payload), nil)
	if err != nil {
		f.env.RevertToSnapshot(snapshot)
		return common.Address{}, fmt.Errorf("%w: %s", ErrCreationFailed, err)
	}
	pointer := common.BytesToAddress(ret)
	f.env.AddLog(pointerLog(f.self, pointer))
	f.logger.Debug("stored payload", "pointer", pointer, "salt", salt, "size", len(payload))
	return pointer, nil
}

// CreateDeterministicBatch behaves as repeated CreateDeterministic calls
// in input order, all or nothing, with the same length-check contract as
// CreateCounterfactualBatch.
func (f *Factory) CreateDeterministicBatch(payloads [][]byte, salts []common.Hash) ([]common.Address, error) {
	if len(payloads) != len(salts) {
		return nil, ErrArrayLengthMismatch
	}
	snapshot := f.env.Snapshot()
	pointers := make([]common.Address, len(payloads))
	for i, payload := range payloads {
		forwarder := f.env.Create2(f.self, salts[i], vm.ForwarderInitCode, nil)
		if forwarder == (common.Address{}) {
			f.env.RevertToSnapshot(snapshot)
			return nil, fmt.Errorf("batch element %d: %w", i, ErrCreationFailed)
		}
		ret, err := f.env.Call(f.self, forwarder, CreationCode(payload), nil)
		if err != nil {
			f.env.RevertToSnapshot(snapshot)
			return nil, fmt.Errorf("batch element %d: %w: %s", i, ErrCreationFailed, err)
		}
		f.env.AddLog(indexedPointerLog(f.self, uint64(i), common.BytesToAddress(ret)))
		pointers[i] = common.BytesToAddress(ret)
	}
	return pointers, nil
}

// Withdraw moves the factory's full balance to the fixed receiver. Fails
// with ErrUnauthorized for any other caller. The transfer first runs under
// the bounded gas allowance; if the receiver's own logic demands more, the
// balance is swept with the forced transfer instead.
func (f *Factory) Withdraw(caller common.Address) error {
	if caller != f.receiver {
		return ErrUnauthorized
	}
	amount := f.env.GetBalance(f.self).Clone()
	if amount.IsZero() {
		return nil
	}
	if !f.env.Transfer(f.self, f.receiver, amount, transferGasAllowance) {
		f.logger.Warn("bounded transfer refused, forcing", "receiver", f.receiver, "amount", amount)
		f.env.ForceTransfer(f.self, f.receiver)
	}
	return nil
}
