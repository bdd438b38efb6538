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

// Package state implements the in-memory account state the factory runs
// against: nonces, balances and code, with journaled mutation so that any
// invocation can be rolled back atomically.
package state

import (
	"github.com/holiman/uint256"

	"github.com/codevault-eth/codevault/common"
)

// stateObject represents one account being modified.
type stateObject struct {
	nonce   uint64
	balance uint256.Int
	code    []byte
}

// IntraState holds all accounts touched during execution. It is not safe
// for concurrent use; the execution model is one invocation at a time to
// finality, so callers serialize access by construction.
type IntraState struct {
	objects map[common.Address]*stateObject
	journal *journal
	logs    []Log
}

// New creates a fresh, empty state.
func New() *IntraState {
	return &IntraState{
		objects: make(map[common.Address]*stateObject),
		journal: newJournal(),
	}
}

func (s *IntraState) getObject(addr common.Address) *stateObject {
	return s.objects[addr]
}

func (s *IntraState) getOrNewObject(addr common.Address) *stateObject {
	if so := s.objects[addr]; so != nil {
		return so
	}
	so := &stateObject{}
	s.objects[addr] = so
	s.journal.appendCreateObject(addr)
	return so
}

// Exist reports whether the given account exists in state.
func (s *IntraState) Exist(addr common.Address) bool {
	return s.getObject(addr) != nil
}

// CreateAccount explicitly creates an account. Creating an account that
// already exists is a no-op; existing balance, nonce and code are kept.
func (s *IntraState) CreateAccount(addr common.Address) {
	s.getOrNewObject(addr)
}

// GetNonce returns the creation sequence number of the given account, zero
// for accounts not in state.
func (s *IntraState) GetNonce(addr common.Address) uint64 {
	if so := s.getObject(addr); so != nil {
		return so.nonce
	}
	return 0
}

// SetNonce updates the creation sequence number of the given account.
func (s *IntraState) SetNonce(addr common.Address, nonce uint64) {
	so := s.getOrNewObject(addr)
	s.journal.appendNonceChange(addr, so.nonce)
	so.nonce = nonce
}

// GetBalance returns the balance of the given account, zero for accounts
// not in state. The returned value must not be mutated.
func (s *IntraState) GetBalance(addr common.Address) *uint256.Int {
	if so := s.getObject(addr); so != nil {
		return &so.balance
	}
	return uint256.NewInt(0)
}

// AddBalance adds amount to the account associated with addr.
func (s *IntraState) AddBalance(addr common.Address, amount *uint256.Int) {
	so := s.getOrNewObject(addr)
	s.journal.appendBalanceChange(addr, so.balance)
	so.balance.Add(&so.balance, amount)
}

// SubBalance subtracts amount from the account associated with addr. The
// caller must have checked that the balance is sufficient.
func (s *IntraState) SubBalance(addr common.Address, amount *uint256.Int) {
	so := s.getOrNewObject(addr)
	s.journal.appendBalanceChange(addr, so.balance)
	so.balance.Sub(&so.balance, amount)
}

// GetCode returns the code stored at the given account. The returned slice
// must not be mutated.
func (s *IntraState) GetCode(addr common.Address) []byte {
	if so := s.getObject(addr); so != nil {
		return so.code
	}
	return nil
}

// GetCodeSize returns the length of the code stored at the given account.
func (s *IntraState) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

// SetCode stores code at the given account.
func (s *IntraState) SetCode(addr common.Address, code []byte) {
	so := s.getOrNewObject(addr)
	s.journal.appendCodeChange(addr, so.code)
	so.code = common.CopyBytes(code)
}

// AddLog appends a notification record. Logs emitted under a snapshot are
// removed when that snapshot is reverted.
func (s *IntraState) AddLog(l Log) {
	s.journal.appendAddLog()
	s.logs = append(s.logs, l)
}

// Logs returns all notification records emitted so far, oldest first.
func (s *IntraState) Logs() []Log {
	return s.logs
}

// Snapshot returns an identifier for the current revision of the state.
func (s *IntraState) Snapshot() int {
	return s.journal.length()
}

// RevertToSnapshot reverts all state changes made since the given revision,
// including emitted logs.
func (s *IntraState) RevertToSnapshot(revid int) {
	s.journal.revert(s, revid)
}
