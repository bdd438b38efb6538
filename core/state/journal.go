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

package state

import (
	"github.com/holiman/uint256"

	"github.com/codevault-eth/codevault/common"
)

// journalEntryKind is the discriminator for journal entry types.
type journalEntryKind uint8

const (
	kindCreateObject journalEntryKind = iota
	kindBalanceChange
	kindNonceChange
	kindCodeChange
	kindAddLog
)

// journalEntry is a discriminated union of all journal entry types.
// This avoids interface boxing allocations that would occur with []interface{}.
type journalEntry struct {
	kind journalEntryKind

	// Account the entry applies to
	account common.Address

	// For balance changes
	prevBalance uint256.Int

	// For nonce changes
	prevNonce uint64

	// For code changes
	prevCode []byte
}

// journal contains the list of state modifications applied since the last
// state commit. These are tracked to be able to be reverted in case of an
// execution exception or revertal request.
type journal struct {
	entries []journalEntry
}

func newJournal() *journal {
	return &journal{entries: make([]journalEntry, 0, 64)}
}

func (j *journal) length() int {
	return len(j.entries)
}

// revert undoes all entries with an index >= snapshot, newest first.
func (j *journal) revert(s *IntraState, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		e := &j.entries[i]
		switch e.kind {
		case kindCreateObject:
			delete(s.objects, e.account)
		case kindBalanceChange:
			s.objects[e.account].balance = e.prevBalance
		case kindNonceChange:
			s.objects[e.account].nonce = e.prevNonce
		case kindCodeChange:
			s.objects[e.account].code = e.prevCode
		case kindAddLog:
			s.logs = s.logs[:len(s.logs)-1]
		}
	}
	j.entries = j.entries[:snapshot]
}

func (j *journal) appendCreateObject(account common.Address) {
	j.entries = append(j.entries, journalEntry{
		kind:    kindCreateObject,
		account: account,
	})
}

func (j *journal) appendBalanceChange(account common.Address, prev uint256.Int) {
	j.entries = append(j.entries, journalEntry{
		kind:        kindBalanceChange,
		account:     account,
		prevBalance: prev,
	})
}

func (j *journal) appendNonceChange(account common.Address, prev uint64) {
	j.entries = append(j.entries, journalEntry{
		kind:      kindNonceChange,
		account:   account,
		prevNonce: prev,
	})
}

func (j *journal) appendCodeChange(account common.Address, prev []byte) {
	j.entries = append(j.entries, journalEntry{
		kind:     kindCodeChange,
		account:  account,
		prevCode: prev,
	})
}

func (j *journal) appendAddLog() {
	j.entries = append(j.entries, journalEntry{kind: kindAddLog})
}
