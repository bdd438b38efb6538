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

package store

import (
	"encoding/binary"

	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/core/state"
	"github.com/codevault-eth/codevault/crypto"
)

// Notification topics. Single creations emit Pointer(address); batch
// elements emit Pointer(uint256,address) with the element's input index.
var (
	PointerTopic        = crypto.Keccak256Hash([]byte("Pointer(address)"))
	IndexedPointerTopic = crypto.Keccak256Hash([]byte("Pointer(uint256,address)"))
)

func pointerLog(emitter, pointer common.Address) state.Log {
	return state.Log{
		Address: emitter,
		Topics:  []common.Hash{PointerTopic},
		Data:    leftPadAddress(pointer),
	}
}

func indexedPointerLog(emitter common.Address, index uint64, pointer common.Address) state.Log {
	data := make([]byte, 0, 2*common.HashLength)
	var word [common.HashLength]byte
	binary.BigEndian.PutUint64(word[common.HashLength-8:], index)
	data = append(data, word[:]...)
	return state.Log{
		Address: emitter,
		Topics:  []common.Hash{IndexedPointerTopic},
		Data:    append(data, leftPadAddress(pointer)...),
	}
}

// PointerFromLog decodes a Pointer(address) record. The second return is
// false when the log is not a single-creation pointer notification.
func PointerFromLog(l state.Log) (common.Address, bool) {
	if len(l.Topics) != 1 || l.Topics[0] != PointerTopic || len(l.Data) != common.HashLength {
		return common.Address{}, false
	}
	return common.BytesToAddress(l.Data), true
}

// IndexedPointerFromLog decodes a Pointer(uint256,address) record. The
// last return is false when the log is not a batch pointer notification.
func IndexedPointerFromLog(l state.Log) (uint64, common.Address, bool) {
	if len(l.Topics) != 1 || l.Topics[0] != IndexedPointerTopic || len(l.Data) != 2*common.HashLength {
		return 0, common.Address{}, false
	}
	index := binary.BigEndian.Uint64(l.Data[common.HashLength-8 : common.HashLength])
	return index, common.BytesToAddress(l.Data[common.HashLength:]), true
}

func leftPadAddress(a common.Address) []byte {
	word := make([]byte, common.HashLength)
	copy(word[common.HashLength-common.AddressLength:], a.Bytes())
	return word
}
