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

// Package crypto holds the hashing and address derivation rules shared by
// the creator and the predictor. Both must agree bit-for-bit, so the rules
// live in one place.
package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/rlp"
)

// keccakState wraps sha3.state. In addition to the usual hash methods, it
// also supports Read to get a variable amount of data from the hash state.
// Read is faster than Sum because it doesn't copy the internal state, but
// also modifies the internal state.
type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

var hasherPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256().(keccakState)
	},
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := hasherPool.Get().(keccakState)
	defer hasherPool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := hasherPool.Get().(keccakState)
	defer hasherPool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// CreateAddress derives the address of a contract created by `a` at the
// given creation sequence number. This is the implicit-address rule: the
// result is the trailing 20 bytes of the hash of the RLP list [a, nonce].
func CreateAddress(a common.Address, nonce uint64) common.Address {
	listLen := 21 + rlp.U64Len(nonce)
	data := make([]byte, listLen+1)
	pos := rlp.EncodeListPrefix(listLen, data)
	pos += rlp.EncodeAddress(a[:], data[pos:])
	rlp.EncodeU64(nonce, data[pos:])
	return common.BytesToAddress(Keccak256(data)[12:])
}

// CreateAddress2 derives the address of a contract created by `b` with the
// salted rule: keccak256(0xff ++ b ++ salt ++ keccak256(init_code))[12:].
func CreateAddress2(b common.Address, salt common.Hash, inithash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, b.Bytes(), salt[:], inithash)[12:])
}
