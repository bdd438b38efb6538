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

// Package rlp contains the minimal RLP encoding surface needed for
// nonce-based contract address derivation.
//
// General design:
//   - the package doesn't manage memory - the caller must ensure buffers
//     are big enough
//   - each Encode function writes to the given buffer and returns the
//     written length
//   - functions to calculate prefix lengths are fast and pure; it's ok to
//     call them multiple times for readability
package rlp

import (
	"encoding/binary"
	"math/bits"
)

// ListPrefixLen returns the number of bytes EncodeListPrefix will write for
// a list payload of dataLen bytes.
func ListPrefixLen(dataLen int) int {
	if dataLen >= 56 {
		return 1 + (bits.Len64(uint64(dataLen))+7)/8
	}
	return 1
}

// EncodeListPrefix writes the list prefix for a payload of dataLen bytes.
func EncodeListPrefix(dataLen int, to []byte) int {
	if dataLen >= 56 {
		_ = to[9]
		beLen := (bits.Len64(uint64(dataLen)) + 7) / 8
		binary.BigEndian.PutUint64(to[1:], uint64(dataLen))
		to[8-beLen] = 247 + byte(beLen)
		copy(to, to[8-beLen:9])
		return 1 + beLen
	}
	to[0] = 192 + byte(dataLen)
	return 1
}

// U64Len returns the number of bytes EncodeU64 will write for i.
func U64Len(i uint64) int {
	if i >= 128 {
		return 1 + (bits.Len64(i)+7)/8
	}
	return 1
}

// EncodeU64 writes the RLP encoding of i. Values below 128 encode as a
// single byte, zero as the empty string marker. `to` must hold U64Len(i)
// bytes; exact-size buffers are fine.
func EncodeU64(i uint64, to []byte) int {
	if i >= 128 {
		beLen := (bits.Len64(i) + 7) / 8
		_ = to[beLen] // early bounds check to guarantee safety of writes below
		to[0] = 128 + byte(beLen)
		for j := beLen; j >= 1; j-- {
			to[j] = byte(i)
			i >>= 8
		}
		return 1 + beLen
	}
	if i == 0 {
		to[0] = 128
		return 1
	}
	to[0] = byte(i)
	return 1
}

// EncodeAddress writes a 20-byte address as an RLP string. `to` must be at
// least 21 bytes long.
func EncodeAddress(a []byte, to []byte) int {
	_ = to[20] // early bounds check to guarantee safety of writes below
	to[0] = 128 + 20
	copy(to[1:21], a[:20])
	return 21
}
