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
	"fmt"

	"github.com/codevault-eth/codevault/core/vm"
)

// DataPrefix is the single marker byte placed before the payload in a
// storage unit's code. It halts execution immediately, so stored bytes can
// never run as a program.
const DataPrefix byte = 0x00

// DataOffset is where the payload starts inside a storage unit's code.
const DataOffset = 1

// StoredCode returns the code a storage unit holds for payload: the data
// prefix followed by the raw payload bytes.
func StoredCode(payload []byte) []byte {
	code := make([]byte, 0, DataOffset+len(payload))
	code = append(code, DataPrefix)
	return append(code, payload...)
}

// CreationCode returns the exact creation program used to store payload.
// Its hash is the content address of the counterfactual strategy.
func CreationCode(payload []byte) []byte {
	return vm.CreationProgram(StoredCode(payload))
}

// DecodePayload strips the data prefix from a storage unit's code. It is
// the pure inverse of StoredCode and fails on code too short to be a
// storage unit.
func DecodePayload(code []byte) ([]byte, error) {
	if len(code) < DataOffset {
		return nil, fmt.Errorf("%w: code shorter than data prefix", ErrInvalidPointer)
	}
	return code[DataOffset:], nil
}
