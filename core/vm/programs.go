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

package vm

import "bytes"

// The environment defines two program formats. A creation program is a
// fixed 11-byte prelude followed by the runtime code it produces; the
// prelude is payload-independent, so the program layout is the same for
// every runtime length. The forwarder is a fixed built-in whose whole
// semantics is to re-create its call input as a new unit from its own
// identity. The byte values follow the canonical minimal EVM templates.
var (
	// creationPrelude returns everything after itself as the created
	// unit's code.
	creationPrelude = []byte{0x60, 0x0b, 0x59, 0x81, 0x38, 0x03, 0x80, 0x92, 0x59, 0x39, 0xf3}

	// ForwarderInitCode is the creation program of the forwarder. Its own
	// address depends only on the creator and the salt, never on the
	// payload it will later forward.
	ForwarderInitCode = []byte{0x67, 0x36, 0x3d, 0x3d, 0x37, 0x36, 0x3d, 0x34, 0xf0, 0x3d, 0x52, 0x60, 0x08, 0x60, 0x18, 0xf3}

	// forwarderRuntime is the code the forwarder's creation program leaves
	// behind.
	forwarderRuntime = []byte{0x36, 0x3d, 0x3d, 0x37, 0x36, 0x3d, 0x34, 0xf0}
)

// stopByte marks code whose execution halts immediately with no effect.
// Storage units start with it so their content is never executable.
const stopByte = 0x00

// CreationProgram wraps runtime code into a creation program that, when
// executed by the environment's creation primitive, leaves runtime behind
// as the created unit's code.
func CreationProgram(runtime []byte) []byte {
	p := make([]byte, 0, len(creationPrelude)+len(runtime))
	p = append(p, creationPrelude...)
	return append(p, runtime...)
}

// runtimeOf extracts the code a creation program produces.
func runtimeOf(initCode []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(initCode, creationPrelude):
		return initCode[len(creationPrelude):], nil
	case bytes.Equal(initCode, ForwarderInitCode):
		return forwarderRuntime, nil
	default:
		return nil, ErrInvalidCreationProgram
	}
}
