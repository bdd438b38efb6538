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

import "errors"

var (
	// ErrContractAddressCollision is returned when the target address of a
	// creation already holds an account with code or a started sequence.
	ErrContractAddressCollision = errors.New("contract address collision")

	// ErrMaxCodeSizeExceeded is returned when the runtime code a creation
	// program produces is larger than MaxCodeSize.
	ErrMaxCodeSizeExceeded = errors.New("max code size exceeded")

	// ErrMaxInitCodeSizeExceeded is returned when a creation program is
	// larger than MaxInitCodeSize.
	ErrMaxInitCodeSizeExceeded = errors.New("max initcode size exceeded")

	// ErrInsufficientBalance is returned when the caller cannot cover the
	// endowment of a creation or the value of a call.
	ErrInsufficientBalance = errors.New("insufficient balance for transfer")

	// ErrInvalidCreationProgram is returned when a creation program has no
	// format the environment understands.
	ErrInvalidCreationProgram = errors.New("invalid creation program")

	// ErrNoProgram is returned when calling an address that holds no code.
	ErrNoProgram = errors.New("no program at call target")

	// ErrNotExecutable is returned when calling code the environment has no
	// execution semantics for.
	ErrNotExecutable = errors.New("call target is not executable")

	// ErrNestedCreationFailed is returned when the forwarder's own creation
	// attempt fails.
	ErrNestedCreationFailed = errors.New("nested creation failed")

	// ErrNonceUintOverflow is returned when a creation sequence number
	// cannot be incremented.
	ErrNonceUintOverflow = errors.New("nonce uint64 overflow")
)
