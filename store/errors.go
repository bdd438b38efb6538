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

import "errors"

var (
	// ErrArrayLengthMismatch is returned by the salted batch operations
	// when the payload and salt slices differ in length. Raised before any
	// creation is attempted; no state is changed.
	ErrArrayLengthMismatch = errors.New("payloads and salts length mismatch")

	// ErrCreationFailed is returned when the environment refused or could
	// not complete a creation: oversized payload, salt reuse (address
	// collision) or insufficient resources. The whole invocation is rolled
	// back, including all prior elements of the same batch.
	ErrCreationFailed = errors.New("creation failed")

	// ErrInvalidPointer is returned by Read when the pointer holds no code,
	// or too little code to contain the data prefix.
	ErrInvalidPointer = errors.New("invalid pointer")

	// ErrUnauthorized is returned by Withdraw for any caller other than the
	// fixed receiver.
	ErrUnauthorized = errors.New("unauthorized")
)
