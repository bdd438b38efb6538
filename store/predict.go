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
	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/core/vm"
	"github.com/codevault-eth/codevault/crypto"
)

// The predictor is pure: no environment access, no side effects. Every
// function here must agree bit-for-bit with the address the corresponding
// creation actually produces.

// InitCodeHash returns the hash of the exact creation program used to
// store payload. Exposed so callers can run off-system address search,
// such as brute-forcing salts for vanity counterfactual addresses.
func (f *Factory) InitCodeHash(payload []byte) common.Hash {
	return crypto.Keccak256Hash(CreationCode(payload))
}

// PredictCounterfactualAddress computes the address CreateCounterfactual
// would produce for (payload, salt), without creating anything.
func (f *Factory) PredictCounterfactualAddress(payload []byte, salt common.Hash) common.Address {
	return crypto.CreateAddress2(f.self, salt, crypto.Keccak256(CreationCode(payload)))
}

// PredictDeterministicAddress computes the address CreateDeterministic
// would produce for the given salt, without creating anything. The payload
// plays no part: the forwarder's address depends only on the salt, and the
// final unit is the first creation of the freshly deployed forwarder.
func (f *Factory) PredictDeterministicAddress(salt common.Hash) common.Address {
	forwarder := crypto.CreateAddress2(f.self, salt, crypto.Keccak256(vm.ForwarderInitCode))
	return crypto.CreateAddress(forwarder, 1)
}
