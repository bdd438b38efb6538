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

import "github.com/codevault-eth/codevault/common"

// Log is an append-only notification record. Logs share the state's
// snapshot discipline: reverting a snapshot also removes the logs emitted
// under it.
type Log struct {
	// Address of the account that emitted the log
	Address common.Address
	// Topics identify the event; Topics[0] is the hash of the event
	// signature
	Topics []common.Hash
	// Data holds the ABI-encoded, non-indexed arguments
	Data []byte
}
