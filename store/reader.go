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

	"github.com/codevault-eth/codevault/common"
)

// Read retrieves the payload stored at pointer by copying the unit's code
// and stripping the data prefix. Fails with ErrInvalidPointer when the
// address holds no code, signaling that it was never produced by a
// creation.
func (f *Factory) Read(pointer common.Address) ([]byte, error) {
	code := f.env.GetCode(pointer)
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no code at %s", ErrInvalidPointer, pointer)
	}
	return DecodePayload(code)
}
