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

package rlp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeU64(t *testing.T) {
	cases := []struct {
		i    uint64
		want []byte
	}{
		{0, []byte{0x80}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x80}},
		{255, []byte{0x81, 0xff}},
		{256, []byte{0x82, 0x01, 0x00}},
		{1 << 16, []byte{0x83, 0x01, 0x00, 0x00}},
		{1 << 24, []byte{0x84, 0x01, 0x00, 0x00, 0x00}},
	}
	for _, tc := range cases {
		buf := make([]byte, 16)
		n := EncodeU64(tc.i, buf)
		if !bytes.Equal(buf[:n], tc.want) {
			t.Fatalf("EncodeU64(%d) = %x, want %x", tc.i, buf[:n], tc.want)
		}
		require.Equal(t, len(tc.want), U64Len(tc.i), "U64Len(%d)", tc.i)
	}
}

func TestEncodeListPrefix(t *testing.T) {
	cases := []struct {
		dataLen int
		want    []byte
	}{
		{0, []byte{0xc0}},
		{3, []byte{0xc3}},
		{55, []byte{0xf7}},
		{56, []byte{0xf8, 0x38}},
		{1024, []byte{0xf9, 0x04, 0x00}},
	}
	for _, tc := range cases {
		buf := make([]byte, 16)
		n := EncodeListPrefix(tc.dataLen, buf)
		if !bytes.Equal(buf[:n], tc.want) {
			t.Fatalf("EncodeListPrefix(%d) = %x, want %x", tc.dataLen, buf[:n], tc.want)
		}
		require.Equal(t, len(tc.want), ListPrefixLen(tc.dataLen), "ListPrefixLen(%d)", tc.dataLen)
	}
}

func TestEncodeAddress(t *testing.T) {
	addr := make([]byte, 20)
	for i := range addr {
		addr[i] = byte(i + 1)
	}
	buf := make([]byte, 21)
	n := EncodeAddress(addr, buf)
	require.Equal(t, 21, n)
	require.Equal(t, byte(0x94), buf[0])
	require.Equal(t, addr, buf[1:21])
}
