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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"

	"github.com/codevault-eth/codevault/common"
	"github.com/codevault-eth/codevault/core/state"
	"github.com/codevault-eth/codevault/core/vm"
	"github.com/codevault-eth/codevault/crypto"
	"github.com/codevault-eth/codevault/params"
)

var (
	factoryAddr  = common.HexToAddress("0xfac109")
	receiverAddr = common.HexToAddress("0xb0b")
	strangerAddr = common.HexToAddress("0xa11ce")
)

func newTestFactory(t *testing.T) (*Factory, *vm.Env) {
	t.Helper()
	env := vm.NewEnv(state.New(), log.New())
	return New(env, factoryAddr, receiverAddr, log.New()), env
}

func TestCreateRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		[]byte("hello, vault"),
		bytes.Repeat([]byte{0xab}, 4096),
		bytes.Repeat([]byte{0xcd}, params.MaxCodeSize-DataOffset), // largest storable payload
	}
	for _, payload := range payloads {
		f, _ := newTestFactory(t)
		pointer, err := f.Create(payload)
		require.NoError(t, err)

		got, err := f.Read(pointer)
		require.NoError(t, err)
		if !bytes.Equal(payload, got) {
			t.Fatalf("round trip mismatch for %d byte payload", len(payload))
		}
	}
}

// Regression fixture: a fixed creator identity with a fresh creation
// sequence must yield the same pointer every time.
func TestCreateReproducibleAddress(t *testing.T) {
	payload := common.FromHex("0x123456789abcedef")

	f1, _ := newTestFactory(t)
	p1, err := f1.Create(payload)
	require.NoError(t, err)

	f2, _ := newTestFactory(t)
	p2, err := f2.Create(payload)
	require.NoError(t, err)

	require.Equal(t, p1, p2)
	require.Equal(t, crypto.CreateAddress(factoryAddr, 1), p1)
}

func TestCreateEmitsPointer(t *testing.T) {
	f, env := newTestFactory(t)
	pointer, err := f.Create([]byte("event me"))
	require.NoError(t, err)

	logs := env.State().Logs()
	require.Len(t, logs, 1)
	got, ok := PointerFromLog(logs[0])
	require.True(t, ok)
	require.Equal(t, pointer, got)
	require.Equal(t, factoryAddr, logs[0].Address)
}

func TestCreateOversizedPayload(t *testing.T) {
	f, env := newTestFactory(t)
	_, err := f.Create(make([]byte, params.MaxCodeSize)) // one byte over once prefixed
	require.ErrorIs(t, err, ErrCreationFailed)

	require.Empty(t, env.State().Logs())
	require.Equal(t, uint64(1), env.State().GetNonce(factoryAddr), "failed creation must not advance the sequence")
}

func TestCounterfactualPrediction(t *testing.T) {
	f, _ := newTestFactory(t)
	cases := []struct {
		payload []byte
		salt    common.Hash
	}{
		{nil, common.HexToHash("0x00")},
		{[]byte("a"), common.HexToHash("0x01")},
		{[]byte("a"), common.HexToHash("0x02")},
		{bytes.Repeat([]byte{0x77}, 1000), common.HexToHash("0x03")},
	}
	for _, tc := range cases {
		predicted := f.PredictCounterfactualAddress(tc.payload, tc.salt)
		pointer, err := f.CreateCounterfactual(tc.payload, tc.salt)
		require.NoError(t, err)
		require.Equal(t, predicted, pointer)

		got, err := f.Read(pointer)
		require.NoError(t, err)
		require.True(t, bytes.Equal(tc.payload, got))
	}
}

func TestInitCodeHashDrivesPrediction(t *testing.T) {
	f, _ := newTestFactory(t)
	payload := []byte("vanity hunt")
	salt := common.HexToHash("0x2a")

	// Off-system search: the exposed hash plus the salted rule must land on
	// the same address the factory predicts.
	offSystem := crypto.CreateAddress2(f.Address(), salt, f.InitCodeHash(payload).Bytes())
	require.Equal(t, f.PredictCounterfactualAddress(payload, salt), offSystem)
}

func TestCounterfactualSaltReuse(t *testing.T) {
	f, _ := newTestFactory(t)
	payload := []byte("once only")
	salt := common.HexToHash("0x0d")

	_, err := f.CreateCounterfactual(payload, salt)
	require.NoError(t, err)

	_, err = f.CreateCounterfactual(payload, salt)
	require.ErrorIs(t, err, ErrCreationFailed)

	// A different payload derives a different content address, so the same
	// salt is still usable for it.
	other, err := f.CreateCounterfactual([]byte("different"), salt)
	require.NoError(t, err)
	require.NotEqual(t, f.PredictCounterfactualAddress(payload, salt), other)
}

func TestDeterministicPrediction(t *testing.T) {
	salt := common.HexToHash("0x1f")

	f1, _ := newTestFactory(t)
	predicted := f1.PredictDeterministicAddress(salt)
	p1, err := f1.CreateDeterministic([]byte("payload one"), salt)
	require.NoError(t, err)
	require.Equal(t, predicted, p1)

	// The address depends only on the salt: any payload lands on it.
	f2, _ := newTestFactory(t)
	p2, err := f2.CreateDeterministic([]byte("a completely different payload"), salt)
	require.NoError(t, err)
	require.Equal(t, predicted, p2)

	got, err := f1.Read(p1)
	require.NoError(t, err)
	require.Equal(t, []byte("payload one"), got)
}

func TestDeterministicSaltReuse(t *testing.T) {
	f, _ := newTestFactory(t)
	salt := common.HexToHash("0xee")

	_, err := f.CreateDeterministic([]byte("first"), salt)
	require.NoError(t, err)

	// Salt reuse fails even with a different payload: the forwarder's
	// address is already occupied.
	_, err = f.CreateDeterministic([]byte("second"), salt)
	require.ErrorIs(t, err, ErrCreationFailed)
}

func TestCreateBatch(t *testing.T) {
	payloads := [][]byte{[]byte("A"), []byte("B"), []byte("C")}

	// Individual creations against an equivalent fresh state set the
	// expectation for the batch.
	f1, _ := newTestFactory(t)
	want := make([]common.Address, len(payloads))
	for i, p := range payloads {
		ptr, err := f1.Create(p)
		require.NoError(t, err)
		want[i] = ptr
	}

	f2, env2 := newTestFactory(t)
	got, err := f2.CreateBatch(payloads)
	require.NoError(t, err)
	require.Equal(t, want, got)

	logs := env2.State().Logs()
	require.Len(t, logs, len(payloads))
	for i, l := range logs {
		index, pointer, ok := IndexedPointerFromLog(l)
		require.True(t, ok)
		require.Equal(t, uint64(i), index)
		require.Equal(t, want[i], pointer)
	}
}

func TestCreateBatchAtomicity(t *testing.T) {
	f, env := newTestFactory(t)
	payloads := [][]byte{
		[]byte("fine"),
		make([]byte, params.MaxCodeSize), // cannot be stored
		[]byte("never reached"),
	}

	_, err := f.CreateBatch(payloads)
	require.ErrorIs(t, err, ErrCreationFailed)

	require.Empty(t, env.State().Logs(), "aborted batches must leave no notifications")
	require.Equal(t, uint64(1), env.State().GetNonce(factoryAddr))
	_, err = f.Read(crypto.CreateAddress(factoryAddr, 1))
	require.ErrorIs(t, err, ErrInvalidPointer, "the first element must have been rolled back")
}

func TestCounterfactualBatch(t *testing.T) {
	f, env := newTestFactory(t)
	payloads := [][]byte{[]byte("x"), []byte("y")}
	salts := []common.Hash{common.HexToHash("0x10"), common.HexToHash("0x11")}

	pointers, err := f.CreateCounterfactualBatch(payloads, salts)
	require.NoError(t, err)
	for i := range payloads {
		require.Equal(t, f.PredictCounterfactualAddress(payloads[i], salts[i]), pointers[i])
	}
	require.Len(t, env.State().Logs(), 2)
}

func TestDeterministicBatch(t *testing.T) {
	f, env := newTestFactory(t)
	payloads := [][]byte{[]byte("x"), []byte("y")}
	salts := []common.Hash{common.HexToHash("0x20"), common.HexToHash("0x21")}

	pointers, err := f.CreateDeterministicBatch(payloads, salts)
	require.NoError(t, err)
	for i := range salts {
		require.Equal(t, f.PredictDeterministicAddress(salts[i]), pointers[i])
	}
	require.Len(t, env.State().Logs(), 2)

	// Reusing any of the salts aborts the whole next batch.
	_, err = f.CreateDeterministicBatch([][]byte{[]byte("z"), []byte("w")},
		[]common.Hash{common.HexToHash("0x22"), salts[0]})
	require.ErrorIs(t, err, ErrCreationFailed)
	require.Len(t, env.State().Logs(), 2, "aborted batch must leave no extra notifications")
}

func TestBatchLengthMismatch(t *testing.T) {
	f, env := newTestFactory(t)
	payloads := [][]byte{[]byte("x"), []byte("y")}
	salts := []common.Hash{common.HexToHash("0x30")}

	before := env.Snapshot()

	_, err := f.CreateCounterfactualBatch(payloads, salts)
	require.ErrorIs(t, err, ErrArrayLengthMismatch)

	_, err = f.CreateDeterministicBatch(payloads, salts)
	require.ErrorIs(t, err, ErrArrayLengthMismatch)

	require.Equal(t, before, env.Snapshot(), "length mismatch must be raised before any creation")
	require.Empty(t, env.State().Logs())
}

func TestReadInvalidPointer(t *testing.T) {
	f, _ := newTestFactory(t)
	_, err := f.Read(common.HexToAddress("0x404"))
	require.ErrorIs(t, err, ErrInvalidPointer)
}

func TestWithdraw(t *testing.T) {
	f, env := newTestFactory(t)
	env.State().AddBalance(factoryAddr, uint256.NewInt(12345))

	err := f.Withdraw(strangerAddr)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, uint256.NewInt(12345), env.GetBalance(factoryAddr), "unauthorized withdrawal must not move funds")

	require.NoError(t, f.Withdraw(receiverAddr))
	require.True(t, env.GetBalance(factoryAddr).IsZero())
	require.Equal(t, uint256.NewInt(12345), env.GetBalance(receiverAddr))

	// Withdrawing an empty balance is a no-op.
	require.NoError(t, f.Withdraw(receiverAddr))
}

func TestWithdrawForcedFallback(t *testing.T) {
	f, env := newTestFactory(t)
	env.State().AddBalance(factoryAddr, uint256.NewInt(999))

	// The receiver's own logic demands more gas than the bounded allowance,
	// so the sweep falls back to the forced transfer.
	env.SetGasDemand(receiverAddr, 10_000_000)

	require.NoError(t, f.Withdraw(receiverAddr))
	require.True(t, env.GetBalance(factoryAddr).IsZero())
	require.Equal(t, uint256.NewInt(999), env.GetBalance(receiverAddr))
}
