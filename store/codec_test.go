package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codevault-eth/codevault/crypto"
)

func TestStoredCodeLayout(t *testing.T) {
	payload := []byte("hello, vault")
	code := StoredCode(payload)
	require.Equal(t, DataPrefix, code[0])
	require.Equal(t, payload, code[DataOffset:])
	require.Len(t, code, DataOffset+len(payload))

	empty := StoredCode(nil)
	require.Equal(t, []byte{DataPrefix}, empty)
}

func TestDecodePayloadRoundTrip(t *testing.T) {
	for _, payload := range [][]byte{nil, {}, {0x00}, []byte("abc"), bytes.Repeat([]byte{0x5a}, 4096)} {
		got, err := DecodePayload(StoredCode(payload))
		require.NoError(t, err)
		if !bytes.Equal(payload, got) {
			t.Fatalf("round trip mismatch: in %x out %x", payload, got)
		}
	}
}

func TestDecodePayloadTooShort(t *testing.T) {
	_, err := DecodePayload(nil)
	require.ErrorIs(t, err, ErrInvalidPointer)
	_, err = DecodePayload([]byte{})
	require.ErrorIs(t, err, ErrInvalidPointer)
}

func TestCreationCodeEmbedsStoredCode(t *testing.T) {
	payload := []byte{0xca, 0xfe}
	program := CreationCode(payload)
	require.True(t, bytes.HasSuffix(program, StoredCode(payload)),
		"the creation program must end with the code it deploys")
	require.Equal(t, crypto.Keccak256Hash(program), crypto.Keccak256Hash(CreationCode(payload)),
		"the creation program must be deterministic")
}
