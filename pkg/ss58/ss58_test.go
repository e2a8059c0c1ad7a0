package ss58_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/w3f/1kv-core/pkg/ss58"
)

func samplePubkey() []byte {
	pk := make([]byte, 32)
	for i := range pk {
		pk[i] = byte(i + 1)
	}
	return pk
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pk := samplePubkey()

	for _, prefix := range []int{0, 2, 42} {
		address, err := ss58.Encode(pk, prefix)
		require.NoError(t, err)

		decoded, gotPrefix, err := ss58.Decode(address)
		require.NoError(t, err)
		require.Equal(t, pk, decoded)
		require.Equal(t, prefix, gotPrefix)
	}
}

func TestCanonicalizeChangesPrefixNotKey(t *testing.T) {
	pk := samplePubkey()
	kusama, err := ss58.Encode(pk, 2)
	require.NoError(t, err)

	polkadot, err := ss58.Canonicalize(kusama, 0)
	require.NoError(t, err)

	decoded, prefix, err := ss58.Decode(polkadot)
	require.NoError(t, err)
	require.Equal(t, pk, decoded)
	require.Equal(t, 0, prefix)
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	pk := samplePubkey()
	address, err := ss58.Encode(pk, 2)
	require.NoError(t, err)

	corrupted := []byte(address)
	corrupted[len(corrupted)-1]++
	_, _, err = ss58.Decode(string(corrupted))
	require.ErrorIs(t, err, ss58.ErrInvalidAddress)
}

func TestEncodeRejectsWrongKeyLength(t *testing.T) {
	_, err := ss58.Encode([]byte{1, 2, 3}, 2)
	require.Error(t, err)
}
