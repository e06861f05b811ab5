package pkg

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	valid, err := EncodeAddress(DefaultAddressPrefix, randomPayload(20))
	require.NoError(t, err)
	long, err := EncodeAddress(DefaultAddressPrefix, randomPayload(32))
	require.NoError(t, err)
	otherPrefix, err := EncodeAddress("bbn", randomPayload(20))
	require.NoError(t, err)
	short, err := EncodeAddress(DefaultAddressPrefix, randomPayload(8))
	require.NoError(t, err)

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "20 byte account", address: valid},
		{name: "32 byte account", address: long},
		{name: "empty", address: "", wantErr: true},
		{name: "not bech32", address: "alice", wantErr: true},
		{name: "wrong prefix", address: otherPrefix, wantErr: true},
		{name: "short payload", address: short, wantErr: true},
		{name: "broken checksum", address: valid[:len(valid)-1] + flip(valid[len(valid)-1]), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address, DefaultAddressPrefix)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func flip(c byte) string {
	if c == 'q' {
		return "p"
	}
	return "q"
}

func randomPayload(n int) []byte {
	bz := make([]byte, n)
	for i := range bz {
		bz[i] = gofakeit.Uint8()
	}
	return bz
}
