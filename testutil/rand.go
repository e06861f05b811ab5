package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
)

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns an error
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomAddress returns a valid account address with the default prefix.
func RandomAddress(t *testing.T) string {
	t.Helper()

	bz := make([]byte, 20)
	_, err := rand.Read(bz)
	require.NoError(t, err)

	address, err := pkg.EncodeAddress(pkg.DefaultAddressPrefix, bz)
	require.NoError(t, err)
	return address
}

// RandomAmount returns an amount in [min, max].
func RandomAmount(min, max uint64) sdkmath.Uint {
	return sdkmath.NewUint(gofakeit.Uint64()%(max-min+1) + min)
}
