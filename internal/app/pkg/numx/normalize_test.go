package numx

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDecimalRoundTrip(t *testing.T) {
	cases := []string{
		"0",
		"100",
		"99.99",
		"-42.5",
		"0.001",
		"-0.00000001",
		"123456789012345678901234567890.123456789",
		"-123456789012345678901234567890.123456789",
	}

	for _, s := range cases {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)

		normalized := Normalize(d)
		text, ok := normalized.(string)
		require.True(t, ok, "decimal should normalize to string, got %T", normalized)

		back, err := Denormalize(text)
		require.NoError(t, err)
		assert.True(t, d.Equal(back), "round-trip mismatch: %s -> %s -> %s", s, text, back)
		assert.Equal(t, d.Sign(), back.Sign(), "sign mismatch for %s", s)
	}
}

func TestNormalizeBigInt(t *testing.T) {
	n, ok := new(big.Int).SetString("-340282366920938463463374607431768211456", 10)
	require.True(t, ok)

	normalized := Normalize(n)
	text, ok := normalized.(string)
	require.True(t, ok)

	back, ok := DenormalizeInt(text)
	require.True(t, ok)
	assert.Zero(t, n.Cmp(back))
}

func TestNormalizeWalksTree(t *testing.T) {
	price := decimal.RequireFromString("19.90")
	spent := decimal.RequireFromString("250.00")

	payload := map[string]interface{}{
		"orders": []map[string]interface{}{
			{"totalPrice": price, "customerId": "c1"},
		},
		"customers": []interface{}{
			map[string]interface{}{"totalSpent": spent, "ordersCount": 3},
		},
		"label": "raw",
	}

	out, ok := Normalize(payload).(map[string]interface{})
	require.True(t, ok)

	orders, ok := out["orders"].([]interface{})
	require.True(t, ok)
	order := orders[0].(map[string]interface{})
	assert.Equal(t, "19.9", order["totalPrice"])
	assert.Equal(t, "c1", order["customerId"])

	customers := out["customers"].([]interface{})
	customer := customers[0].(map[string]interface{})
	assert.Equal(t, "250", customer["totalSpent"])
	assert.Equal(t, 3, customer["ordersCount"])

	assert.Equal(t, "raw", out["label"])
}

func TestNormalizePassesOtherKindsThrough(t *testing.T) {
	assert.Equal(t, 42, Normalize(42))
	assert.Equal(t, 3.14, Normalize(3.14))
	assert.Equal(t, true, Normalize(true))
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize((*decimal.Decimal)(nil)))
}
