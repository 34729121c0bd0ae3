package elements

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnspentAmountToSatoshis(t *testing.T) {
	tests := []struct {
		amount string
		want   uint64
	}{
		{"0.00000001", 1},
		{"0.00055434", 55434},
		{"0.29", 29000000},
		{"1.00000000", 100000000},
		{"21000000.00000000", 2100000000000000},
	}

	for _, tt := range tests {
		var unspent elementsUnspent
		payload := fmt.Sprintf(`{"txid":"ff","vout":0,"amount":%s}`, tt.amount)
		require.NoError(t, json.Unmarshal([]byte(payload), &unspent))

		// amounts whose float representation lands just below the true
		// satoshi value must not be truncated one unit short
		assert.Equal(t, tt.want, unspent.Value(), "amount %s", tt.amount)
	}
}
