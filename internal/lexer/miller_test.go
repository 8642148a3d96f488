package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemcore/cdl/internal/lexer"
)

func TestParseMillerPayload(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		payload     string
		want        []int
		expectError bool
	}{
		"dense 3-index":           {payload: "111", want: []int{1, 1, 1}},
		"dense 4-index with sign": {payload: "10-10", want: []int{1, 0, -1, 0}},
		"space-separated":         {payload: "12 3 4", want: []int{12, 3, 4}},
		"space-separated signed":  {payload: "1 0 -1 1", want: []int{1, 0, -1, 1}},
		"empty payload":           {payload: "   ", expectError: true},
		"dangling sign":           {payload: "11-", expectError: true},
		"wrong component count":   {payload: "11", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := lexer.ParseMillerPayload(tc.payload, lexer.Position{})
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
