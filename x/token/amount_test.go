package token

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"empty is zero":  {raw: "", want: "0"},
		"zero":           {raw: "0", want: "0"},
		"integer":        {raw: "1000000000000000000000", want: "1000000000000000000000"},
		"exponent":       {raw: "1e3", want: "1000"},
		"fraction":       {raw: "1.5", wantErr: errors.ErrAmount},
		"negative":       {raw: "-1", wantErr: errors.ErrAmount},
		"not a number":   {raw: "ten", wantErr: errors.ErrAmount},
		"trailing stuff": {raw: "10 tokens", wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if tc.wantErr != nil {
				weavetest.IsErr(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, formatAmount(got))
		})
	}
}

func TestFormatUnits(t *testing.T) {
	cases := map[string]struct {
		units    string
		decimals uint32
		want     string
	}{
		"whole tokens": {"1000000000000000000000", 18, "1000"},
		"fraction":     {"1500000000000000000", 18, "1.5"},
		"dust":         {"1", 18, "0.000000000000000001"},
		"zero":         {"0", 18, "0"},
		"no decimals":  {"42", 0, "42"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			units, err := ParseAmount(tc.units)
			require.NoError(t, err)
			assert.Equal(t, tc.want, FormatUnits(units, tc.decimals))

			back, err := ParseUnits(tc.want, tc.decimals)
			require.NoError(t, err)
			assert.True(t, units.Equal(back), "got %s", back)
		})
	}
}

func TestParseUnits(t *testing.T) {
	got, err := ParseUnits("100", DefaultDecimals)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.New(100, DefaultDecimals)))

	_, err = ParseUnits("0.0000000000000000001", DefaultDecimals)
	weavetest.IsErr(t, errors.ErrAmount, err)

	_, err = ParseUnits("-3", DefaultDecimals)
	weavetest.IsErr(t, errors.ErrAmount, err)
}
