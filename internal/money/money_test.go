package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Amount
	}{
		{"plain decimal", "3.5", 350},
		{"integer", "2", 200},
		{"surrounding whitespace", "  1.25 ", 125},
		{"negative", "-2.00", -200},
		{"leading dot", ".5", 50},
		{"trailing dot", "4.", 400},
		{"numeric prefix with unit", "2.50 EUR", 250},
		{"comma stops at integer part", "2,50", 200},
		{"exponent", "1e2", 10000},
		{"empty", "", 0},
		{"letters", "abc", 0},
		{"rounds half away from zero", "2.345", 235},
		{"rounds negative half away from zero", "-2.345", -235},
		{"largest amount", "92233720368547758.07", 9223372036854775807},
		{"smallest amount", "-92233720368547758.08", -9223372036854775808},
		{"just above the largest amount", "92233720368547758.08", 0},
		{"huge exponent", "1e30", 0},
		{"huge negative exponent value", "-1e30", 0},
		{"too many digits", "99999999999999999999", 0},
		{"exponent beyond four digits", "1e1000000", 0},
		{"tiny value", "1e-1000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestFromFloat(t *testing.T) {
	t.Run("neutralises binary drift", func(t *testing.T) {
		assert.Equal(t, Amount(30), FromFloat(0.1+0.2))
	})

	t.Run("rounds to the cent", func(t *testing.T) {
		assert.Equal(t, Amount(1001), FromFloat(10.005))
	})
}

func TestRound(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1.01").Equal(Round(decimal.RequireFromString("1.005"))))
	assert.True(t, decimal.RequireFromString("-1.01").Equal(Round(decimal.RequireFromString("-1.005"))))
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "2.50", Amount(250).String())
	assert.Equal(t, "-2.00", Amount(-200).String())
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "0.05", Amount(5).String())
}

func TestAmountJSON(t *testing.T) {
	t.Run("marshals as a number with two decimals", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Price Amount `json:"price"`
		}{Price: 250})

		require.NoError(t, err)
		assert.JSONEq(t, `{"price": 2.50}`, string(data))
		assert.Contains(t, string(data), "2.50")
	})

	t.Run("unmarshals numbers and numeric strings", func(t *testing.T) {
		var v struct {
			A Amount `json:"a"`
			B Amount `json:"b"`
			C Amount `json:"c"`
		}
		err := json.Unmarshal([]byte(`{"a": 1.5, "b": "-2.25", "c": null}`), &v)

		require.NoError(t, err)
		assert.Equal(t, Amount(150), v.A)
		assert.Equal(t, Amount(-225), v.B)
		assert.Equal(t, Zero, v.C)
	})

	t.Run("rejects amounts out of range", func(t *testing.T) {
		for _, raw := range []string{`1e30`, `"-1e30"`, `99999999999999999999`} {
			var a Amount
			err := json.Unmarshal([]byte(raw), &a)

			require.Error(t, err, raw)
			assert.Contains(t, err.Error(), "out of range")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var a Amount
		err := json.Unmarshal([]byte(`"abc"`), &a)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid amount")
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2,50 €", Format(250))
	assert.Equal(t, "-2,00 €", Format(-200))
	assert.Equal(t, "0,00 €", Format(Zero))
}

func TestParseRaw(t *testing.T) {
	tests := []struct {
		raw     string
		want    Amount
		present bool
	}{
		{raw: ``, want: Zero, present: false},
		{raw: `null`, want: Zero, present: false},
		{raw: `""`, want: Zero, present: false},
		{raw: `"  "`, want: Zero, present: false},
		{raw: `0`, want: Zero, present: true},
		{raw: `"0"`, want: Zero, present: true},
		{raw: `2.5`, want: 250, present: true},
		{raw: `"10,00"`, want: 1000, present: true},
		{raw: `"abc"`, want: Zero, present: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, present := ParseRaw([]byte(tt.raw))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.present, present)
		})
	}
}
