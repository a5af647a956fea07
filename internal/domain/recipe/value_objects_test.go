package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Run("accepts valid amounts", func(t *testing.T) {
		cases := []struct {
			in    string
			cents int64
			out   string
		}{
			{"5.25", 525, "5.25"},
			{"5.50", 550, "5.50"},
			{"5.5", 550, "5.50"},
			{"5", 500, "5.00"},
			{"0.99", 99, "0.99"},
			{"999.99", 99999, "999.99"},
			{" 12.00 ", 1200, "12.00"},
		}
		for _, c := range cases {
			p, err := ParsePrice(c.in)
			require.NoError(t, err, c.in)
			assert.Equal(t, c.cents, p.Cents(), c.in)
			assert.Equal(t, c.out, p.String(), c.in)
		}
	})

	t.Run("rejects invalid amounts", func(t *testing.T) {
		for _, in := range []string{"", ".", ".50", "5.123", "abc", "5.x", "-1.00", "5,50"} {
			_, err := ParsePrice(in)
			assert.Error(t, err, in)
		}
	})

	t.Run("rejects amounts over the limit", func(t *testing.T) {
		_, err := ParsePrice("1000.00")
		assert.ErrorIs(t, err, ErrPriceTooLarge)
	})
}

func TestPriceRoundTrip(t *testing.T) {
	p := PriceFromCents(550)
	assert.Equal(t, "5.50", p.String())

	reparsed, err := ParsePrice(p.String())
	require.NoError(t, err)
	assert.Equal(t, p.Cents(), reparsed.Cents())
}
