package stripe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 125050, MinorUnits(decimal.RequireFromString("1250.50")))
	assert.EqualValues(t, 1000, MinorUnits(decimal.RequireFromString("9.999")))
	assert.EqualValues(t, 0, MinorUnits(decimal.Zero))
}

func TestNormalizePaymentStatus(t *testing.T) {
	assert.Equal(t, "paid", NormalizePaymentStatus("paid"))
	assert.Equal(t, "paid", NormalizePaymentStatus("no_payment_required"))
	assert.Equal(t, "unpaid", NormalizePaymentStatus(" unpaid "))
	assert.Equal(t, "none", NormalizePaymentStatus(""))
}
