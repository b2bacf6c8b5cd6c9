package utils_test

import (
	"testing"

	"github.com/istafrica-dennw/trucks-app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1000.00", utils.FormatMoney(decimal.NewFromInt(1000)))
	assert.Equal(t, "0.50", utils.FormatMoney(decimal.RequireFromString("0.5")))
	assert.Equal(t, "12.35", utils.FormatMoney(decimal.RequireFromString("12.345")))
}
