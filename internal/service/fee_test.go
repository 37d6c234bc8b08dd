package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeCalculator_BaseOnly(t *testing.T) {
	calc := NewFeeCalculator(2.99, 0.015)
	assert.Equal(t, 2.99, calc.Fee(0))
}

func TestFeeCalculator_Percentage(t *testing.T) {
	calc := NewFeeCalculator(2.99, 0.015)
	assert.InDelta(t, 17.99, calc.Fee(1000), 1e-9)
	assert.InDelta(t, 4.49, calc.Fee(100), 1e-9)
}

func TestFeeCalculator_CustomConstants(t *testing.T) {
	calc := NewFeeCalculator(1.50, 0.02)
	assert.InDelta(t, 21.50, calc.Fee(1000), 1e-9)
}
