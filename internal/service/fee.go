package service

// StandardFeeCalculator computes the flat-plus-percentage transaction fee.
type StandardFeeCalculator struct {
	base    float64
	percent float64
}

// NewFeeCalculator creates a calculator with the given base fee and
// percentage (e.g. 2.99 and 0.015 for 1.5%).
func NewFeeCalculator(base, percent float64) *StandardFeeCalculator {
	return &StandardFeeCalculator{base: base, percent: percent}
}

// Fee returns base + percent*amount. Defined for amount >= 0; callers
// reject non-positive purchase amounts before quoting.
func (c *StandardFeeCalculator) Fee(amount float64) float64 {
	return c.base + c.percent*amount
}
