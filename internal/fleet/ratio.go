package fleet

// The two division guards used across the analyses. Each analysis picks one
// of exactly two zero-handling policies, stated here once instead of being
// re-invented inline.

// RatioFloorOne divides num by den, substituting a denominator of 1 when
// den is less than 1. This is the allocation-ratio guard: zero available
// vehicles yields num/1, never a division error and never a skipped row.
func RatioFloorOne(num, den float64) float64 {
	if den < 1 {
		den = 1
	}
	return num / den
}

// RatioOrNil divides num by den, returning nil when den is zero. Used where
// a zero denominator makes the quantity undefined (trip speed with zero
// duration); nil propagates as a missing value and excludes the row from
// threshold comparisons.
func RatioOrNil(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}
