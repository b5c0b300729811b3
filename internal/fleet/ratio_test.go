package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioFloorOne(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		den  float64
		want float64
	}{
		{name: "normal division", num: 10, den: 4, want: 2.5},
		{name: "zero denominator floors to one", num: 3, den: 0, want: 3},
		{name: "fractional denominator floors to one", num: 3, den: 0.5, want: 3},
		{name: "denominator of one", num: 3, den: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RatioFloorOne(tt.num, tt.den), 1e-9)
		})
	}
}

func TestRatioOrNil(t *testing.T) {
	assert.Nil(t, RatioOrNil(10, 0))

	v := RatioOrNil(10, 4)
	require.NotNil(t, v)
	assert.InDelta(t, 2.5, *v, 1e-9)

	neg := RatioOrNil(10, -2)
	require.NotNil(t, neg)
	assert.InDelta(t, -5.0, *neg, 1e-9)
}
