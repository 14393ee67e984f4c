package accrual_test

import (
	"testing"

	"github.com/businessregulatoryreviewagency/brra/internal/accrual"

	"github.com/stretchr/testify/assert"
)

func TestDays(t *testing.T) {
	tests := []struct {
		name   string
		months int
		rate   float64
		want   int
	}{
		{"five months at default rate floors 12.5 to 12", 5, accrual.DefaultRate, 12},
		{"even product stays exact", 4, 2.5, 10},
		{"single month floors below rate", 1, 2.5, 2},
		{"twelve months full year", 12, 2.5, 30},
		{"custom rate", 3, 3.0, 9},
		{"fractional rate floors", 7, 1.75, 12},
		{"zero months accrues nothing", 0, 2.5, 0},
		{"negative months accrues nothing", -4, 2.5, 0},
		{"zero rate accrues nothing", 6, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accrual.Days(tt.months, tt.rate))
		})
	}
}
