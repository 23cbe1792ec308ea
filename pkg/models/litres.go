package models

import (
	"math"
	"strings"
)

// QuickAddSteps are the fixed litre increments offered by the quick-entry picker
var QuickAddSteps = []float64{0.25, 0.5, 0.75, 1, 2}

// AddLitres accumulates one quick-add increment onto a baseline, rounded to
// two decimals so repeated fractional steps don't drift
func AddLitres(baseline, step float64) float64 {
	return math.Round((baseline+step)*100) / 100
}

// Amount computes the entry amount at submit time. The server stores it as
// sent and does not rederive it.
func Amount(litres, rate float64) float64 {
	return litres * rate
}

// NormalizeName canonicalizes a customer name for payment-row matching.
// Payments are joined to customers by name, so " Ravi" and "ravi" must
// resolve to the same record.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
