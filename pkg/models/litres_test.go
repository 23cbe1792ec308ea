package models

import "testing"

func TestAddLitres(t *testing.T) {
	tests := []struct {
		name     string
		baseline float64
		step     float64
		want     float64
	}{
		{"from zero", 0, 0.25, 0.25},
		{"accumulates", 1.75, 0.25, 2},
		{"fractional baseline", 1.1, 0.25, 1.35},
		{"binary float drift rounds away", 0.1, 0.2, 0.3},
		{"largest step", 2.5, 2, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddLitres(tt.baseline, tt.step); got != tt.want {
				t.Errorf("AddLitres(%v, %v) = %v, want %v", tt.baseline, tt.step, got, tt.want)
			}
		})
	}
}

func TestAddLitresSequence(t *testing.T) {
	// Repeated picker presses must not drift: 4 x 0.75 is exactly 3
	litres := 0.0
	for i := 0; i < 4; i++ {
		litres = AddLitres(litres, 0.75)
	}
	if litres != 3 {
		t.Errorf("four 0.75 steps = %v, want 3", litres)
	}
}

func TestAmount(t *testing.T) {
	if got := Amount(2, 50); got != 100 {
		t.Errorf("Amount(2, 50) = %v, want 100", got)
	}
	if got := Amount(0, 50); got != 0 {
		t.Errorf("Amount(0, 50) = %v, want 0", got)
	}
	// No rounding beyond the inputs' own precision
	if got := Amount(1.5, 52.5); got != 78.75 {
		t.Errorf("Amount(1.5, 52.5) = %v, want 78.75", got)
	}
}

func TestNormalizeName(t *testing.T) {
	if NormalizeName("Ravi ") != NormalizeName("ravi") {
		t.Error(`"Ravi " and "ravi" must resolve to the same payment record`)
	}
	if NormalizeName("  RAVI KUMAR ") != "ravi kumar" {
		t.Errorf("NormalizeName trims and lowercases, got %q", NormalizeName("  RAVI KUMAR "))
	}
}

func TestCustomerDisplayName(t *testing.T) {
	nickname := "Ravi"
	c := Customer{Nickname: &nickname}
	if c.DisplayName() != "Ravi" {
		t.Errorf("DisplayName falls back to nickname, got %q", c.DisplayName())
	}

	c.FullName = "Ravi Kumar"
	if c.DisplayName() != "Ravi Kumar" {
		t.Errorf("DisplayName prefers full name, got %q", c.DisplayName())
	}
}

func TestOverviewPaidToday(t *testing.T) {
	ov := Overview{PaymentsToday: map[string]bool{"ravi": true}}

	if !ov.PaidToday("Ravi ") {
		t.Error("paymentsToday lookup must normalize the name")
	}
	if ov.PaidToday("Suresh") {
		t.Error("unknown customer must read as unpaid")
	}
}

func TestOverviewLitres(t *testing.T) {
	ov := Overview{
		Matrix: map[int]map[int64]Cell{
			3: {7: {Litres: 1.5}},
		},
	}

	if got := ov.Litres(3, 7); got != 1.5 {
		t.Errorf("Litres(3, 7) = %v, want 1.5", got)
	}
	if got := ov.Litres(4, 7); got != 0 {
		t.Errorf("empty day must read 0, got %v", got)
	}
	if got := (&Overview{}).Litres(1, 1); got != 0 {
		t.Errorf("nil matrix must read 0, got %v", got)
	}
}
