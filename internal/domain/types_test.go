package domain

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodValid(t *testing.T) {
	for _, p := range []Period{Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y, Period10Y, PeriodMax} {
		if !p.Valid() {
			t.Errorf("Period(%q).Valid() = false, want true", p)
		}
	}
	if Period("4mo").Valid() {
		t.Error(`Period("4mo").Valid() = true, want false`)
	}
	if Period("").Valid() {
		t.Error(`Period("").Valid() = true, want false`)
	}
}

func TestPeriodStart(t *testing.T) {
	ref := day("2025-06-15")

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Period1Mo, day("2025-05-15")},
		{Period6Mo, day("2024-12-15")},
		{Period2Y, day("2023-06-15")},
		{Period10Y, day("2015-06-15")},
	}
	for _, tt := range tests {
		if got := tt.period.Start(ref); !got.Equal(tt.want) {
			t.Errorf("Period(%q).Start() = %s, want %s", tt.period,
				got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}

	// "max" reaches back further than any supported fixed period.
	if got := PeriodMax.Start(ref); !got.Before(Period10Y.Start(ref)) {
		t.Errorf("PeriodMax.Start() = %s, want before the 10y start", got.Format("2006-01-02"))
	}
}

func TestValidateSeries(t *testing.T) {
	valid := []Bar{
		{Date: day("2024-01-02"), Close: 100},
		{Date: day("2024-01-03"), Close: 101},
		{Date: day("2024-01-04"), Close: 102},
	}
	if err := ValidateSeries(valid); err != nil {
		t.Errorf("ValidateSeries(valid) = %v, want nil", err)
	}

	var insufficient *InsufficientDataError
	if err := ValidateSeries(nil); !errors.As(err, &insufficient) {
		t.Errorf("ValidateSeries(nil) = %v, want InsufficientDataError", err)
	}

	duplicate := []Bar{
		{Date: day("2024-01-02"), Close: 100},
		{Date: day("2024-01-02"), Close: 101},
	}
	if err := ValidateSeries(duplicate); err == nil {
		t.Error("ValidateSeries with duplicate dates returned nil, want error")
	}

	outOfOrder := []Bar{
		{Date: day("2024-01-03"), Close: 100},
		{Date: day("2024-01-02"), Close: 101},
	}
	if err := ValidateSeries(outOfOrder); err == nil {
		t.Error("ValidateSeries with out-of-order dates returned nil, want error")
	}
}

func TestCloses(t *testing.T) {
	bars := []Bar{
		{Date: day("2024-01-02"), Close: 100.5},
		{Date: day("2024-01-03"), Close: 99.25},
	}
	got := Closes(bars)
	if len(got) != 2 || got[0] != 100.5 || got[1] != 99.25 {
		t.Errorf("Closes() = %v, want [100.5 99.25]", got)
	}
}

func TestErrorMessages(t *testing.T) {
	cfgErr := &ConfigError{Param: "commission", Reason: "must be within [0, 1]"}
	if cfgErr.Error() != "invalid commission: must be within [0, 1]" {
		t.Errorf("ConfigError.Error() = %q", cfgErr.Error())
	}

	dataErr := &InsufficientDataError{Have: 1, Need: 2}
	if dataErr.Error() != "insufficient data: have 1 bars, need at least 2" {
		t.Errorf("InsufficientDataError.Error() = %q", dataErr.Error())
	}
}
