package util

import (
	"math"
	"testing"
)

func TestFormatTravelTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		minutes  float64
		expected string
	}{
		{name: "zero", minutes: 0, expected: "0 min"},
		{name: "under one hour", minutes: 45, expected: "45 min"},
		{name: "fraction rounds down", minutes: 12.4, expected: "12 min"},
		{name: "fraction rounds up", minutes: 12.5, expected: "13 min"},
		{name: "exact hour", minutes: 60, expected: "1 hr 0 min"},
		{name: "hours and minutes", minutes: 135, expected: "2 hr 15 min"},
		{name: "rounding carries into hour", minutes: 119.6, expected: "2 hr 0 min"},
		{name: "cross country", minutes: 2580, expected: "43 hr 0 min"},
		{name: "negative clamps", minutes: -5, expected: "0 min"},
		{name: "nan clamps", minutes: math.NaN(), expected: "0 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatTravelTime(tt.minutes); got != tt.expected {
				t.Fatalf("FormatTravelTime(%v) = %s, want %s", tt.minutes, got, tt.expected)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		km       float64
		expected string
	}{
		{km: 0, expected: "0.00 km"},
		{km: 12.346, expected: "12.35 km"},
		{km: 4480, expected: "4480.00 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.km); got != tt.expected {
			t.Fatalf("FormatDistance(%v) = %s, want %s", tt.km, got, tt.expected)
		}
	}
}

func TestFormatEmissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kg       float64
		expected string
	}{
		{kg: 4, expected: "4.00 kg"},
		{kg: 50.126, expected: "50.13 kg"},
		{kg: -3.5, expected: "-3.50 kg"},
	}

	for _, tt := range tests {
		if got := FormatEmissions(tt.kg); got != tt.expected {
			t.Fatalf("FormatEmissions(%v) = %s, want %s", tt.kg, got, tt.expected)
		}
	}
}
