package main

import "testing"

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"0.5", 0.5},
		{"-12", float64(-12)},
		{" 3 ", float64(3)},
		{"mute", "mute"},
		{"10dB", "10dB"},
	}
	for _, tc := range cases {
		got := parseValue(tc.in)
		if got != tc.want {
			t.Fatalf("parseValue(%q) = %v (%T), want %v (%T)", tc.in, got, got, tc.want, tc.want)
		}
	}
}
