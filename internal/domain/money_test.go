package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "50", want: 5000},
		{in: "25.50", want: 2550},
		{in: "0.50", want: 50},
		{in: "0.01", want: 1},
		{in: "1000000", want: 100000000},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "0.005", wantErr: true},
		{in: "10.999", wantErr: true},
	}
	for _, tt := range tests {
		got, err := AmountToCents(decimal.RequireFromString(tt.in))
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("AmountToCents(%s) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("AmountToCents(%s) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AmountToCents(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCentsToAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{2550, "25.5"},
		{50, "0.5"},
		{1, "0.01"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := CentsToAmount(tt.in).String(); got != tt.want {
			t.Errorf("CentsToAmount(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 50, 2550, 100000000} {
		amount := CentsToAmount(cents)
		back, err := AmountToCents(amount)
		if err != nil {
			t.Fatalf("round trip %d: %v", cents, err)
		}
		if back != cents {
			t.Fatalf("round trip %d came back as %d", cents, back)
		}
	}
}
