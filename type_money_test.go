package portfolio

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m            Money
		want, signed string
	}{
		{m: USD(1234.5), want: "$1,234.50", signed: "+$1,234.50"},
		{m: USD(-100), want: "-$100.00", signed: "-$100.00"},
		{m: USD(0.001), want: "$0.00", signed: "-"},
		{m: NO(3.456), want: "3.46", signed: "+3.46"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if got := tc.m.SignedString(); got != tc.signed {
			t.Errorf("SignedString() = %q, want %q", got, tc.signed)
		}
	}
}

func TestMoney_Round(t *testing.T) {
	if got, want := USD(106.666666).Round(), USD(106.67); !got.Equal(want) {
		t.Errorf("Round() = %v, want %v", got, want)
	}
	if got, want := M(1234.56, "JPY").Round(), M(1235, "JPY"); !got.Equal(want) {
		t.Errorf("Round() = %v, want %v", got, want)
	}
}

func TestMoney_Ratio(t *testing.T) {
	if got := USD(20).Ratio(USD(0)); !got.IsZero() {
		t.Errorf("Ratio(0) = %v, want 0", got)
	}
	if got := USD(20).Ratio(USD(200)); got.String() != "0.1" {
		t.Errorf("Ratio() = %v, want 0.1", got)
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	if got := NO(1).Add(USD(2)); got.Currency() != "USD" || !got.Equal(USD(3)) {
		t.Errorf("Add() = %v %q, want 3 USD", got, got.Currency())
	}
	defer func() {
		if recover() == nil {
			t.Error("adding EUR to USD did not panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "KRW"} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%q) error = %v", code, err)
		}
	}
	if err := ValidateCurrency("XYZ"); err == nil {
		t.Error("ValidateCurrency(XYZ) succeeded, want an error")
	}
}

func TestPercent_SignedString(t *testing.T) {
	testCases := []struct {
		p    Percent
		want string
	}{
		{p: 20, want: "+20.00%"},
		{p: -10, want: "-10.00%"},
		{p: 0.001, want: "-"},
		{p: -0.004, want: "-"},
		{p: 8.333333, want: "+8.33%"},
	}
	for _, tc := range testCases {
		if got := tc.p.SignedString(); got != tc.want {
			t.Errorf("SignedString(%v) = %q, want %q", float64(tc.p), got, tc.want)
		}
	}
}
