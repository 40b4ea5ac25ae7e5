package validate_test

import (
	"testing"

	"lofireads/internal/validate"
)

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("maya@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "no-at-sign", "a@b", "  "} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQtyClampsUpperBoundOnly(t *testing.T) {
	// zero and negatives pass through so the cart can treat them as removals
	cases := map[string]int{"3": 3, "0": 0, "-4": -4, "999": 50, " 7 ": 7}
	for in, want := range cases {
		got, ok := validate.Qty(in)
		if !ok || got != want {
			t.Fatalf("Qty(%q) = %d, %v; want %d", in, got, ok, want)
		}
	}
	if _, ok := validate.Qty("abc"); ok {
		t.Fatal("garbage qty accepted")
	}
}

func TestPasswordPolicy(t *testing.T) {
	good := []string{"Passw0rd!", "Str0ng#Pass"}
	for _, p := range good {
		if !validate.Password(p) {
			t.Fatalf("rejected %q", p)
		}
	}
	bad := []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSymbol11", "Sh0r!t"}
	for _, p := range bad {
		if validate.Password(p) {
			t.Fatalf("accepted %q", p)
		}
	}
}

func TestIDAndZIP(t *testing.T) {
	if _, ok := validate.ID("book_1-a"); !ok {
		t.Fatal("valid id rejected")
	}
	if _, ok := validate.ID("space here"); ok {
		t.Fatal("id with space accepted")
	}
	if _, ok := validate.ZIP("97201"); !ok {
		t.Fatal("valid zip rejected")
	}
	if _, ok := validate.ZIP("9720"); ok {
		t.Fatal("short zip accepted")
	}
}

func TestFilterBounds(t *testing.T) {
	if v := validate.PriceBound("19.99"); v == nil || *v != 19.99 {
		t.Fatalf("price bound %v", v)
	}
	for _, bad := range []string{"", "abc", "-5"} {
		if v := validate.PriceBound(bad); v != nil {
			t.Fatalf("PriceBound(%q) = %v", bad, *v)
		}
	}
	if v := validate.YearBound("2021"); v == nil || *v != 2021 {
		t.Fatalf("year bound %v", v)
	}
	if v := validate.YearBound("later"); v != nil {
		t.Fatalf("YearBound garbage = %v", *v)
	}
}
