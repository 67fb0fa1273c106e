package region

import "testing"

func TestOf(t *testing.T) {
	cases := []struct {
		country string
		want    Region
	}{
		{"SE", Europe},
		{"FR", Europe},
		{"RU", Europe}, // CIS competes in the European circuit
		{"KZ", Europe},
		{"US", Americas},
		{"BR", Americas},
		{"AR", Americas},
		{"CN", RestOfWorld},
		{"AU", RestOfWorld},
		{"MN", RestOfWorld},
		{"", RestOfWorld},
	}
	for _, tc := range cases {
		if got := Of(tc.country); got != tc.want {
			t.Errorf("Of(%q) = %v, want %v", tc.country, got, tc.want)
		}
	}
}

func TestFromName(t *testing.T) {
	for _, name := range []string{"Europe", "Americas", "Asia"} {
		reg, ok := FromName(name)
		if !ok {
			t.Fatalf("FromName(%q) not recognized", name)
		}
		if reg.String() != name {
			t.Errorf("round trip %q -> %v -> %q", name, reg, reg.String())
		}
	}
	if _, ok := FromName("Atlantis"); ok {
		t.Error("unknown region name must not resolve")
	}
}
