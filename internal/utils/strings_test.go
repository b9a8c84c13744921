package utils

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		lf   string
		ll   string
		af   string
		al   string
		want string
	}{
		{"local pair wins", "山田", "太郎", "Taro", "Yamada", "山田 太郎"},
		{"falls back to romanized", "", "", "Taro", "Yamada", "Taro Yamada"},
		{"partial local still local", "山田", "", "Taro", "Yamada", "山田"},
		{"all blank", "", "", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(tc.lf, tc.ll, tc.af, tc.al); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a   b \t c "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
