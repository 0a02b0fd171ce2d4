package timefmt

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0m", 0},
		{"45m", 45},
		{"1h", 60},
		{"2h 30m", 150},
		{"2h30m", 150},
		{" 1h  5m ", 65},
		{"0h 0m", 0},
		{"", 0},
		{"garbage", 0},
		{"h m", 0},
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.want {
			t.Errorf("Parse(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{150, "2h 30m"},
		{-10, "0m"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n < 10000; n++ {
		if got := Parse(Format(n)); got != n {
			t.Fatalf("Parse(Format(%d)) = %d", n, got)
		}
	}
}
