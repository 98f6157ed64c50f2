package answers

import "testing"

func TestNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float64", float64(2.5), 2.5, true},
		{"float32", float32(1.5), 1.5, true},
		{"int", 7, 7, true},
		{"int64", int64(-3), -3, true},
		{"uint", uint(4), 4, true},
		{"numeric string", "42", 42, true},
		{"padded numeric string", " 42 ", 42, true},
		{"decimal string", "3.14", 3.14, true},
		{"word", "forty-two", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"slice", []int{1}, 0, false},
	}

	for _, tc := range cases {
		got, ok := Number(tc.value)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: Number(%v) = (%v, %v), want (%v, %v)", tc.name, tc.value, got, ok, tc.want, tc.ok)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"plain", "plain"},
		{[]byte("bytes"), "bytes"},
		{42, "42"},
		{2.5, "2.5"},
		{true, "true"},
		{[]string{"a", "b"}, "[a b]"},
	}

	for _, tc := range cases {
		if got := String(tc.value); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"same strings", "yes", "yes", true},
		{"different strings", "yes", "no", false},
		{"bools", true, true, true},
		{"bool mismatch", true, false, false},
		{"cross width numbers", float64(5), 5, true},
		{"int64 and int", int64(10), 10, true},
		{"number and numeric string", 5, "5", false},
		{"numeric string and number", "5", 5, false},
		{"nils", nil, nil, true},
		{"nil and value", nil, "x", false},
		{"string and bool", "true", true, false},
		{"slices never equal", []string{"a"}, []string{"a"}, false},
		{"maps never equal", map[string]any{}, map[string]any{}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
