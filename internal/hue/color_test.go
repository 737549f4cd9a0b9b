package hue

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Color
		expected Color
	}{
		{"red plus yellow is orange", Red, Yellow, Orange},
		{"yellow plus blue is green", Yellow, Blue, Green},
		{"red plus blue is purple", Red, Blue, Purple},
		{"orange plus blue is black", Orange, Blue, Black},
		{"none is identity", None, Purple, Purple},
		{"combine with self is idempotent", Green, Green, Green},
		{"black absorbs everything", Black, Red, Black},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Combine(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("Combine(%v, %v) = %v, expected %v", tc.a, tc.b, result, tc.expected)
			}
			// Also test commutativity
			reversed := Combine(tc.b, tc.a)
			if reversed != tc.expected {
				t.Errorf("Combine(%v, %v) = %v, expected %v", tc.b, tc.a, reversed, tc.expected)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		source   Color
		toRemove Color
		expected Color
	}{
		{"remove red from orange", Orange, Red, Yellow},
		{"remove yellow from black", Black, Yellow, Purple},
		{"remove absent pigment is ignored", Red, Blue, Red},
		{"remove everything", Green, Green, None},
		{"remove secondary from black", Black, Green, Red},
		{"remove from none", None, Red, None},
		{"remove none", Purple, None, Purple},
		{"partial overlap", Orange, Green, Red},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Subtract(tc.source, tc.toRemove)
			if result != tc.expected {
				t.Errorf("Subtract(%v, %v) = %v, expected %v", tc.source, tc.toRemove, result, tc.expected)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		inv      Color
		required Color
		expected bool
	}{
		{"exact match", Red, Red, true},
		{"superset passes", Orange, Red, true},
		{"black contains every secondary", Black, Green, true},
		{"missing pigment fails", Red, Orange, false},
		{"disjoint fails", Yellow, Blue, false},
		{"everything contains none", Blue, None, true},
		{"none contains none", None, None, true},
		{"none never covers a pigment", None, Red, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Contains(tc.inv, tc.required)
			if result != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.inv, tc.required, result, tc.expected)
			}
		})
	}
}

func TestCanPassThrough(t *testing.T) {
	// A None barrier blocks nobody, even a colorless entity.
	if !CanPassThrough(None, None) {
		t.Error("CanPassThrough(None, None) should be true")
	}
	if !CanPassThrough(Red, None) {
		t.Error("a none barrier should let a red entity through")
	}

	// The black barrier boundary: only black passes.
	for _, c := range AllColors() {
		got := CanPassThrough(c, Black)
		want := c == Black
		if got != want {
			t.Errorf("CanPassThrough(%v, Black) = %v, expected %v", c, got, want)
		}
	}

	// Residue pigments never block: orange passes a red barrier.
	if !CanPassThrough(Orange, Red) {
		t.Error("orange should pass a red barrier")
	}
	if CanPassThrough(Yellow, Red) {
		t.Error("yellow should not pass a red barrier")
	}
}

func TestSubtractAfterPass(t *testing.T) {
	// Passing a red barrier with orange leaves yellow behind.
	combined := Combine(Red, Yellow)
	if !CanPassThrough(combined, Red) {
		t.Fatal("orange should pass a red barrier")
	}
	left := Subtract(combined, Red)
	if left != Yellow {
		t.Errorf("after passing red with orange, remainder = %v, expected Yellow", left)
	}
}

func TestPrimaryCount(t *testing.T) {
	tests := []struct {
		color    Color
		expected int
	}{
		{None, 0},
		{Red, 1},
		{Yellow, 1},
		{Blue, 1},
		{Orange, 2},
		{Green, 2},
		{Purple, 2},
		{Black, 3},
	}

	for _, tc := range tests {
		if got := tc.color.PrimaryCount(); got != tc.expected {
			t.Errorf("%v.PrimaryCount() = %d, expected %d", tc.color, got, tc.expected)
		}
	}

	if !Red.IsPrimary() || Orange.IsPrimary() {
		t.Error("IsPrimary should hold for exactly one pigment")
	}
	if !Green.IsSecondary() || Blue.IsSecondary() {
		t.Error("IsSecondary should hold for exactly two pigments")
	}
	if !Black.IsBlack() || Purple.IsBlack() {
		t.Error("IsBlack should hold only for all three pigments")
	}
	if !None.IsNone() || Red.IsNone() {
		t.Error("IsNone should hold only for the empty color")
	}
}

func TestSplit(t *testing.T) {
	parts := Black.Split()
	if len(parts) != 3 || parts[0] != Red || parts[1] != Yellow || parts[2] != Blue {
		t.Errorf("Black.Split() = %v, expected [Red Yellow Blue]", parts)
	}

	parts = Green.Split()
	if len(parts) != 2 || parts[0] != Yellow || parts[1] != Blue {
		t.Errorf("Green.Split() = %v, expected [Yellow Blue]", parts)
	}

	if len(None.Split()) != 0 {
		t.Error("None.Split() should be empty")
	}

	// Recombining the parts restores the original color.
	for _, c := range AllColors() {
		sum := None
		for _, p := range c.Split() {
			sum = Combine(sum, p)
		}
		if sum != c {
			t.Errorf("recombining Split(%v) = %v, expected %v", c, sum, c)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		ok       bool
	}{
		{"red", Red, true},
		{"Yellow", Yellow, true},
		{"BLUE", Blue, true},
		{"orange", Orange, true},
		{"green", Green, true},
		{"purple", Purple, true},
		{"black", Black, true},
		{"k", Black, true},
		{"none", None, true},
		{"", None, true},
		{" red ", Red, true},
		{"mauve", None, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.input)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, c := range AllColors() {
		parsed, ok := ParseColor(c.String())
		if !ok || parsed != c {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, true)", c.String(), parsed, ok, c)
		}
	}
}
