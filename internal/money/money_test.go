package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1000", "1000", false},
		{" 12.50 ", "12.5", false},
		{"0", "0", false},
		{"-1", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			d, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) should fail", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.in, err)
			}
			if d.String() != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, d.String(), tc.want)
			}
		})
	}
}

func TestParsePositiveRejectsZero(t *testing.T) {
	if _, err := ParsePositive("0"); err == nil {
		t.Error("ParsePositive(0) should fail")
	}
	if _, err := ParsePositive("0.01"); err != nil {
		t.Errorf("ParsePositive(0.01) failed: %v", err)
	}
}

func TestSum(t *testing.T) {
	t.Run("exact decimal addition", func(t *testing.T) {
		// 0.1 + 0.2 is exactly 0.3 here; floats would drift.
		total, err := Sum([]string{"0.1", "0.2"})
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if total.String() != "0.3" {
			t.Errorf("Sum = %s, want 0.3", total.String())
		}
	})

	t.Run("empty input sums to zero", func(t *testing.T) {
		total, err := Sum(nil)
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}
		if !total.IsZero() {
			t.Errorf("Sum = %s, want 0", total.String())
		}
	})

	t.Run("corrupt entry surfaces an error", func(t *testing.T) {
		if _, err := Sum([]string{"1", "??"}); err == nil {
			t.Error("Sum should fail on an unparseable amount")
		}
	})
}
