package order

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"formatted russian number", "+7 (900) 123-45-67", "+79001234567", false},
		{"bare digits", "89001234567", "89001234567", false},
		{"dots and dashes", "8-900.123.45.67", "89001234567", false},
		{"too short", "12345", "", true},
		{"too long", "+123456789012345678", "", true},
		{"letters only", "call me maybe", "", true},
		{"plus in the middle", "8900+1234567", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses() {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false for a listed status", s)
		}
	}
	for _, s := range []string{"", "shipped", "NEW", "done"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
