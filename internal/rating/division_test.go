package rating

import "testing"

func TestDivisionFor(t *testing.T) {
	tests := []struct {
		cr   int
		want Division
	}{
		{0, Bronze},
		{1099, Bronze},
		{1100, Silver},
		{1150, Silver},
		{1299, Silver},
		{1300, Gold},
		{1500, Platinum},
		{1700, Diamond},
		{1899, Diamond},
		{1900, Master},
		{3000, Master},
	}
	for _, tt := range tests {
		if got := DivisionFor(tt.cr); got != tt.want {
			t.Errorf("DivisionFor(%d) = %s, want %s", tt.cr, got, tt.want)
		}
	}
}

func TestCheckPromotion(t *testing.T) {
	tests := []struct {
		name                string
		oldCR, newCR        int
		promoted, relegated bool
		newDivision         Division
		isNewDivision       bool
	}{
		{"promoted to silver", 1090, 1110, true, false, Silver, true},
		{"relegated to silver", 1310, 1290, false, true, Silver, true},
		{"same division", 1310, 1350, false, false, Gold, false},
		{"double jump", 1000, 1550, true, false, Platinum, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPromotion(tt.oldCR, tt.newCR)
			if got.Promoted != tt.promoted || got.Relegated != tt.relegated {
				t.Errorf("promoted=%v relegated=%v, want %v/%v", got.Promoted, got.Relegated, tt.promoted, tt.relegated)
			}
			if got.NewDivision != tt.newDivision {
				t.Errorf("NewDivision = %s, want %s", got.NewDivision, tt.newDivision)
			}
			if got.IsNewDivision != tt.isNewDivision {
				t.Errorf("IsNewDivision = %v, want %v", got.IsNewDivision, tt.isNewDivision)
			}
		})
	}
}

func TestDivision_AtLeast(t *testing.T) {
	if !Platinum.AtLeast(Gold) || !Gold.AtLeast(Gold) {
		t.Error("expected Platinum and Gold to be at least Gold")
	}
	if Silver.AtLeast(Gold) {
		t.Error("Silver should not be at least Gold")
	}
}
