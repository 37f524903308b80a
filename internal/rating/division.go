package rating

// Division is a CR bracket.
type Division string

const (
	Bronze   Division = "BRONZE"
	Silver   Division = "SILVER"
	Gold     Division = "GOLD"
	Platinum Division = "PLATINUM"
	Diamond  Division = "DIAMOND"
	Master   Division = "MASTER"
)

// Bracket is a division with its inclusive lower bound.
type Bracket struct {
	Division Division
	Min      int
}

// Brackets lists every division in ascending order.
var Brackets = []Bracket{
	{Bronze, 0},
	{Silver, 1100},
	{Gold, 1300},
	{Platinum, 1500},
	{Diamond, 1700},
	{Master, 1900},
}

// DivisionFor returns the division containing cr.
func DivisionFor(cr int) Division {
	for i := len(Brackets) - 1; i > 0; i-- {
		if cr >= Brackets[i].Min {
			return Brackets[i].Division
		}
	}
	return Bronze
}

// MinFor returns the lower bound of d, or -1 for an unknown division.
func MinFor(d Division) int {
	for _, b := range Brackets {
		if b.Division == d {
			return b.Min
		}
	}
	return -1
}

// AtLeast reports whether d ranks at or above other.
func (d Division) AtLeast(other Division) bool {
	return MinFor(d) >= MinFor(other)
}

// Promotion describes a division change caused by a rating change.
type Promotion struct {
	Promoted      bool     `json:"promoted"`
	Relegated     bool     `json:"relegated"`
	NewDivision   Division `json:"newDivision"`
	IsNewDivision bool     `json:"isNewDivision"`
}

// CheckPromotion compares the divisions of oldCR and newCR by bracket
// minimum.
func CheckPromotion(oldCR, newCR int) Promotion {
	oldDiv, newDiv := DivisionFor(oldCR), DivisionFor(newCR)
	changed := oldDiv != newDiv
	oldMin, newMin := MinFor(oldDiv), MinFor(newDiv)
	return Promotion{
		Promoted:      changed && newMin > oldMin,
		Relegated:     changed && newMin < oldMin,
		NewDivision:   newDiv,
		IsNewDivision: changed,
	}
}
