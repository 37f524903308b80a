package rating

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// Outcome is a match result from the player's side.
type Outcome string

const (
	Win  Outcome = "WIN"
	Draw Outcome = "DRAW"
	Loss Outcome = "LOSS"
)

// Score is the ELO actual score of o.
func (o Outcome) Score() float64 {
	switch o {
	case Win:
		return 1
	case Draw:
		return 0.5
	default:
		return 0
	}
}

// ParseOutcome accepts WIN, DRAW or LOSS in any case.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToUpper(strings.TrimSpace(s))); o {
	case Win, Draw, Loss:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want WIN, DRAW or LOSS)", s)
	}
}

// OutcomeFor compares a player's score with the target they played against.
func OutcomeFor(userScore, targetScore int) Outcome {
	switch {
	case userScore > targetScore:
		return Win
	case userScore < targetScore:
		return Loss
	default:
		return Draw
	}
}

// Ghost is a simulated opponent for a ranked match.
type Ghost struct {
	Name        string `json:"name"`
	CR          int    `json:"cr"`
	TargetScore int    `json:"targetScore"`
}

var ghostNames = []string{"ShadowMath", "PixelMind", "LogicBot", "NumberNinja", "QuantumKid"}

// Ghost target scores are correct answers out of a ten item match.
const (
	ghostSpread   = 100
	minGhostScore = 2
	maxGhostScore = 10
)

// Matchmake draws a ghost within ±100 CR of userCR and the score it will
// post. All randomness comes from s, so a match seed reproduces its ghost.
func Matchmake(userCR int, s *problemgen.Stream) Ghost {
	offset := int(math.Floor(s.Next()*2*ghostSpread)) - ghostSpread
	cr := max(MinRating, userCR+offset)
	name := problemgen.Pick(s, ghostNames)

	base := 0.5 + float64(cr)/4000
	variability := s.Next()*0.2 - 0.1
	target := roundHalfUp(10 * (base + variability))
	return Ghost{
		Name:        name,
		CR:          cr,
		TargetScore: max(minGhostScore, min(maxGhostScore, target)),
	}
}
