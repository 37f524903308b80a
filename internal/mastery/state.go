package mastery

// State is the per (user, skill) mastery record.
type State struct {
	Score                   float64 `json:"score"`
	Stability               int     `json:"stability"`
	Frustration             float64 `json:"frustration"`
	Confidence              float64 `json:"confidence"`
	Streak                  int     `json:"streak"`
	CurrentDifficulty       float64 `json:"currentDifficulty"`
	HighestDifficultySolved float64 `json:"highestDifficultySolved"`
}

// DefaultState is the state of a skill the user has never practiced.
func DefaultState() State {
	return State{
		Confidence:        50,
		CurrentDifficulty: 1,
	}
}

// ItemResult is one answered practice item.
type ItemResult struct {
	IsCorrect   bool    `json:"isCorrect"`
	TimeTakenMs int64   `json:"timeTakenMs"`
	HintsUsed   int     `json:"hintsUsed"`
	Difficulty  float64 `json:"difficulty"`
}
