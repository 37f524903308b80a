package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/mastery"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Adaptive practice for one skill",
}

// practiceItem is a practice question plus what is needed to answer it.
type practiceItem struct {
	SkillID    string  `json:"skillId"`
	Difficulty float64 `json:"difficulty"`
	Seed       string  `json:"seed"`
	problemgen.Result
}

var practiceNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Generate the next item at the user's adaptive difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		skill, _ := cmd.Flags().GetString("skill")
		seed, _ := cmd.Flags().GetString("seed")
		if seed == "" {
			seed = uuid.NewString()
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, res, err := rt.mastery.NextItem(cmd.Context(), user, skill, seed)
		if err != nil {
			return err
		}
		return printJSON(cmd, practiceItem{SkillID: p.SkillID, Difficulty: p.Difficulty, Seed: p.Seed, Result: res})
	},
}

var practiceAnswerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Grade an answer to a seeded item and update mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := mastery.Answer{}
		a.UserID, _ = cmd.Flags().GetString("user")
		a.SkillID, _ = cmd.Flags().GetString("skill")
		a.Seed, _ = cmd.Flags().GetString("seed")
		a.Difficulty, _ = cmd.Flags().GetFloat64("difficulty")
		a.Given, _ = cmd.Flags().GetString("answer")
		a.TimeTakenMs, _ = cmd.Flags().GetInt64("time-ms")
		a.HintsUsed, _ = cmd.Flags().GetInt("hints")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := submitPractice(cmd.Context(), rt, a, time.Now())
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func init() {
	for _, c := range []*cobra.Command{practiceNextCmd, practiceAnswerCmd} {
		c.Flags().String("user", "", "User ID (required)")
		c.Flags().String("skill", "", "Skill ID (required)")
		_ = c.MarkFlagRequired("user")
		_ = c.MarkFlagRequired("skill")
	}
	practiceNextCmd.Flags().String("seed", "", "Item seed (default random)")

	practiceAnswerCmd.Flags().String("seed", "", "Seed of the item being answered (required)")
	practiceAnswerCmd.Flags().Float64("difficulty", 1, "Difficulty of the item being answered")
	practiceAnswerCmd.Flags().String("answer", "", "The answer given")
	practiceAnswerCmd.Flags().Int64("time-ms", 0, "Time taken in milliseconds")
	practiceAnswerCmd.Flags().Int("hints", 0, "Hints used")
	_ = practiceAnswerCmd.MarkFlagRequired("seed")

	practiceCmd.AddCommand(practiceNextCmd)
	practiceCmd.AddCommand(practiceAnswerCmd)
}

type practiceResult struct {
	Mastery     mastery.Outcome    `json:"mastery"`
	Progression progression.Update `json:"progression"`
}

// submitPractice grades a, updates mastery, and records the practice day and
// the attempt on the profile.
func submitPractice(ctx context.Context, rt *runtime, a mastery.Answer, now time.Time) (practiceResult, error) {
	out, err := rt.mastery.Submit(ctx, a)
	if err != nil {
		return practiceResult{}, fmt.Errorf("record answer: %w", err)
	}

	correct := 0
	if out.Summary.IsCorrect {
		correct = 1
	}
	u, err := rt.profiles.Apply(ctx, a.UserID, func(p progression.Profile) store.Activity {
		return store.Activity{
			Update:   progression.ApplyPractice(p, now, rt.catalog),
			SkillID:  a.SkillID,
			Attempts: 1,
			Correct:  correct,
			At:       now,
		}
	})
	if err != nil {
		return practiceResult{}, fmt.Errorf("save profile: %w", err)
	}
	return practiceResult{Mastery: out, Progression: u}, nil
}
