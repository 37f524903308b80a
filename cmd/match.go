package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/rating"
	"github.com/abhisek/mathquest/internal/store"
)

// matchQuestions is the length of an arena match; ghost targets are out of it.
const matchQuestions = 10

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Arena matches against rated opponents",
}

var matchRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a finished match and apply rating, XP and badges",
	Long: `Record a finished arena match.

By default the opponent is a ghost drawn from --seed near the player's CR and
the outcome compares --score with the ghost's target. Pass --outcome and
--opponent-cr to record a match against a known opponent instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		skill, _ := cmd.Flags().GetString("skill")
		score, _ := cmd.Flags().GetInt("score")
		seed, _ := cmd.Flags().GetString("seed")
		ranked, _ := cmd.Flags().GetBool("ranked")

		if score < 0 || score > matchQuestions {
			return fmt.Errorf("--score must be between 0 and %d", matchQuestions)
		}
		fixed, opponentCR, err := fixedOpponent(cmd)
		if err != nil {
			return err
		}
		if seed == "" {
			seed = uuid.NewString()
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		now := time.Now()
		var ghost *rating.Ghost
		u, err := rt.profiles.Apply(cmd.Context(), user, func(p progression.Profile) store.Activity {
			in := progression.MatchInput{SkillID: skill, Ranked: ranked, Outcome: fixed, OpponentCR: opponentCR}
			ghost = nil
			if fixed == "" {
				g := rating.Matchmake(p.CR, problemgen.NewStream(seed))
				ghost = &g
				in.OpponentCR = g.CR
				in.Outcome = rating.OutcomeFor(score, g.TargetScore)
			}
			return store.Activity{
				Update:   progression.ApplyMatch(p, in, now, rt.catalog),
				SkillID:  skill,
				Match:    &in,
				Attempts: matchQuestions,
				Correct:  score,
				At:       now,
			}
		})
		if err != nil {
			return fmt.Errorf("save match: %w", err)
		}

		return printJSON(cmd, map[string]any{
			"seed":        seed,
			"ghost":       ghost,
			"progression": u,
		})
	},
}

// fixedOpponent reads --outcome and --opponent-cr. An empty outcome means
// the opponent is a ghost.
func fixedOpponent(cmd *cobra.Command) (rating.Outcome, int, error) {
	raw, _ := cmd.Flags().GetString("outcome")
	if raw == "" {
		return "", 0, nil
	}
	o, err := rating.ParseOutcome(raw)
	if err != nil {
		return "", 0, err
	}
	if !cmd.Flags().Changed("opponent-cr") {
		return "", 0, fmt.Errorf("--opponent-cr is required with --outcome")
	}
	cr, _ := cmd.Flags().GetInt("opponent-cr")
	if cr < rating.MinRating || cr > rating.MaxRating {
		return "", 0, fmt.Errorf("--opponent-cr must be between %d and %d", rating.MinRating, rating.MaxRating)
	}
	return o, cr, nil
}

func init() {
	addMatchFlags(matchRecordCmd)
	_ = matchRecordCmd.MarkFlagRequired("user")
	_ = matchRecordCmd.MarkFlagRequired("skill")

	matchCmd.AddCommand(matchRecordCmd)
}

func addMatchFlags(c *cobra.Command) {
	c.Flags().String("user", "", "User ID (required)")
	c.Flags().String("skill", "", "Skill ID (required)")
	c.Flags().Int("score", 0, "Correct answers out of 10")
	c.Flags().String("seed", "", "Match seed; the same seed draws the same ghost")
	c.Flags().Bool("ranked", true, "Ranked matches move CR")
	c.Flags().String("outcome", "", "WIN, DRAW or LOSS against a known opponent")
	c.Flags().Int("opponent-cr", 0, "Opponent CR when --outcome is set")
}
