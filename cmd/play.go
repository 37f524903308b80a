package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/mastery"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive practice session",
	Long: `Answer adaptive practice questions for one skill on the terminal.

Each answer updates mastery exactly like "practice answer". Enter an empty
line to skip a question.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().String("user", "", "User ID (required)")
	playCmd.Flags().String("skill", "", "Skill ID (required)")
	playCmd.Flags().Int("count", 5, "Number of questions")
	_ = playCmd.MarkFlagRequired("user")
	_ = playCmd.MarkFlagRequired("skill")
}

func runPlay(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	skill, _ := cmd.Flags().GetString("skill")
	count, _ := cmd.Flags().GetInt("count")

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(os.Stdin)

	var correct int
	var last mastery.Outcome
	for i := 1; i <= count; i++ {
		p, res, err := rt.mastery.NextItem(ctx, user, skill, uuid.NewString())
		if err != nil {
			return err
		}
		q := res.Content

		// Display question.
		fmt.Fprintf(out, "── Question %d/%d (difficulty %g) ──\n", i, count, p.Difficulty)
		fmt.Fprintln(out, q.Question)
		for j, h := range q.Hints {
			fmt.Fprintf(out, "  hint %d: %s\n", j+1, h)
		}

		// Read answer.
		fmt.Fprint(out, "\nYour answer: ")
		asked := time.Now()
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		graded, err := submitPractice(ctx, rt, mastery.Answer{
			UserID:      user,
			SkillID:     skill,
			Seed:        p.Seed,
			Difficulty:  p.Difficulty,
			Given:       answer,
			TimeTakenMs: time.Since(asked).Milliseconds(),
		}, time.Now())
		if err != nil {
			return err
		}
		last = graded.Mastery

		if last.Summary.IsCorrect {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		if last.Unlocked {
			fmt.Fprintln(out, "Skill unlocked!")
		}
		fmt.Fprintln(out)
	}

	// Summary.
	fmt.Fprintf(out, "── Summary: %d/%d correct, mastery %.0f (%s) ──\n",
		correct, count, last.State.Score, last.Tier)
	return nil
}
