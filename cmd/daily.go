package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/store"
)

// dailyView is the day's challenge. Completed is reported when --user is set.
type dailyView struct {
	Date      string                 `json:"date"`
	Questions []problemgen.DailyItem `json:"questions"`
	Completed *bool                  `json:"completed,omitempty"`
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the daily challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd)
		if err != nil {
			return err
		}
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			items := problemgen.DailyChallenge(newGenerator(stderrLogger(cmd)), date)
			return printJSON(cmd, dailyView{Date: date.Format(time.DateOnly), Questions: items})
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		done, err := rt.profiles.DailyCompleted(cmd.Context(), user, date)
		if err != nil {
			return err
		}
		return printJSON(cmd, dailyView{
			Date:      date.Format(time.DateOnly),
			Questions: problemgen.DailyChallenge(rt.gen, date),
			Completed: &done,
		})
	},
}

var dailyCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Grade today's daily challenge and grant its XP (once per UTC day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		raw, _ := cmd.Flags().GetStringToString("answer")
		answers, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		now := time.Now().UTC()
		items := problemgen.DailyChallenge(rt.gen, now)
		score := progression.DailyScore{Total: len(items)}
		for _, it := range items {
			if strings.TrimSpace(answers[it.Index]) == it.Content.CorrectAnswer {
				score.Correct++
			}
		}

		u, err := rt.profiles.Apply(cmd.Context(), user, func(p progression.Profile) store.Activity {
			return store.Activity{
				Update:    progression.ApplyDailyChallenge(p, score, now, rt.catalog),
				Challenge: &score,
				At:        now,
			}
		})
		if errors.Is(err, progression.ErrDuplicate) {
			return fmt.Errorf("%s already completed the daily challenge for %s", user, now.Format(time.DateOnly))
		}
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return printJSON(cmd, map[string]any{
			"correct":     score.Correct,
			"total":       score.Total,
			"progression": u,
		})
	},
}

func init() {
	dailyCmd.Flags().String("date", "", "UTC date as YYYY-MM-DD (default today)")
	dailyCmd.Flags().String("user", "", "Report whether this user has completed the day's challenge")

	dailyCompleteCmd.Flags().String("user", "", "User ID (required)")
	dailyCompleteCmd.Flags().StringToString("answer", nil, "Answers by question id, e.g. 0=7,1=13")
	_ = dailyCompleteCmd.MarkFlagRequired("user")

	dailyCmd.AddCommand(dailyCompleteCmd)
}

func dateFlag(cmd *cobra.Command) (time.Time, error) {
	v, _ := cmd.Flags().GetString("date")
	if v == "" {
		return time.Now().UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", v, err)
	}
	return d, nil
}

// parseAnswers converts "index=answer" flag pairs into answers by index.
func parseAnswers(raw map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(raw))
	for k, v := range raw {
		i, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("invalid answer index %q", k)
		}
		out[i] = v
	}
	return out, nil
}
