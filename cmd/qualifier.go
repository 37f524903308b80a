package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/tournament"
)

var qualifierCmd = &cobra.Command{
	Use:   "qualifier",
	Short: "Weekly qualifiers",
}

var qualifierStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Enter this week's qualifier and get its questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := tournament.StartQualifierRequest{}
		req.UserID, _ = cmd.Flags().GetString("user")
		req.SkillID, _ = cmd.Flags().GetString("skill")
		req.SeasonID, _ = cmd.Flags().GetString("season")
		req.Region, _ = cmd.Flags().GetString("region")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if cmd.Flags().Changed("rating") {
			req.Rating, _ = cmd.Flags().GetInt("rating")
		} else {
			p, err := rt.profiles.Get(cmd.Context(), req.UserID)
			if err != nil {
				return err
			}
			req.Rating = p.CR
		}

		resp, err := rt.coord.StartQualifier(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var qualifierSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit qualifier answers (once)",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		id, _ := cmd.Flags().GetString("qualifier")
		answers, err := answersFlag(cmd)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.coord.SubmitQualifier(cmd.Context(), tournament.SubmitRequest{
			UserID: user, QualifierID: id, Answers: answers,
		})
		if err != nil {
			return err
		}
		rt.board.InvalidateQualifier(cmd.Context(), id)
		return printJSON(cmd, res)
	},
}

var qualifierLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock a qualifier and promote its top entries to the season final",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("qualifier")
		top, _ := cmd.Flags().GetInt("top")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := lockQualifier(cmd.Context(), rt, tournament.LockRequest{QualifierID: id, TopN: top})
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var qualifierLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show a qualifier's standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("qualifier")
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		board, err := rt.board.Qualifier(cmd.Context(), id, limit)
		if err != nil {
			return err
		}
		return printJSON(cmd, board)
	},
}

func init() {
	qualifierStartCmd.Flags().String("user", "", "User ID (required)")
	qualifierStartCmd.Flags().String("skill", "", "Skill ID (required)")
	qualifierStartCmd.Flags().String("season", "", "Season ID (default from config)")
	qualifierStartCmd.Flags().String("region", "", "Two-letter region (default from config)")
	qualifierStartCmd.Flags().Int("rating", 0, "CR at entry (default the profile's CR)")
	_ = qualifierStartCmd.MarkFlagRequired("user")
	_ = qualifierStartCmd.MarkFlagRequired("skill")

	qualifierSubmitCmd.Flags().String("user", "", "User ID (required)")
	qualifierSubmitCmd.Flags().String("qualifier", "", "Qualifier ID (required)")
	addAnswerFlags(qualifierSubmitCmd)
	_ = qualifierSubmitCmd.MarkFlagRequired("user")
	_ = qualifierSubmitCmd.MarkFlagRequired("qualifier")

	qualifierLockCmd.Flags().String("qualifier", "", "Qualifier ID (required)")
	qualifierLockCmd.Flags().Int("top", 0, "Entries to promote (default from config)")
	_ = qualifierLockCmd.MarkFlagRequired("qualifier")

	qualifierLeaderboardCmd.Flags().String("qualifier", "", "Qualifier ID (required)")
	qualifierLeaderboardCmd.Flags().Int("limit", 0, "Rows to show (default 50)")
	_ = qualifierLeaderboardCmd.MarkFlagRequired("qualifier")

	qualifierCmd.AddCommand(qualifierStartCmd)
	qualifierCmd.AddCommand(qualifierSubmitCmd)
	qualifierCmd.AddCommand(qualifierLockCmd)
	qualifierCmd.AddCommand(qualifierLeaderboardCmd)
}

// lockQualifier locks a qualifier and drops the cached boards it changes:
// the qualifier's, and the final's when promotion added finalists.
func lockQualifier(ctx context.Context, rt *runtime, req tournament.LockRequest) (tournament.LockResult, error) {
	res, err := rt.coord.LockQualifier(ctx, req)
	if err != nil {
		return tournament.LockResult{}, err
	}
	rt.board.InvalidateQualifier(ctx, res.QualifierID)
	if res.FinalistsAdded > 0 {
		rt.board.InvalidateFinal(ctx, res.FinalID)
	}
	return res, nil
}

func addAnswerFlags(c *cobra.Command) {
	c.Flags().StringToString("answer", nil, "Answers by question id, e.g. 1=7,2=13")
	c.Flags().String("answers-file", "", `JSON file of answers by question id, e.g. {"1":"7"}`)
}

// answersFlag merges --answers-file and --answer; --answer wins on overlap.
func answersFlag(cmd *cobra.Command) (map[int]string, error) {
	out := map[int]string{}
	if path, _ := cmd.Flags().GetString("answers-file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parse answers %s: %w", path, err)
		}
	}
	pairs, _ := cmd.Flags().GetStringToString("answer")
	inline, err := parseAnswers(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range inline {
		out[k] = v
	}
	return out, nil
}
