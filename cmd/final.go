package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/tournament"
)

var finalCmd = &cobra.Command{
	Use:   "final",
	Short: "Seasonal finals",
}

var finalOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open an upcoming final (UPCOMING → LIVE)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionFinal(cmd, (*tournament.Coordinator).OpenFinal)
	},
}

var finalEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End a live final (LIVE → ENDED)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionFinal(cmd, (*tournament.Coordinator).EndFinal)
	},
}

var finalStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a live final as a finalist and get its questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		id, _ := cmd.Flags().GetString("final")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		resp, err := rt.coord.StartFinal(cmd.Context(), tournament.FinalRequest{UserID: user, FinalID: id})
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var finalSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit final answers (once)",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		id, _ := cmd.Flags().GetString("final")
		answers, err := answersFlag(cmd)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.coord.SubmitFinal(cmd.Context(), tournament.SubmitFinalRequest{
			UserID: user, FinalID: id, Answers: answers,
		})
		if err != nil {
			return err
		}
		rt.board.InvalidateFinal(cmd.Context(), id)
		return printJSON(cmd, res)
	},
}

var finalLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show a final's standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("final")
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		board, err := rt.board.Final(cmd.Context(), id, limit)
		if err != nil {
			return err
		}
		return printJSON(cmd, board)
	},
}

func init() {
	for _, c := range []*cobra.Command{finalOpenCmd, finalEndCmd, finalStartCmd, finalSubmitCmd, finalLeaderboardCmd} {
		c.Flags().String("final", "", "Final ID (required)")
		_ = c.MarkFlagRequired("final")
	}
	for _, c := range []*cobra.Command{finalStartCmd, finalSubmitCmd} {
		c.Flags().String("user", "", "User ID (required)")
		_ = c.MarkFlagRequired("user")
	}
	addAnswerFlags(finalSubmitCmd)
	finalLeaderboardCmd.Flags().Int("limit", 0, "Rows to show (default 100)")

	finalCmd.AddCommand(finalOpenCmd)
	finalCmd.AddCommand(finalEndCmd)
	finalCmd.AddCommand(finalStartCmd)
	finalCmd.AddCommand(finalSubmitCmd)
	finalCmd.AddCommand(finalLeaderboardCmd)
}

func transitionFinal(cmd *cobra.Command, move func(*tournament.Coordinator, context.Context, string) (tournament.Final, error)) error {
	id, _ := cmd.Flags().GetString("final")

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	f, err := move(rt.coord, cmd.Context(), id)
	if err != nil {
		return err
	}
	rt.board.InvalidateFinal(cmd.Context(), id)
	return printJSON(cmd, f)
}
