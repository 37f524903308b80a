package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill generators",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills with a dedicated generator and a sample question",
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetFloat64("difficulty")
		asJSON, _ := cmd.Flags().GetBool("json")

		gen := problemgen.New(problemgen.DefaultConfig())
		ids := gen.Registry().SkillIDs()

		type row struct {
			ID     string `json:"id"`
			Sample string `json:"sample"`
		}
		rows := make([]row, 0, len(ids))
		for _, id := range ids {
			c := gen.Content(problemgen.Params{SkillID: id, Difficulty: difficulty, Seed: "sample"})
			rows = append(rows, row{ID: id, Sample: c.Question})
		}
		if asJSON {
			return printJSON(cmd, rows)
		}

		out := cmd.OutOrStdout()
		// Header.
		fmt.Fprintf(out, "%-28s  %s\n", "ID", "Sample")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, r := range rows {
			fmt.Fprintf(out, "%-28s  %s\n", r.ID, r.Sample)
		}
		fmt.Fprintf(out, "\n%d skills\n", len(rows))
		return nil
	},
}

func init() {
	skillListCmd.Flags().Float64("difficulty", 1, "Difficulty of the sample questions")
	skillListCmd.Flags().Bool("json", false, "Print JSON instead of a table")

	skillCmd.AddCommand(skillListCmd)
}
