package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions for a skill (no database)",
	Long: `Generate seeded questions for a skill and print them with their
validation reports.

The same skill, difficulty and seed always produce the same question. With
--count > 1 the seed is suffixed with the question number. Without --seed the
output is not reproducible.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("skill", "", "Skill ID, e.g. math-add (required)")
	generateCmd.Flags().Float64("difficulty", 1, "Difficulty (1 and up)")
	generateCmd.Flags().String("seed", "", "Seed for reproducible output")
	generateCmd.Flags().Int("count", 1, "Number of questions to generate")
	_ = generateCmd.MarkFlagRequired("skill")
}

type generatedItem struct {
	SkillID    string  `json:"skillId"`
	Difficulty float64 `json:"difficulty"`
	Seed       string  `json:"seed,omitempty"`
	problemgen.Result
}

func runGenerate(cmd *cobra.Command, args []string) error {
	skill, _ := cmd.Flags().GetString("skill")
	difficulty, _ := cmd.Flags().GetFloat64("difficulty")
	seed, _ := cmd.Flags().GetString("seed")
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	gen := newGenerator(stderrLogger(cmd))
	items := make([]generatedItem, 0, count)
	for i := 1; i <= count; i++ {
		p := problemgen.Params{SkillID: skill, Difficulty: difficulty, Seed: seed}
		if seed != "" && count > 1 {
			p.Seed = fmt.Sprintf("%s_q%d", seed, i)
		}
		items = append(items, generatedItem{
			SkillID:    p.SkillID,
			Difficulty: p.Difficulty,
			Seed:       p.Seed,
			Result:     gen.Generate(p),
		})
	}

	if count == 1 {
		return printJSON(cmd, items[0])
	}
	return printJSON(cmd, items)
}
