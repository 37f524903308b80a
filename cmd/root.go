package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Adaptive math practice and competitive ranking",
	Long: `mathquest generates seeded math questions, tracks per-skill mastery,
rates arena matches and runs weekly qualifiers feeding seasonal finals.

Every command prints JSON.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHQUEST_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(qualifierCmd)
	rootCmd.AddCommand(finalCmd)
	rootCmd.AddCommand(safetyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config, then the environment, then --db.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if cfg.DBPath == "" {
		p, err := config.DefaultDBPath()
		if err != nil {
			return config.Config{}, err
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
