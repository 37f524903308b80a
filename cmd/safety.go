package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/store"
)

var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "Anti-cheat event log",
}

var safetyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded safety events in sequence order",
	Long: `List speed and time-limit violations recorded by qualifiers and finals.

Pass the last sequence seen as --after to page through the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := safetyQuery(cmd)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := rt.store.Safety().Query(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if recs == nil {
			recs = []store.SafetyRecord{}
		}
		return printJSON(cmd, recs)
	},
}

func init() {
	addSafetyFlags(safetyListCmd)

	safetyCmd.AddCommand(safetyListCmd)
}

func addSafetyFlags(c *cobra.Command) {
	c.Flags().String("user", "", "Only events for this user")
	c.Flags().Int64("after", 0, "Only events with a sequence above this")
	c.Flags().String("from", "", "Only events at or after this RFC 3339 time")
	c.Flags().String("to", "", "Only events at or before this RFC 3339 time")
	c.Flags().Int("limit", 100, "Maximum events to return (0 for all)")
}

func safetyQuery(cmd *cobra.Command) (store.QueryOpts, error) {
	var opts store.QueryOpts
	opts.UserID, _ = cmd.Flags().GetString("user")
	opts.After, _ = cmd.Flags().GetInt64("after")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	if opts.Limit < 0 {
		return store.QueryOpts{}, fmt.Errorf("--limit must not be negative")
	}
	for name, dst := range map[string]*time.Time{"from": &opts.From, "to": &opts.To} {
		v, _ := cmd.Flags().GetString(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return store.QueryOpts{}, fmt.Errorf("invalid --%s %q: %w", name, v, err)
		}
		*dst = t
	}
	return opts, nil
}
