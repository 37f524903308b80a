package cmd

import (
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/rating"
	"github.com/abhisek/mathquest/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Player profiles",
}

type profileView struct {
	progression.Profile
	Division     rating.Division        `json:"division"`
	Level        int                    `json:"level"`
	Progress     progression.Progress   `json:"levelProgress"`
	BadgeDetails []progression.Badge    `json:"badgeDetails"`
	Today        []store.DailyAggregate `json:"today"`
	History      []store.LadderEntry    `json:"history,omitempty"`
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a player's profile, today's practice and recent matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		history, _ := cmd.Flags().GetInt("history")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		p, err := rt.profiles.Get(ctx, user)
		if err != nil {
			return err
		}
		today, err := rt.profiles.Daily(ctx, user, time.Now())
		if err != nil {
			return err
		}

		view := profileView{
			Profile:      p,
			Division:     p.Division(),
			Level:        p.Level(),
			Progress:     progression.LevelProgress(p.XP),
			BadgeDetails: []progression.Badge{},
			Today:        today,
		}
		for _, id := range p.Badges {
			if b, ok := rt.catalog.Lookup(id); ok {
				view.BadgeDetails = append(view.BadgeDetails, b)
			}
		}
		if history > 0 {
			if view.History, err = rt.profiles.History(ctx, user, history); err != nil {
				return err
			}
		}
		return printJSON(cmd, view)
	},
}

// badgeStatus is a catalog badge and whether the player holds it.
type badgeStatus struct {
	progression.Badge
	Earned bool `json:"earned"`
}

var profileBadgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List every badge and whether the player has earned it",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.profiles.Get(cmd.Context(), user)
		if err != nil {
			return err
		}
		return printJSON(cmd, badgeBoard(rt.catalog, p.Badges))
	},
}

func badgeBoard(catalog *progression.Catalog, owned []string) []badgeStatus {
	out := []badgeStatus{}
	for _, b := range catalog.All() {
		out = append(out, badgeStatus{Badge: b, Earned: slices.Contains(owned, b.ID)})
	}
	return out
}

func init() {
	profileShowCmd.Flags().String("user", "", "User ID (required)")
	profileShowCmd.Flags().Int("history", 10, "Number of recent matches to include (0 for none)")
	_ = profileShowCmd.MarkFlagRequired("user")

	profileBadgesCmd.Flags().String("user", "", "User ID (required)")
	_ = profileBadgesCmd.MarkFlagRequired("user")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileBadgesCmd)
}
