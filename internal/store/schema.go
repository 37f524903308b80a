package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableQualifiers = "qualifiers"
	tableEntries    = "qualifier_entries"
	tableFinals     = "global_finals"
	tableFinalists  = "global_finalists"
	tableSafety     = "safety_events"
	tableMastery    = "mastery_states"
	tableProfiles   = "profiles"
	tableBadges     = "user_badges"
	tableLadder     = "ladder_entries"
	tableDaily      = "daily_skill_aggregates"
	tableSequence   = "global_sequence"
	tableChallenges = "daily_challenge_log"
)

var (
	qualifiersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "season_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "region", Type: field.TypeString},
		{Name: "week_start", Type: field.TypeTime},
		{Name: "week_end", Type: field.TypeTime},
		{Name: "status", Type: field.TypeString},
	}
	qualifiersTable = &schema.Table{
		Name:       tableQualifiers,
		Columns:    qualifiersColumns,
		PrimaryKey: []*schema.Column{qualifiersColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "qualifier_season_skill_region_week",
				Unique:  true,
				Columns: []*schema.Column{qualifiersColumns[1], qualifiersColumns[2], qualifiersColumns[3], qualifiersColumns[4]},
			},
		},
	}

	entriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "qualifier_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "region", Type: field.TypeString},
		{Name: "rating_at_entry", Type: field.TypeInt},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "flagged", Type: field.TypeBool, Default: false},
	}
	entriesTable = &schema.Table{
		Name:       tableEntries,
		Columns:    entriesColumns,
		PrimaryKey: []*schema.Column{entriesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "entry_qualifier_user",
				Unique:  true,
				Columns: []*schema.Column{entriesColumns[1], entriesColumns[2]},
			},
			{
				Name:    "entry_qualifier_score",
				Columns: []*schema.Column{entriesColumns[1], entriesColumns[7]},
			},
		},
	}

	finalsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "season_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "start_at", Type: field.TypeTime},
		{Name: "end_at", Type: field.TypeTime},
	}
	finalsTable = &schema.Table{
		Name:       tableFinals,
		Columns:    finalsColumns,
		PrimaryKey: []*schema.Column{finalsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "final_season_skill",
				Unique:  true,
				Columns: []*schema.Column{finalsColumns[1], finalsColumns[2]},
			},
		},
	}

	finalistsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "final_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "qualifier_id", Type: field.TypeString},
		{Name: "region", Type: field.TypeString},
		{Name: "qualifier_rank", Type: field.TypeInt},
		{Name: "started_at", Type: field.TypeTime, Nullable: true},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "final_score", Type: field.TypeInt, Nullable: true},
		{Name: "flagged", Type: field.TypeBool, Default: false},
	}
	finalistsTable = &schema.Table{
		Name:       tableFinalists,
		Columns:    finalistsColumns,
		PrimaryKey: []*schema.Column{finalistsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "finalist_final_user",
				Unique:  true,
				Columns: []*schema.Column{finalistsColumns[1], finalistsColumns[2]},
			},
		},
	}

	safetyColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "event_type", Type: field.TypeString},
		{Name: "details", Type: field.TypeJSON},
		{Name: "timestamp", Type: field.TypeTime},
	}
	safetyTable = &schema.Table{
		Name:       tableSafety,
		Columns:    safetyColumns,
		PrimaryKey: []*schema.Column{safetyColumns[0]},
		Indexes: []*schema.Index{
			{Name: "safety_user", Columns: []*schema.Column{safetyColumns[2]}},
			{Name: "safety_timestamp", Columns: []*schema.Column{safetyColumns[5]}},
		},
	}

	masteryColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "stability", Type: field.TypeInt},
		{Name: "frustration", Type: field.TypeFloat64},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "streak", Type: field.TypeInt},
		{Name: "current_difficulty", Type: field.TypeFloat64},
		{Name: "highest_difficulty_solved", Type: field.TypeFloat64},
		{Name: "updated_at", Type: field.TypeTime},
	}
	masteryTable = &schema.Table{
		Name:       tableMastery,
		Columns:    masteryColumns,
		PrimaryKey: []*schema.Column{masteryColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "mastery_user_skill",
				Unique:  true,
				Columns: []*schema.Column{masteryColumns[1], masteryColumns[2]},
			},
		},
	}

	profilesColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "cr", Type: field.TypeInt},
		{Name: "games_played", Type: field.TypeInt, Default: 0},
		{Name: "wins", Type: field.TypeInt, Default: 0},
		{Name: "win_streak", Type: field.TypeInt, Default: 0},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "daily_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_practice_at", Type: field.TypeTime, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	profilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    profilesColumns,
		PrimaryKey: []*schema.Column{profilesColumns[0]},
	}

	badgesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "badge_id", Type: field.TypeString},
		{Name: "earned_at", Type: field.TypeTime},
	}
	badgesTable = &schema.Table{
		Name:       tableBadges,
		Columns:    badgesColumns,
		PrimaryKey: []*schema.Column{badgesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "badge_user_badge",
				Unique:  true,
				Columns: []*schema.Column{badgesColumns[1], badgesColumns[2]},
			},
		},
	}

	ladderColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "ranked", Type: field.TypeBool},
		{Name: "outcome", Type: field.TypeString},
		{Name: "opponent_cr", Type: field.TypeInt},
		{Name: "rating_before", Type: field.TypeInt},
		{Name: "rating_after", Type: field.TypeInt},
		{Name: "xp_gained", Type: field.TypeInt},
		{Name: "played_at", Type: field.TypeTime},
	}
	ladderTable = &schema.Table{
		Name:       tableLadder,
		Columns:    ladderColumns,
		PrimaryKey: []*schema.Column{ladderColumns[0]},
		Indexes: []*schema.Index{
			{Name: "ladder_user_played", Columns: []*schema.Column{ladderColumns[1], ladderColumns[9]}},
		},
	}

	dailyColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "day", Type: field.TypeString},
		{Name: "attempts", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeInt, Default: 0},
	}
	dailyTable = &schema.Table{
		Name:       tableDaily,
		Columns:    dailyColumns,
		PrimaryKey: []*schema.Column{dailyColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "daily_user_skill_day",
				Unique:  true,
				Columns: []*schema.Column{dailyColumns[1], dailyColumns[2], dailyColumns[3]},
			},
		},
	}

	challengesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "day", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "completed_at", Type: field.TypeTime},
	}
	challengesTable = &schema.Table{
		Name:       tableChallenges,
		Columns:    challengesColumns,
		PrimaryKey: []*schema.Column{challengesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "daily_challenge_user_day",
				Unique:  true,
				Columns: []*schema.Column{challengesColumns[1], challengesColumns[2]},
			},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{
		qualifiersTable,
		entriesTable,
		finalsTable,
		finalistsTable,
		safetyTable,
		masteryTable,
		profilesTable,
		badgesTable,
		ladderTable,
		dailyTable,
		challengesTable,
		sequenceTable,
	}
)

// migrate creates missing tables, columns and indexes. It never drops.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
