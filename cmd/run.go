package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/config"
	"github.com/abhisek/mathquest/internal/leaderboard"
	"github.com/abhisek/mathquest/internal/logger"
	"github.com/abhisek/mathquest/internal/mastery"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/tournament"
)

// runtime holds the dependencies a command needs. Stateless commands use
// newGenerator alone; everything else opens the store through openRuntime.
type runtime struct {
	cfg      config.Config
	log      *logger.Logger
	store    *store.Store
	gen      *problemgen.Generator
	mastery  *mastery.Service
	profiles *store.ProfileRepo
	coord    *tournament.Coordinator
	board    *leaderboard.Board
	catalog  *progression.Catalog

	closers []func() error
}

// openRuntime opens the store, builds dependencies, and connects the
// leaderboard cache when Redis is configured.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		log:      log,
		store:    st,
		gen:      newGenerator(log),
		profiles: st.Profiles(),
		catalog:  progression.DefaultCatalog(),
		closers:  []func() error{st.Close},
	}
	rt.mastery = mastery.NewService(st.Mastery(), rt.gen, log)

	tcfg := tournament.DefaultConfig()
	if cfg.Tournament.DefaultSeason != "" {
		tcfg.DefaultSeason = cfg.Tournament.DefaultSeason
	}
	if cfg.Tournament.DefaultRegion != "" {
		tcfg.DefaultRegion = cfg.Tournament.DefaultRegion
	}
	if n := cfg.Tournament.FinalistsPerQualifier; n > 0 {
		tcfg.Policy.FinalistsPerQualifier = n
	}
	tcfg.Log = log
	rt.coord = tournament.New(st.Tournament(), st.Safety(), rt.gen, tcfg)

	var cache leaderboard.Cache
	if cfg.Redis.Addr != "" {
		rc, err := leaderboard.NewRedisCache(cmd.Context(), cfg.Redis.Addr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Leaderboard cache not available:", err)
		} else {
			cache = rc
			rt.closers = append(rt.closers, rc.Close)
		}
	}
	rt.board = leaderboard.New(rt.coord, cache, leaderboard.Options{
		TTL:    cfg.Redis.TTL,
		Prefix: cfg.Redis.Prefix,
		Log:    log,
	})
	return rt, nil
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i]()
	}
	rt.log.Sync()
}

// newGenerator builds the generator with validation warnings routed to log.
func newGenerator(log *logger.Logger) *problemgen.Generator {
	cfg := problemgen.DefaultConfig()
	cfg.Observer = problemgen.LogObserver{Log: log}
	return problemgen.New(cfg)
}

// stderrLogger is the logger for commands that never open the store.
func stderrLogger(cmd *cobra.Command) *logger.Logger {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return logger.Nop()
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return logger.Nop()
	}
	return log
}
