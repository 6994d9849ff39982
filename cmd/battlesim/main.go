// Package main provides the battle simulator binary: it loads the catalog,
// builds two teams, and resolves a full battle with CPU planners on both
// sides, printing the battle log to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/ability"
	"github.com/cory-johannsen/arena/internal/game/ai"
	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/scripting"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// strategyPack is the script pack consulted for move choices when scripting
// is enabled. Hooks missing from it fall through to the global pack.
const strategyPack = "cpu"

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	teamAPath := flag.String("team-a", "content/teams/team-a.yaml", "path to side A team YAML")
	teamBPath := flag.String("team-b", "content/teams/team-b.yaml", "path to side B team YAML")
	seed := flag.Int64("seed", 0, "override battle seed (0 = use config)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog ready",
		zap.String("source", cfg.Content.Source),
		zap.Int("moves", len(reg.Moves())),
		zap.Int("species", len(reg.AllSpecies())),
	)

	battleSeed := cfg.Battle.Seed
	if *seed != 0 {
		battleSeed = *seed
	}
	var src rng.Source
	if battleSeed == 0 {
		src = rng.NewCryptoSource()
		logger.Info("using crypto randomness")
	} else {
		src = rng.NewSeededSource(battleSeed)
		logger.Info("using seeded randomness", zap.Int64("seed", battleSeed))
	}
	roller := rng.NewRoller(src, logger)

	rosterA, err := loadTeam(reg, *teamAPath)
	if err != nil {
		logger.Fatal("loading team A", zap.Error(err))
	}
	rosterB, err := loadTeam(reg, *teamBPath)
	if err != nil {
		logger.Fatal("loading team B", zap.Error(err))
	}

	st, err := battle.New(battle.Config{
		RosterA: rosterA,
		RosterB: rosterB,
		Roller:  roller,
		Logger:  logger,
		Hooks:   ability.NewSet(logger),
	})
	if err != nil {
		logger.Fatal("creating battle", zap.Error(err))
	}

	profile, err := selectProfile(cfg.AI)
	if err != nil {
		logger.Fatal("selecting planner profile", zap.Error(err))
	}
	planner := ai.NewPlanner(profile, roller, logger)

	if cfg.Scripting.Enabled {
		mgr := scripting.NewManager(roller, logger)
		defer mgr.Close()
		mgr.TypeEffectiveness = catalogEffectiveness
		if err := mgr.LoadGlobal(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading strategy scripts", zap.Error(err))
		}
		planner = planner.WithScripts(mgr, strategyPack)
		logger.Info("strategy scripts loaded", zap.String("dir", cfg.Scripting.Dir))
	}

	runBattle(st, planner, cfg.Battle.MaxTurns, logger)
	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*content.Registry, error) {
	switch cfg.Content.Source {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		logger.Info("database connected", zap.String("host", cfg.Database.Host))
		return postgres.NewCatalogRepository(pool.DB()).LoadRegistry(ctx)
	default:
		return content.LoadDirectory(cfg.Content.Dir)
	}
}

func loadTeam(reg *content.Registry, path string) ([]*monster.Combatant, error) {
	specs, err := monster.LoadTeam(path)
	if err != nil {
		return nil, err
	}
	return monster.BuildTeam(reg, specs)
}

func selectProfile(cfg config.AIConfig) (*ai.Profile, error) {
	if cfg.ProfileDir == "" {
		return ai.DefaultProfile(), nil
	}
	profiles, err := ai.LoadProfiles(cfg.ProfileDir)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.ID == cfg.Profile {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %q not found in %q", cfg.Profile, cfg.ProfileDir)
}

// catalogEffectiveness adapts the type chart to the string-keyed signature
// the scripting module expects. Unknown type names score neutral.
func catalogEffectiveness(moveType, primary, secondary string) float64 {
	atk, err := content.ParseType(moveType)
	if err != nil {
		return 1.0
	}
	def1, err := content.ParseType(primary)
	if err != nil {
		return 1.0
	}
	def2 := content.TypeNone
	if secondary != "" {
		if t, err := content.ParseType(secondary); err == nil {
			def2 = t
		}
	}
	return content.Effectiveness(atk, def1, def2)
}

func runBattle(st *battle.State, planner *ai.Planner, maxTurns int, logger *zap.Logger) {
	for !st.Finished() && st.Turn < maxTurns {
		if replaced := submitReplacements(st, planner, logger); replaced {
			continue
		}

		actions := []battle.Action{
			planner.Decide(st, battle.SideA),
			planner.Decide(st, battle.SideB),
		}
		result, err := st.ExecuteTurn(actions)
		if err != nil {
			logger.Fatal("executing turn", zap.Error(err))
		}
		for _, e := range result.Events {
			fmt.Fprintln(os.Stdout, e.Narrative)
		}
	}

	if st.Finished() {
		if st.Drawn() {
			logger.Info("battle ended in a draw", zap.Int("turns", st.Turn))
			return
		}
		logger.Info("battle decided",
			zap.Int("turns", st.Turn),
			zap.String("winner", st.Winner().String()),
		)
		return
	}
	logger.Warn("turn limit reached without a decision", zap.Int("turns", st.Turn))
}

// submitReplacements fills any pending faint replacements. It reports whether
// a replacement was submitted, in which case the caller re-checks state
// before running the next turn.
func submitReplacements(st *battle.State, planner *ai.Planner, logger *zap.Logger) bool {
	submitted := false
	for _, side := range [2]battle.SideID{battle.SideA, battle.SideB} {
		if !st.AwaitingReplacement(side) {
			continue
		}
		idx, ok := planner.ChooseReplacement(st, side)
		if !ok {
			logger.Fatal("no replacement available for side awaiting one",
				zap.String("side", side.String()))
		}
		events, err := st.SubmitReplacement(side, idx)
		if err != nil {
			logger.Fatal("submitting replacement", zap.Error(err))
		}
		for _, e := range events {
			fmt.Fprintln(os.Stdout, e.Narrative)
		}
		submitted = true
	}
	return submitted
}
