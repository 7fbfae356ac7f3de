// main.go
//
// ringram puzzle server.
//   1. Load config (.env, optional YAML, environment) and set up logging.
//   2. Load the dictionaries and open/migrate SQLite.
//   3. Seed the puzzle catalogue if it is empty.
//   4. Serve the HTTP API.

package main

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ringram/assets"
	"github.com/robalobadob/ringram/internal/catalog"
	"github.com/robalobadob/ringram/internal/config"
	"github.com/robalobadob/ringram/internal/database"
	"github.com/robalobadob/ringram/internal/httpserver"
	"github.com/robalobadob/ringram/internal/store"
	"github.com/robalobadob/ringram/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := config.SetupLogger(cfg.Log, nil)
	ctx := logger.WithContext(context.Background())

	dict, err := words.Load(cfg.Words.Files())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().Interface("words", dict.Stats()).Msg("dictionary loaded")

	db, err := database.OpenMigrated(ctx, cfg.Database.Path, assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
	}
	defer db.Close()

	var puzzles store.Puzzles
	if cfg.Database.PuzzleStore == "memory" {
		puzzles = store.NewMemoryPuzzles()
	} else {
		puzzles = store.NewSQLitePuzzles(db)
	}

	if cfg.Seed.Count > 0 {
		for _, side := range dict.Sides() {
			n, err := catalog.Fill(ctx, puzzles, dict.Words(side), catalog.Options{
				Side:    side,
				Workers: cfg.Seed.Workers,
				Limit:   cfg.Seed.Count,
			})
			if err != nil {
				log.Fatal().Err(err).Int("side", side).Msg("failed to seed puzzles")
			}
			if n > 0 {
				log.Info().Int("side", side).Int("stored", n).Msg("seeded puzzles")
			}
		}
	}

	srv := httpserver.New(cfg, dict, puzzles, db)
	port := strconv.Itoa(cfg.Server.Port)
	log.Info().Str("port", port).Str("puzzleStore", cfg.Database.PuzzleStore).Msg("starting ringram server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
