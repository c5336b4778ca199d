// Command bhptctl is a demo/load-test wrapper around a bhpt.Table. It is an
// external collaborator of the BHPT core, not part of it (spec.md §1 scopes
// command-line wrappers out of core scope).
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Shapedsundew9/egp-physics/bhpt"
)

type runConfig struct {
	Capacity           int
	HistoryLength      int
	ConsiderationDepth int
	MWSP               int
	Defer              bool
	AutoRemove         bool
	Seed               int64
	Pushes             int
	Selections         int
}

func loadConfig() runConfig {
	viper.SetDefault("capacity", 16)
	viper.SetDefault("history_length", 64)
	viper.SetDefault("consideration_depth", 64)
	viper.SetDefault("mwsp", -1)
	viper.SetDefault("defer", false)
	viper.SetDefault("auto_remove", true)
	viper.SetDefault("seed", 42)
	viper.SetDefault("pushes", 10000)
	viper.SetDefault("selections", 1000)

	viper.SetConfigName("bhptctl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("BHPTCTL")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Warn().Err(err).Msg("bhptctl: failed to read config file, using defaults/env")
		}
	}

	return runConfig{
		Capacity:           viper.GetInt("capacity"),
		HistoryLength:      viper.GetInt("history_length"),
		ConsiderationDepth: viper.GetInt("consideration_depth"),
		MWSP:               viper.GetInt("mwsp"),
		Defer:              viper.GetBool("defer"),
		AutoRemove:         viper.GetBool("auto_remove"),
		Seed:               viper.GetInt64("seed"),
		Pushes:             viper.GetInt("pushes"),
		Selections:         viper.GetInt("selections"),
	}
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	rc := loadConfig()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	table, err := bhpt.New(bhpt.Config{
		Capacity:           rc.Capacity,
		HistoryLength:      rc.HistoryLength,
		ConsiderationDepth: rc.ConsiderationDepth,
		MWSP:               rc.MWSP,
		MWSPSet:            true,
		Defer:              rc.Defer,
		AutoRemove:         rc.AutoRemove,
		Seed:               rc.Seed,
		SeedSet:            true,
		Logger:             &logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("bhptctl: failed to construct table")
	}
	logger.Info().Str("table", table.String()).Int64("seed", table.Seed()).Msg("constructed table")

	driver := rand.New(rand.NewPCG(uint64(rc.Seed), uint64(rc.Seed)^1))
	for i := 0; i < rc.Capacity; i++ {
		if _, err := table.Insert(); err != nil {
			logger.Fatal().Err(err).Msg("bhptctl: initial insert failed")
		}
	}

	for i := 0; i < rc.Pushes; i++ {
		idx := driver.IntN(rc.Capacity)
		bit := uint8(driver.IntN(2))
		if err := table.Push(idx, bit); err != nil {
			logger.Fatal().Err(err).Msg("bhptctl: push failed")
		}
	}

	counts := make([]int, rc.Capacity)
	for i := 0; i < rc.Selections; i++ {
		idx, err := table.Select()
		if err != nil {
			logger.Fatal().Err(err).Msg("bhptctl: select failed")
		}
		counts[idx]++
	}

	for idx, c := range counts {
		if c == 0 {
			continue
		}
		fmt.Printf("index %d: selected %d/%d (%.2f%%)\n", idx, c, rc.Selections, 100*float64(c)/float64(rc.Selections))
	}
}
