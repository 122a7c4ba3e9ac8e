package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Iso-Frontier/internal/game"
	"github.com/Garsondee/Iso-Frontier/internal/logger"
	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

func main() {
	// .env may set LOG_LEVEL, so it loads before the logger.
	envErr := loadDotEnv(".env")
	logger.Init()
	if envErr != nil {
		logger.Log.WithError(envErr).Warn("ignoring unreadable .env")
	}

	var tuningPath string
	var seed int64
	flag.StringVar(&tuningPath, "tuning", os.Getenv("ISO_TUNING"), "path to a YAML tuning file")
	flag.Int64Var(&seed, "seed", envSeed(), "world seed (0 = tuning seed, then wall clock)")
	flag.Parse()

	t, err := tuning.Load(tuningPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load tuning")
	}
	if seed == 0 {
		seed = t.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gs, err := game.NewGameState(t, seed)
	if err != nil {
		logger.Log.WithError(err).Fatal("create game")
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":   seed,
		"tuning": tuningPath,
	}).Info("starting")

	ebiten.SetWindowTitle("Iso Frontier")
	ebiten.SetWindowSize(t.Render.ViewWidth, t.Render.ViewHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New(gs)); err != nil {
		logger.Log.WithError(err).Fatal("run game")
	}
}

// envSeed reads ISO_SEED, ignoring anything that is not an integer.
func envSeed() int64 {
	v := os.Getenv("ISO_SEED")
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Log.WithField("ISO_SEED", v).Warn("ignoring non-numeric seed")
		return 0
	}
	return n
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
