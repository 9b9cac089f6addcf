package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"houseprice/internal/cfg"
	"houseprice/internal/train"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	defaults := cfg.Defaults()

	var (
		dataPath = flag.String("data", defaults.Train.DataPath, "Directory holding the samples database")
		outPath  = flag.String("out", defaults.Model.Path, "Where to write the model artifact")
		testSize = flag.Float64("test-size", 0.2, "Held-out fraction used for the test score")
		seed     = flag.Int64("seed", 42, "Random seed for the train/test split")
		reseed   = flag.Bool("reseed", false, "Replace stored samples with the bundled dataset")
		logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	artifact, err := train.Run(train.Options{
		DataPath:  *dataPath,
		ModelPath: *outPath,
		TestSize:  *testSize,
		Seed:      *seed,
		Reseed:    *reseed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	fmt.Println("=== Training Results ===")
	fmt.Printf("Model:        %s\n", *outPath)
	fmt.Printf("Intercept:    %.4f\n", artifact.Intercept)
	for i, name := range artifact.Features {
		fmt.Printf("Coef %-8s %.4f\n", name+":", artifact.Coefficients[i])
	}
	fmt.Printf("Train R2:     %.4f (%d rows)\n", artifact.TrainScore, artifact.TrainRows)
	fmt.Printf("Test R2:      %.4f (%d rows)\n", artifact.TestScore, artifact.TestRows)
}
