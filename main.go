package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"halma/config"
	"halma/engine"
	"halma/experiments"
	"halma/server"
)

func main() {
	var (
		configPath  = flag.String("config", "", "bot configuration file (default: XDG config dir)")
		verbose     = flag.Bool("v", false, "debug logging")
		addr        = flag.String("addr", "", "listen address in serve mode (default from config)")
		experiment  = flag.String("experiment", "ablation", "arena experiment: ablation or depth")
		games       = flag.Int("games", experiments.NumGames, "games per matchup in arena mode")
		concurrency = flag.Int("concurrency", 4, "games played at once in arena mode")
		out         = flag.String("out", "", "directory for arena CSV records")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] play|arena|serve|init\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	mode := "play"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch mode {
	case "play":
		err = play(ctx, cfg)
	case "arena":
		opts := experiments.DefaultOptions()
		opts.Games = *games
		opts.Concurrency = *concurrency
		opts.OutDir = *out
		opts.MaxTurns = cfg.MaxTurns
		opts.Layout = cfg.StartingLayout
		err = arena(ctx, *experiment, opts)
	case "serve":
		listen := cfg.Server.Addr
		if *addr != "" {
			listen = *addr
		}
		err = server.New(cfg.SideA.Search()).ListenAndServe(listen)
	case "init":
		var path string
		path, err = cfg.Save()
		if err == nil {
			log.Info().Msgf("wrote %s", path)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		stop()
		log.Fatal().Err(err).Msgf("%s failed", mode)
	}
}

func play(ctx context.Context, cfg *config.Config) error {
	e := engine.NewLocal(
		cfg.SideA.NewPlayer(),
		cfg.SideB.NewPlayer(),
		engine.WithLayout(cfg.StartingLayout),
		engine.WithMaxTurns(cfg.MaxTurns),
	)
	gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Winner: %v (%s) after %d moves in %v\n",
		gameMetric.Winner, gameMetric.Reason, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
	return nil
}

func arena(ctx context.Context, experiment string, opts experiments.Options) error {
	run := experiments.RunAblationExperiment
	switch experiment {
	case "ablation":
	case "depth":
		run = experiments.RunDepthExperiment
	default:
		return fmt.Errorf("unknown experiment %q", experiment)
	}
	summaries, err := run(ctx, opts)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Println(s)
	}
	return nil
}
