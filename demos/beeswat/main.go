// Bee Swat: click the bee before it hops away. Each hit makes it hop
// sooner; the game ends after too many misses or too many hops.
// Press P or click the button in the top-right corner to pause.
//
// Flags:
//
//	-config  YAML settings file (defaults to the embedded assets/config.yaml)
//	-script  JSON test script replayed through the canvas test runner
//	-debug   log per-frame render stats and draw the debug overlay
package main

import (
	"bytes"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/phanxgames/hive"
	"github.com/phanxgames/hive/ecs"
	"github.com/phanxgames/hive/game"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"go.uber.org/zap"
)

const windowTitle = "Bee Swat"

//go:embed assets
var embedded embed.FS

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	scriptPath := flag.String("script", "", "JSON test script to replay")
	debug := flag.Bool("debug", false, "log render stats and draw the debug overlay")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := hive.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	assets, err := fs.Sub(embedded, "assets")
	if err != nil {
		logger.Fatal("assets", zap.Error(err))
	}

	canvas := hive.NewCanvas(nil, hive.CanvasConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Logger:      logger,
		Assets:      assets,
		LoadTimeout: cfg.LoadTimeout.Duration(),
		Debug:       *debug,
	})

	world := donburi.NewWorld()
	canvas.SetEntityStore(ecs.NewDonburiStore(world))
	ecs.TrackScores(world)

	session := game.NewSession(canvas, cfg, game.SessionOptions{
		Logger:  logger.Named("game"),
		Sink:    ecs.NewDonburiSink(world),
		OnReady: func(s *game.Session) {
			ecs.Tag(world, s.Bee())
		},
	})
	ecs.InteractionEventType.Subscribe(world, func(_ donburi.World, e hive.InteractionEvent) {
		logger.Debug("interaction", zap.Stringer("type", e.Type), zap.String("component", e.Name),
			zap.Uint32("entity", e.EntityID), zap.Float64("x", e.X), zap.Float64("y", e.Y))
	})
	session.Start()

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.Fatal("read test script", zap.Error(err))
		}
		runner, err := hive.LoadTestScript(data)
		if err != nil {
			logger.Fatal("load test script", zap.Error(err))
		}
		canvas.SetTestRunner(runner)
	}

	err = hive.Run(canvas, hive.RunConfig{
		Title:      windowTitle,
		ClearColor: hive.Color{R: 0.6, G: 0.83, B: 0.48, A: 1},
		ShowFPS:    cfg.ShowFPS,
		OnUpdate: func() error {
			if err := session.Update(); err != nil {
				return err
			}
			events.ProcessAllEvents(world)
			return nil
		},
	})

	sb := ecs.Scores(world)
	logger.Info("bye",
		zap.Int("games", sb.Games),
		zap.Int("bestHits", sb.BestHits),
		zap.Int("totalHits", sb.TotalHits),
		zap.Int("totalMisses", sb.TotalMisses))
	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}

func loadConfig(path string) (game.Config, error) {
	if path != "" {
		return game.LoadConfigFile(path)
	}
	data, err := embedded.ReadFile("assets/config.yaml")
	if err != nil {
		return game.Config{}, err
	}
	return game.LoadConfig(bytes.NewReader(data))
}
