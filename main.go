package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/quasilyte/gdata/v2"

	"frontier/pkg/engine/browser"
	"frontier/pkg/engine/task"
	"frontier/pkg/game/config"
	"frontier/pkg/game/devtools"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/renderer/ebiten"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/saves"
	"frontier/pkg/game/screens"
	"frontier/pkg/game/starter"
)

func openStorage(launch *config.Launch) *gdata.Manager {
	if launch.DisablePersistence {
		log.Printf("[Main] Persistence disabled, settings and saves live in memory")
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: launch.AppName})
	if err != nil {
		log.Printf("[Main] Cannot open storage, continuing in memory: %v", err)
		return nil
	}
	return m
}

func main() {
	configPath := flag.String("config", "frontier.toml", "launch configuration file (TOML)")
	dumpPreview := flag.Bool("dump-preview", false, "print one background preview map to the terminal and exit")
	flag.Parse()

	launch, err := config.LoadLaunch(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	rulesets, err := ruleset.LoadBundled()
	if err != nil {
		log.Fatalf("[Main] Cannot load rulesets: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *dumpPreview {
		if err := devtools.DumpPreview(ctx, os.Stdout, rulesets, mapgen.DefaultGenerator); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		return
	}

	storage := openStorage(launch)
	settings := config.NewSettingsManager(storage)
	lang := settings.Get().Language
	if lang == "" {
		lang = launch.Language
	}
	if err := i18n.SetLanguage(lang); err != nil {
		log.Printf("[Main] %v", err)
	}

	runner := task.NewRunner(ctx)
	env := &screens.Env{
		Runner:     runner,
		Dispatcher: task.NewDispatcher(),
		Rulesets:   rulesets,
		Generator:  mapgen.DefaultGenerator,
		Settings:   settings,
		Saves:      saves.NewManager(storage),
		Browser:    browser.NewOpener(),
		Stack:      screens.NewStack(),
		Toasts:     &screens.Toasts{},
	}
	env.Starter = &starter.Starter{
		Rulesets:  rulesets,
		Generator: mapgen.DefaultGenerator,
		Settings:  settings,
		Memory:    starter.SystemMemory,
	}

	app, err := ebiten.New(env, launch.WindowWidth, launch.WindowHeight)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	env.Viewport = app.Viewport
	env.Stack.Push(screens.NewMainMenu(env))

	err = ebiten.Run(app, "Frontier")
	cancel()
	runner.Wait()
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Cannot save settings: %v", err)
	}
}
