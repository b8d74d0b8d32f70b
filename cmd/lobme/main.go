package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	match "github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine"
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/console"
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
)

func main() {
	jsonOutput := flag.Bool("json", false, "print results as JSON lines")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	quiet := flag.Bool("quiet", false, "do not print the prompt")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	match.SetLogger(logger)

	engine := match.NewMatchingEngine(match.NewDiscardPublishLog())
	logger.Info("matching engine started",
		slog.String("engine_id", engine.ID()),
		slog.String("version", match.EngineVersion),
	)

	var renderer console.Renderer
	if *jsonOutput {
		renderer = console.NewJSONRenderer(os.Stdout, &protocol.DefaultJSONSerializer{})
	} else {
		renderer = console.NewTextRenderer(os.Stdout, os.Stderr, !*quiet)
	}

	if err := console.New(engine, renderer, logger).Run(context.Background(), os.Stdin); err != nil {
		logger.Error("console stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
