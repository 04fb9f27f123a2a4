package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/will1001/flashcard-japan/internal/cli"
	"github.com/will1001/flashcard-japan/internal/domain/card"
	"github.com/will1001/flashcard-japan/internal/domain/quiz"
	"github.com/will1001/flashcard-japan/internal/store"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.json", "path to the JSON card catalog")
	tierFlag := flag.String("tier", "all", "tier to draw from: N5..N1 or all")
	count := flag.Int("count", 10, "number of questions, 0 for every card")
	modeFlag := flag.String("mode", "translation", "quiz mode: translation or reading")
	flag.Parse()

	if err := run(*catalogPath, *tierFlag, *count, *modeFlag); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(catalogPath, tierFlag string, count int, modeFlag string) error {
	tier, err := card.ParseTier(tierFlag)
	if err != nil {
		return err
	}
	mode, err := quiz.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	cards, err := store.LoadCatalogFile(catalogPath)
	if err != nil {
		return err
	}
	if err := card.ValidateCatalog(cards); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := quiz.NewEngine(cards)
	cfg := quiz.Config{Tier: tier, Count: count, Mode: mode}
	return cli.Run(ctx, os.Stdin, os.Stdout, engine, cfg)
}
