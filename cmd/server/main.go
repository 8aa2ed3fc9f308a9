package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/app"
	"github.com/iandyone/minesweeper-rss/internal/config"
	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/session"
	"github.com/iandyone/minesweeper-rss/migrations"
)

var log = logrus.New()

func main() {
	if err := config.SetupLogging(log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}
	mines.Log = log
	session.Log = log

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	storage, err := config.NewStorage()
	if err != nil {
		log.Fatal("unable to read storage config: ", err)
	}
	store, closeStore, err := app.OpenStore(ctx, log, storage, migrations.FS)
	if err != nil {
		log.Fatal("unable to open score store: ", err)
	}
	defer closeStore()

	a, err := app.New(log, store)
	if err != nil {
		log.Fatal("unable to configure server: ", err)
	}

	log.WithField("storage", storage.Driver).Info("starting up")
	if err := a.Start(ctx); err != nil {
		log.Error("exit reason: ", err)
	}
}
