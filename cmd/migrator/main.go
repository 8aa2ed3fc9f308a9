package main

import (
	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/config"
	"github.com/iandyone/minesweeper-rss/internal/database"
	"github.com/iandyone/minesweeper-rss/migrations"
)

func main() {
	log := logrus.New()
	if err := config.SetupLogging(log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	db, err := config.NewDatabase()
	if err != nil {
		log.Fatal("unable to read database config: ", err)
	}

	migrator, err := database.Migrate(db.URL(), migrations.FS)
	if err != nil {
		log.Fatal("failed to migrate: ", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
