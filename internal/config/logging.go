package config

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// SetupLogging configures log for the current mode. When LOG_FILE is set,
// entries are also written to a rotated JSON log file.
func SetupLogging(log *logrus.Logger) error {
	if Development() {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if s, ok := lookupEnv("LOG_LEVEL"); ok {
		level, err := logrus.ParseLevel(s)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		log.SetLevel(level)
	}

	filename, ok := lookupEnv("LOG_FILE")
	if !ok || filename == "" {
		return nil
	}

	maxSize := 50
	if s, ok := lookupEnv("LOG_FILE_MAX_SIZE_MB"); ok {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid LOG_FILE_MAX_SIZE_MB: %w", err)
		}
		maxSize = v
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: 5,
		MaxAge:     28,
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to create log file hook: %w", err)
	}
	log.AddHook(hook)

	return nil
}
