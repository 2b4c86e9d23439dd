/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logging holds the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Formatter names accepted by Initialize.
const (
	FormatterText = "text"
	FormatterJSON = "json"
)

var log = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		TimestampFormat: TimestampFormat,
		DisableColors:   true,
		FullTimestamp:   true,
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.InfoLevel,
}

// Initialize sets level and formatter of the shared logger.
func Initialize(level, formatter string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(parsed)

	switch formatter {
	case "", FormatterText:
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: TimestampFormat,
			DisableColors:   true,
			FullTimestamp:   true,
		})
	case FormatterJSON:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: TimestampFormat,
		})
	default:
		return fmt.Errorf("unknown log formatter %q", formatter)
	}
	return nil
}

// SetOutput redirects the shared logger, e.g. to io.Discard in tests.
func SetOutput(out io.Writer) {
	log.SetOutput(out)
}

// GetLogger returns an entry tagged with the calling package.
func GetLogger(pkg string) *logrus.Entry {
	return log.WithField("package", pkg)
}
