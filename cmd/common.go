/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/valpere/nyaya/internal/analyzer"
	"github.com/valpere/nyaya/internal/controller"
	"github.com/valpere/nyaya/internal/logging"
	"github.com/valpere/nyaya/internal/store"
)

// deps holds what every analysis command needs, built from the loaded config.
type deps struct {
	logger *zap.Logger
	client *analyzer.Client
	db     *store.Store
}

// buildDeps constructs the logger, HTTP client and optional history store.
// toStderr selects stderr logging when no log file is configured.
func buildDeps(toStderr bool) (*deps, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File, toStderr)
	if err != nil {
		return nil, err
	}

	d := &deps{
		logger: logger,
		client: analyzer.NewClient(cfg.Endpoint, cfg.Timeout),
	}

	if cfg.History.DB != "" {
		d.db, err = openStore(cfg.History.DB)
		if err != nil {
			logger.Sync()
			return nil, err
		}
	}

	logger.Debug("Configuration loaded",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("timeout", cfg.Timeout),
		zap.String("lang", cfg.Lang),
		zap.Bool("history", d.db != nil))

	return d, nil
}

func (d *deps) controllerOptions() []controller.Option {
	opts := []controller.Option{controller.WithLogger(d.logger)}
	if d.db != nil {
		opts = append(opts, controller.WithRecorder(d.db))
	}
	return opts
}

func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
	_ = d.logger.Sync()
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
