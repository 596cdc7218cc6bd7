/*
Copyright 2020 Google LLC

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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ademuri/listening-stats/internal/logging"
)

// reloadDelay collapses the burst of events an editor or exporter produces
// for a single save.
const reloadDelay = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reprints stats whenever the export changes",
	Long: `Prints stats, then watches the export and prints them again each time the
file is rewritten. A rewrite that fails to parse is logged and the previous
data is kept.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWatch(ctx, args[0]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, path string) error {
	cfg, err := loadSessionConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	s, err := openSession(path, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := printStats(os.Stdout, s.Snapshot()); err != nil {
		return err
	}

	return watchExport(ctx, path, logging.NewComponentLogger(logger, "watch"), func() error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening export: %w", err)
		}
		defer f.Close()

		if err := s.Load(f); err != nil {
			return err
		}
		fmt.Println()
		return printStats(os.Stdout, s.Snapshot())
	})
}

// watchExport calls reload after each change to path until ctx is done.
// Reloads run on the calling goroutine, one at a time. A failed reload is
// logged and watching continues.
func watchExport(ctx context.Context, path string, logger *slog.Logger, reload func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: many writers replace the file rather than
	// rewriting it in place.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching export", logging.String("path", target))

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("export changed", logging.String("op", ev.Op.String()))
			timer.Reset(reloadDelay)

		case <-timer.C:
			if err := reload(); err != nil {
				logger.Warn("reload failed, keeping previous data", logging.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.Error(err))
		}
	}
}
