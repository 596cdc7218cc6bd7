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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/logging"
	"github.com/ademuri/listening-stats/internal/session"
)

var cfgFile string
var timezone string
var artistQuery string
var fromDate string
var toDate string
var verbose bool
var logFormat string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listening-stats",
	Short: "Computes statistics over an exported streaming history",
	Long: `Reads a streaming-history JSON export and reports how you listen: how
concentrated your taste is, when you listen, how much you discover.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.listening-stats.yaml)")

	rootCmd.PersistentFlags().StringVar(
		&timezone, "timezone", "", "IANA zone used for days and hours (default is the local zone)")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	rootCmd.PersistentFlags().StringVarP(
		&artistQuery, "artist", "a", "", "only include artists whose name contains this text")
	viper.BindPFlag("artist", rootCmd.PersistentFlags().Lookup("artist"))

	rootCmd.PersistentFlags().StringVar(
		&fromDate, "from", "", "first day to include: 'yyyy', 'yyyy-mm' or 'yyyy-mm-dd'")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))

	rootCmd.PersistentFlags().StringVar(
		&toDate, "to", "", "last period to include: 'yyyy', 'yyyy-mm' or 'yyyy-mm-dd'")
	viper.BindPFlag("to", rootCmd.PersistentFlags().Lookup("to"))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().StringVar(&logFormat, "log_format", "text", "log format: text or json")
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log_format"))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Reading .env:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".listening-stats" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".listening-stats")
	}

	viper.SetEnvPrefix("LISTENING_STATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// sessionConfig is everything needed to open a session, resolved from viper.
type sessionConfig struct {
	Location  *time.Location
	Criteria  history.Criteria
	Verbose   bool
	LogFormat string
}

func loadSessionConfig() (sessionConfig, error) {
	loc, err := loadLocation(viper.GetString("timezone"))
	if err != nil {
		return sessionConfig{}, err
	}
	criteria, err := criteriaFromFlags(viper.GetString("artist"), viper.GetString("from"), viper.GetString("to"), loc)
	if err != nil {
		return sessionConfig{}, err
	}
	return sessionConfig{
		Location:  loc,
		Criteria:  criteria,
		Verbose:   viper.GetBool("verbose"),
		LogFormat: viper.GetString("log_format"),
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

func newLogger(cfg sessionConfig) (*slog.Logger, error) {
	level := "info"
	if cfg.Verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, logging.Options{Level: level, Format: cfg.LogFormat})
}

// openSession reads the export at path and applies the configured criteria.
func openSession(path string, cfg sessionConfig, logger *slog.Logger) (*session.Session, error) {
	s, err := session.New(session.WithLocation(cfg.Location), session.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := s.Apply(cfg.Criteria); err != nil {
		s.Close()
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// withSession resolves configuration, opens the export named by the first
// argument and hands the session to fn.
func withSession(path string, fn func(*session.Session) error) error {
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
	return fn(s)
}
