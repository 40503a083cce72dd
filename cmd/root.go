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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/nyaya/internal/analyzer"
	"github.com/valpere/nyaya/internal/config"
	"github.com/valpere/nyaya/internal/lang"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "Legal document analysis client",
	Long: `A client for the Nyaya-Setu analysis API. It sends a legal document and a
target language to the API and prints the structured analysis it returns.

Use "nyaya analyze" for one-shot analysis, or "nyaya tui" for the interactive page.

Settings are read from a config file, NYAYA_* environment variables and flags.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// exitError ends the process with code without printing anything; the
// user has already been told what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/nyaya/config.yaml)")
	flags.String("endpoint", analyzer.DefaultEndpoint, "Analysis API endpoint")
	flags.Duration("timeout", 0, "HTTP timeout (0 = no timeout)")
	flags.StringP("lang", "l", lang.Default, "Target language for the analysis")
	flags.String("history-db", "", "SQLite database for analysis history (empty disables history)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file instead of stderr")

	v.BindPFlag(config.KeyEndpoint, flags.Lookup("endpoint"))
	v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	v.BindPFlag(config.KeyLang, flags.Lookup("lang"))
	v.BindPFlag(config.KeyHistoryDB, flags.Lookup("history-db"))
	v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
}
