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
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/nyaya/internal/controller"
	"github.com/valpere/nyaya/internal/view"
)

var analyzeInput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze a legal document",
	Long: `Send a legal document to the analysis API and print the result.

The document is taken from --input (use "-" for stdin), from the arguments,
or from stdin when neither is given. The input must contain at least 15
characters once surrounding whitespace is removed.

The pretty-printed analysis is written to stdout; progress and notices go to
stderr. The exit status is 1 when the input is rejected or the request fails.

Example:
  nyaya analyze -i lease.txt -l hi
  cat notice.txt | nyaya analyze --lang ta`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readDocument(cmd, args)
		if err != nil {
			return err
		}

		d, err := buildDeps(true)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		console := view.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctrl := controller.New(d.client, console, d.controllerOptions()...)

		outcome, _ := ctrl.Submit(ctx, text, cfg.Lang)
		switch outcome {
		case controller.OutcomeRejected, controller.OutcomeFailed:
			return &exitError{code: 1}
		}
		return nil
	},
}

func readDocument(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case analyzeInput == "-":
		return readAll(cmd.InOrStdin())
	case analyzeInput != "":
		data, err := os.ReadFile(analyzeInput)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return readAll(cmd.InOrStdin())
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "File containing the document (\"-\" for stdin)")
}

