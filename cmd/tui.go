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
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/valpere/nyaya/internal/controller"
	"github.com/valpere/nyaya/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive analysis page",
	Long: `Open a full-screen page with a document input, a language selector and
an output pane.

Keys:
  ctrl+s          run the analysis
  tab/shift+tab   change the target language
  esc, ctrl+c     quit

Logs are discarded unless --log-file is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var prog *tea.Program
		pageView := tui.NewProgramView(func(msg tea.Msg) { prog.Send(msg) })
		sub := &inflight{next: controller.New(d.client, pageView, d.controllerOptions()...)}

		prog = tea.NewProgram(tui.New(ctx, sub, cfg.Lang), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = prog.Run()

		// Abort a pending request, then let it record before the store closes.
		cancel()
		sub.Wait()

		if err != nil {
			return fmt.Errorf("terminal UI failed: %w", err)
		}
		return nil
	},
}

var errClosing = errors.New("terminal UI is closing")

// inflight counts running submissions so shutdown can wait for them.
type inflight struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	next   tui.Submitter
}

func (f *inflight) Submit(ctx context.Context, rawText, targetLang string) (controller.Outcome, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return controller.OutcomeRejected, errClosing
	}
	f.wg.Add(1)
	f.mu.Unlock()
	defer f.wg.Done()

	return f.next.Submit(ctx, rawText, targetLang)
}

// Wait refuses new submissions and blocks until running ones return.
func (f *inflight) Wait() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.wg.Wait()
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
