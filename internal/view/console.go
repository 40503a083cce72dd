// Package view renders controller state on plain output streams.
package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/valpere/nyaya/internal/controller"
)

// Console writes results to out and transient status (label, notices) to
// status, so out stays clean for piping.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	status io.Writer
	label  string
	busy   bool
}

func NewConsole(out, status io.Writer) *Console {
	return &Console{out: out, status: status, label: controller.IdleLabel}
}

func (c *Console) SetBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = true
	c.label = controller.BusyLabel
	fmt.Fprintln(c.status, controller.BusyLabel)
}

func (c *Console) SetIdle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.label = controller.IdleLabel
}

func (c *Console) ShowOutput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, text)
}

func (c *Console) ShowNotice(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.status, text)
}

// Label returns the trigger label the page would currently show.
func (c *Console) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *Console) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}
