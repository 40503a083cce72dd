package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/valpere/nyaya/internal/controller"
)

type (
	busyMsg   struct{}
	idleMsg   struct{}
	outputMsg struct{ text string }
	noticeMsg struct{ text string }

	settledMsg struct {
		outcome controller.Outcome
		err     error
	}
)

// ProgramView implements controller.View by turning each call into a
// message for the running program, so widget state is only ever touched
// from the update loop.
type ProgramView struct {
	send func(tea.Msg)
}

// NewProgramView returns a view that delivers through send, normally a
// *tea.Program's Send method.
func NewProgramView(send func(tea.Msg)) *ProgramView {
	return &ProgramView{send: send}
}

func (v *ProgramView) SetBusy()               { v.send(busyMsg{}) }
func (v *ProgramView) SetIdle()               { v.send(idleMsg{}) }
func (v *ProgramView) ShowOutput(text string) { v.send(outputMsg{text: text}) }
func (v *ProgramView) ShowNotice(text string) { v.send(noticeMsg{text: text}) }
