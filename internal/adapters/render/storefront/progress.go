package storefront

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type taskDoneMsg struct {
	err error
}

// progressModel animates a spinner next to a label until the task reports
// back, then clears the line and quits.
type progressModel struct {
	spin   spinner.Model
	styles styles
	label  string
	start  tea.Cmd
	result error
	done   bool
}

func newProgressModel(label string, start tea.Cmd) progressModel {
	s := newStyles()
	return progressModel{
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.link)),
		styles: s,
		label:  label,
		start:  start,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.start)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.result = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spin.View(), m.styles.meta.Render(m.label))
}

// Spin runs task while showing a labelled spinner on output, returning the
// task's error once the animation stops. Cancelling ctx tears both down.
func Spin(ctx context.Context, output io.Writer, label string, task func(context.Context) error) error {
	p := tea.NewProgram(
		newProgressModel(label, func() tea.Msg {
			return taskDoneMsg{err: task(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return ErrUnexpectedRenderModel
	}
	return result.result
}
