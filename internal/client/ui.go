package client

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type terminalUI struct {
	in  *os.File
	out io.Writer
	tty bool
}

// NewTerminalUI runs programs on in and out. When in is not a terminal the
// programs read it as a plain key stream and draw nothing, so scripts can
// pipe answers in.
func NewTerminalUI(in *os.File, out io.Writer) UI {
	return &terminalUI{in: in, out: out, tty: term.IsTerminal(int(in.Fd()))}
}

func (u *terminalUI) Run(ctx context.Context, model tea.Model, fullScreen bool) (tea.Model, error) {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(u.out),
		tea.WithoutSignalHandler(),
	}
	switch {
	case !u.tty:
		opts = append(opts, tea.WithInput(&eotReader{r: u.in}), tea.WithoutRenderer())
	case fullScreen:
		opts = append(opts, tea.WithInput(u.in), tea.WithAltScreen())
	default:
		opts = append(opts, tea.WithInput(u.in))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = ctx.Err()
	}
	return final, err
}

// eotReader turns the end of a non-terminal input into one Ctrl+D byte, which
// is what a terminal sends, and reports io.EOF after that.
type eotReader struct {
	r       io.Reader
	pending bool
	done    bool
}

func (e *eotReader) Read(p []byte) (int, error) {
	if e.done {
		return 0, io.EOF
	}
	if e.pending {
		if len(p) == 0 {
			return 0, nil
		}
		p[0] = 0x04
		e.pending, e.done = false, true
		return 1, nil
	}

	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		e.pending = true
		if n == 0 {
			return e.Read(p)
		}
		return n, nil
	}
	return n, err
}

type systemClipboard struct{}

// NewSystemClipboard returns the OS clipboard.
func NewSystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
