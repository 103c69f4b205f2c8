package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samdwyer/pymon/internal/game"
)

// Stream is a line-oriented console over a reader and a writer. Colour is
// only emitted when out is a capable terminal.
type Stream struct {
	in     *bufio.Reader
	out    io.Writer
	status game.Status

	titleStyle  lipgloss.Style
	promptStyle lipgloss.Style
}

var _ game.Console = (*Stream)(nil)

// NewStream creates a stream console. accent is a #RRGGBB colour for titles.
func NewStream(in io.Reader, out io.Writer, accent string) *Stream {
	r := lipgloss.NewRenderer(out)
	return &Stream{
		in:  bufio.NewReader(in),
		out: out,
		titleStyle: r.NewStyle().
			Foreground(lipgloss.Color(accent)).
			Bold(true),
		promptStyle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
	}
}

// Title implements game.Console.
func (s *Stream) Title(text string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.titleStyle.Render(text))
}

// Print implements game.Console.
func (s *Stream) Print(text string) {
	fmt.Fprintln(s.out, text)
}

// Status records the latest status. Stream has no panel to draw it in.
func (s *Stream) Status(st game.Status) {
	s.status = st
}

// LastStatus returns the most recent status passed to Status.
func (s *Stream) LastStatus() game.Status {
	return s.status
}

// Prompt implements game.Console. A final line without a newline is still
// returned; io.EOF follows once nothing is left.
func (s *Stream) Prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, s.promptStyle.Render(label+":")+" ")
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		fmt.Fprintln(s.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
