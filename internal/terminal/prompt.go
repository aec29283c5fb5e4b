package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when the user submits nothing.
var ErrEmptyInput = errors.New("input is required")

// Prompter reads answers from a terminal or, when input is piped, line by line.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
	// readPassword reads a secret without echo; replaced in tests.
	readPassword func(fd int) ([]byte, error)
}

// NewPrompter returns a Prompter reading from in and writing prompts to out.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	fd := int(in.Fd())
	return &Prompter{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           fd,
		isTerm:       term.IsTerminal(fd),
		readPassword: term.ReadPassword,
	}
}

// NewReaderPrompter returns a Prompter over a plain reader. Secrets are read
// as ordinary lines.
func NewReaderPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Line prints label and returns the trimmed answer. An empty answer is
// ErrEmptyInput.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyInput
	}
	return s, nil
}

// Secret prints label and reads an answer without echoing it. The prompt is
// cleared afterwards.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.isTerm {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	ClearPreviousLines(len(label))
	if len(b) == 0 {
		return "", ErrEmptyInput
	}
	return string(b), nil
}
