package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal   // mockable

	errInvalidNumber = errors.New("input is not a number")
)

// Prompter reads answers line by line and writes prompts and menus to out.
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	passwordFD int
}

// NewPrompter wraps in and out. Passwords are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, passwordFD: fd}
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line of output.
func (p *Prompter) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// ReadLine prints prompt and returns the next line without its line ending.
// io.EOF is returned once the input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	p.Printf("%s", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadInt reads a line and parses it as a decimal integer.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

// ReadPassword reads a secret. On a terminal the input is not echoed unless
// it was already typed ahead into the line buffer.
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	if p.passwordFD < 0 || p.in.Buffered() > 0 {
		return p.ReadLine(prompt)
	}
	p.Printf("%s", prompt)
	pwd, err := readPasswordFunc(p.passwordFD)
	p.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
