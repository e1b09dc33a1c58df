package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/api"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ErrCancelled is returned by the prompts when the user enters an empty
// line where a value is required.
var ErrCancelled = errors.New("cancelled")

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret reads a value from the terminal without echo, used for the
// bearer token which should not end up in the scrollback.
func GetSecret(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line
// is entered. The collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetChoice lists options and returns the value of the one picked, either
// by its number or by its value.
func GetChoice(reader *bufio.Reader, prompt string, options []api.Option, w io.Writer) (string, error) {
	fmt.Fprintln(w, prompt)
	for i, o := range options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, o.Label)
	}
	for {
		s, err := GetSimpleText(reader, "Choose", w)
		if err != nil {
			return "", err
		}
		if s == "" {
			return "", ErrCancelled
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
			return options[n-1].Value, nil
		}
		for _, o := range options {
			if strings.EqualFold(o.Value, s) {
				return o.Value, nil
			}
		}
		fmt.Fprintf(w, "Invalid choice %q\n", s)
	}
}

// GetOptionalFloat reads a number; an empty line yields nil.
func GetOptionalFloat(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err == nil {
			return &v, nil
		}
		fmt.Fprintf(w, "Not a number: %q\n", s)
	}
}
