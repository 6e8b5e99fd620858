package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
)

const affirmative = "yes"

// IsYes reports whether answer is an affirmative "yes", ignoring case and
// surrounding whitespace.
func IsYes(answer string) bool {
	return cases.Fold().String(strings.TrimSpace(answer)) == affirmative
}

// Confirm writes question to out and reads one line from in. It returns true
// only for an affirmative answer; end of input is a refusal.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintln(out, question); err != nil {
		return false, fmt.Errorf("write question: %w", err)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	return IsYes(line), nil
}

// IsTerminal reports whether both r and w are terminals.
func IsTerminal(r io.Reader, w io.Writer) bool {
	return isTerminal(r) && isTerminal(w)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
