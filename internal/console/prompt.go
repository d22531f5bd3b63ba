package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errReadInput = errors.New("failed to read input")

type lineResult struct {
	line string
	err  error
}

// prompter writes prompts to out and reads answers line by line from in.
// Lines are read on a separate goroutine so a pending prompt can be abandoned when the context ends.
type prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan lineResult
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out}
}

// start launches the reader goroutine on first use.
func (p *prompter) start() {
	if p.lines != nil {
		return
	}
	p.lines = make(chan lineResult)
	go func() {
		defer close(p.lines)
		reader := bufio.NewReader(p.in)
		for {
			line, err := readLine(reader)
			if line != "" || err == nil {
				p.lines <- lineResult{line: line}
			}
			if err != nil {
				p.lines <- lineResult{err: err}

				return
			}
		}
	}()
}

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// isInputError reports whether err ends the conversation rather than a single request.
func isInputError(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, errReadInput) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ask prints label and returns the trimmed answer. It returns io.EOF once the input is exhausted.
func (p *prompter) ask(ctx context.Context, label string) (string, error) {
	p.start()
	fmt.Fprintf(p.out, "%s: ", label)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)

		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			fmt.Fprintln(p.out)
			if errors.Is(res.err, io.EOF) {
				return "", io.EOF
			}

			return "", fmt.Errorf("%w: %w", errReadInput, res.err)
		}

		return strings.TrimSpace(res.line), nil
	}
}
