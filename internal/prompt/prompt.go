// Package prompt provides the blocking yes/no style question used when a
// copy needs a human decision.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrNoAnswer is returned when input ends before an answer line is read, or
// when a scripted prompt runs out of answers.
var ErrNoAnswer = errors.New("no answer")

// Func asks question and blocks until one line of input is available.
// The returned answer has its line terminator removed.
type Func func(question string) (string, error)

// Stdin returns a Func that writes the question to out and reads one line
// from in. There is no timeout; the caller is suspended until a line arrives
// or in is closed.
func Stdin(in io.Reader, out io.Writer) Func {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	reader := bufio.NewReader(in)
	return func(question string) (string, error) {
		if _, err := fmt.Fprint(out, question); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
		response, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if response == "" {
					return "", fmt.Errorf("failed to read input: %w", ErrNoAnswer)
				}
			} else {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
		}
		return strings.TrimRight(response, "\r\n"), nil
	}
}

// Scripted answers questions from a fixed list and remembers what was asked.
type Scripted struct {
	mu        sync.Mutex
	answers   []string
	questions []string
}

// Script creates a scripted prompt that returns answers in order.
func Script(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Ask implements Func.
func (s *Scripted) Ask(question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("scripted prompt %q: %w", question, ErrNoAnswer)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Func returns s.Ask as a Func.
func (s *Scripted) Func() Func {
	return s.Ask
}

// Questions returns every question asked so far.
func (s *Scripted) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.questions))
	copy(out, s.questions)
	return out
}
