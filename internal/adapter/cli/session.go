package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ledger-console/internal/core/domain"
	"ledger-console/internal/core/ports"
	"ledger-console/pkg/apperror"
	"ledger-console/pkg/response"

	"github.com/rs/zerolog"
)

const (
	// DefaultPrompt is written before every read unless WithPrompt overrides it.
	DefaultPrompt = "> "

	farewellMessage = "Goodbye!"

	// maxLineBytes bounds a single command line. Longer lines are
	// discarded up to the next newline and reported.
	maxLineBytes = 1 << 20

	readBufferSize = 4096
)

// inputLine is one line from the reader goroutine. tooLong lines carry no text.
type inputLine struct {
	text    string
	tooLong bool
}

// Session is a line-oriented command loop bound to exactly one account.
// It is not safe for concurrent use; every command is answered before the
// next line is read.
type Session struct {
	svc    ports.AccountService
	in     io.Reader
	out    io.Writer
	prompt string
	log    zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithPrompt overrides the marker written before every read.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// NewSession creates a Session reading commands from in and writing results to out.
func NewSession(svc ports.AccountService, in io.Reader, out io.Writer, log zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		svc:    svc,
		in:     in,
		out:    out,
		prompt: DefaultPrompt,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes commands until an exit command, end of input, or ctx is
// cancelled. All three are clean terminations and return nil. A non-EOF read
// failure also ends the session and is returned.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go s.readLines(lines, readErr, done)

	s.log.Debug().
		Str("account_id", s.svc.AccountID().String()).
		Msg("session started")

	response.OK(s.out, "Ledger account for %s. Type 'help' for a list of commands.", s.svc.Owner())

	for {
		fmt.Fprint(s.out, s.prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			s.terminate("interrupt")
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				if err := <-readErr; err != nil {
					s.log.Error().Err(err).Msg("reading input failed")
					s.terminate("read_error")
					return fmt.Errorf("reading input: %w", err)
				}
				s.terminate("eof")
				return nil
			}

			if line.tooLong {
				s.log.Info().Int("max_bytes", maxLineBytes).Msg("discarded oversized input line")
				response.Error(s.out, apperror.ErrLineTooLong())
				continue
			}

			if !s.dispatch(line.text) {
				s.terminate("exit")
				return nil
			}
		}
	}
}

// readLines sends every input line on lines. After the last line it sends
// the read error (nil on EOF) on errc and then closes lines.
func (s *Session) readLines(lines chan<- inputLine, errc chan<- error, done <-chan struct{}) {
	defer close(lines)

	r := bufio.NewReaderSize(s.in, readBufferSize)
	for {
		line, err := readLine(r, maxLineBytes)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			errc <- err
			return
		}

		select {
		case lines <- line:
		case <-done:
			return
		}
	}
}

// readLine reads one line and strips its "\n" or "\r\n" terminator. A final
// line without a terminator is returned normally; io.EOF is returned only
// when no bytes remain. A line longer than limit is consumed through its
// newline and comes back with tooLong set, so the next call resumes cleanly.
func readLine(r *bufio.Reader, limit int) (inputLine, error) {
	var (
		buf     []byte
		read    int
		tooLong bool
	)

	for {
		chunk, err := r.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			// +2 leaves room for the terminator.
			if len(buf)+len(chunk) > limit+2 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && read > 0) {
			return inputLine{}, err
		}
		break
	}

	text := strings.TrimSuffix(string(buf), "\n")
	text = strings.TrimSuffix(text, "\r")
	if tooLong || len(text) > limit {
		return inputLine{tooLong: true}, nil
	}
	return inputLine{text: text}, nil
}

func (s *Session) terminate(reason string) {
	response.OK(s.out, farewellMessage)
	s.log.Debug().
		Str("reason", reason).
		Str("balance", s.svc.Balance().String()).
		Msg("session terminated")
}

// dispatch runs one command line. It returns false when the session should end.
func (s *Session) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmd, ok := lookupCommand(fields[0])
	if !ok {
		response.OK(s.out, "Unknown command: %s. Type 'help' for a list of commands.", fields[0])
		return true
	}

	return cmd.run(s, fields[1:])
}

func (s *Session) showBalance(_ []string) bool {
	response.OK(s.out, "Balance: %s", s.svc.Balance())
	return true
}

func (s *Session) deposit(args []string) bool {
	return s.mutate(args, "deposit <amount>", "Deposit", s.svc.Deposit)
}

func (s *Session) withdraw(args []string) bool {
	return s.mutate(args, "withdraw <amount>", "Withdrawal", s.svc.Withdraw)
}

// mutate runs a deposit or withdrawal. Tokens after the amount are ignored.
func (s *Session) mutate(args []string, usage, label string, op func(string) (domain.Money, error)) bool {
	if len(args) == 0 {
		response.OK(s.out, "Usage: %s", usage)
		return true
	}

	balance, err := op(args[0])
	if err != nil {
		response.Error(s.out, err)
		return true
	}

	response.OK(s.out, "%s successful. New balance: %s", label, balance)
	return true
}

func (s *Session) setOwner(args []string) bool {
	if len(args) == 0 {
		response.OK(s.out, "Usage: owner <name>")
		return true
	}

	name := strings.Join(args, " ")
	s.svc.SetOwner(name)
	response.OK(s.out, "Owner set to %s", name)
	return true
}

func (s *Session) help(_ []string) bool {
	response.OK(s.out, "Commands:")
	for _, c := range commands {
		response.OK(s.out, "  %-22s %s", c.usage, c.desc)
	}
	return true
}

func (s *Session) quit(_ []string) bool {
	return false
}
