// Package repl is the line-oriented presentation layer of the chat client.
//
// It reads user input, hands it to an exchange.Controller, and re-renders whenever
// the conversation or the pending flag changes. Input is read on the same goroutine
// that runs the exchange, so no new submission is accepted while a reply is pending.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/exchange"
	"github.com/longkey1/chatc/internal/chatc/session"
	"github.com/longkey1/chatc/internal/chatc/transcript"
	"go.uber.org/zap"
)

const maxInputSize = 1 << 20

// TranscriptSaver persists a snapshot of the conversation after each exchange
type TranscriptSaver interface {
	Save(t *transcript.Transcript) error
}

// Options configures a REPL
type Options struct {
	In          io.Reader // defaults to os.Stdin
	Out         io.Writer // conversation output, defaults to os.Stdout
	Err         io.Writer // prompts, typing indicator and notices, defaults to os.Stderr
	Theme       string    // "light" or "dark"
	BackendURL  string    // shown by /info and recorded in transcripts
	Interactive bool      // input comes from a terminal, so typed lines are already visible
	ShowTyping  bool      // animate the typing indicator while a reply is pending
	Transcripts TranscriptSaver
	Logger      *zap.Logger
}

// REPL runs an interactive conversation
type REPL struct {
	ctrl        *exchange.Controller
	sess        *session.Session
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	theme       Theme
	backendURL  string
	interactive bool
	transcripts TranscriptSaver
	logger      *zap.Logger
	typing      *typingIndicator
	rendered    int
}

// New creates a REPL for ctrl. sess must be the session whose ID ctrl sends.
func New(ctrl *exchange.Controller, sess *session.Session, opts Options) *REPL {
	r := &REPL{
		ctrl:        ctrl,
		sess:        sess,
		in:          opts.In,
		out:         opts.Out,
		errOut:      opts.Err,
		theme:       NewTheme(opts.Theme),
		backendURL:  opts.BackendURL,
		interactive: opts.Interactive,
		transcripts: opts.Transcripts,
		logger:      opts.Logger,
	}
	if r.in == nil {
		r.in = os.Stdin
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	if opts.ShowTyping {
		r.typing = newTypingIndicator(r.errOut, 80*time.Millisecond, func(s string) string {
			return r.theme.Typing.Render(s)
		})
		ctrl.OnPending(func(pending bool) {
			if pending {
				r.typing.Start()
			} else {
				r.typing.Stop()
			}
		})
	}

	return r
}

// Run reads input until EOF, /exit, or ctx is done
func (r *REPL) Run(ctx context.Context) error {
	r.printHeader()

	unsubscribe := r.ctrl.Conversation().Subscribe(r.render)
	defer unsubscribe()

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputSize)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(r.errOut, r.theme.User.Render("You> "))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			fmt.Fprintln(r.errOut, "\nGoodbye!")
			return nil
		}

		input := scanner.Text()
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		// "//text" sends "/text" literally
		if strings.HasPrefix(trimmed, "//") {
			input = strings.Replace(input, "/", "", 1)
		} else if strings.HasPrefix(trimmed, "/") {
			if r.handleCommand(trimmed) {
				continue
			}
			return nil
		}

		r.ctrl.Submit(ctx, input)
		r.saveTranscript()
	}
}

// render prints messages appended since the last call
func (r *REPL) render(msgs []chatc.Message) {
	for _, m := range msgs[r.rendered:] {
		switch m.Role {
		case chatc.RoleAssistant:
			if r.typing != nil {
				r.typing.Stop()
			}
			fmt.Fprintf(r.out, "\n%s\n\n", r.theme.RenderMessage(m))
		default:
			if !r.interactive {
				fmt.Fprintln(r.out, r.theme.RenderMessage(m))
			}
		}
	}
	r.rendered = len(msgs)
}

func (r *REPL) saveTranscript() {
	if r.transcripts == nil {
		return
	}
	t := transcript.New(r.sess, r.backendURL, r.ctrl.Conversation().Messages())
	if err := r.transcripts.Save(t); err != nil {
		r.logger.Warn("failed to save transcript", zap.String("session_id", r.sess.ID), zap.Error(err))
		fmt.Fprintf(r.errOut, "Warning: failed to save transcript: %v\n", err)
	}
}

func (r *REPL) printHeader() {
	fmt.Fprintf(r.errOut, "\n=== Chat Session [%s] ===\n", r.sess.GetShortID())
	if r.backendURL != "" {
		fmt.Fprintf(r.errOut, "Backend: %s\n", r.backendURL)
	}
	fmt.Fprintf(r.errOut, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n")
	fmt.Fprintf(r.errOut, "==============================\n\n")
}
