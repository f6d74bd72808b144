package repl

import (
	"fmt"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/config"
)

// handleCommand processes slash commands.
// Returns true to continue the loop, false to exit.
func (r *REPL) handleCommand(input string) bool {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "/help", "/h":
		fmt.Fprintln(r.errOut, "\nAvailable commands:")
		fmt.Fprintln(r.errOut, "  /help, /h               - Show this help message")
		fmt.Fprintln(r.errOut, "  /info, /i               - Show session information")
		fmt.Fprintln(r.errOut, "  /history                - Show the conversation so far")
		fmt.Fprintln(r.errOut, "  /theme [light|dark]     - Switch theme (toggles without an argument)")
		fmt.Fprintln(r.errOut, "  /clear, /c              - Clear screen")
		fmt.Fprintln(r.errOut, "  /exit, /quit, /q        - Exit")
		fmt.Fprintln(r.errOut, "  //text                  - Send a message starting with '/'")
		fmt.Fprintln(r.errOut, "  Ctrl+D                  - Exit")
		fmt.Fprintln(r.errOut, "")
		return true

	case "/info", "/i":
		fmt.Fprintln(r.errOut, "\nSession Information:")
		fmt.Fprintf(r.errOut, "  ID: %s\n", r.sess.GetShortID())
		fmt.Fprintf(r.errOut, "  Full ID: %s\n", r.sess.ID)
		fmt.Fprintf(r.errOut, "  Started: %s\n", r.sess.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(r.errOut, "  Messages: %d\n", r.ctrl.Conversation().Len())
		if r.backendURL != "" {
			fmt.Fprintf(r.errOut, "  Backend: %s\n", r.backendURL)
		}
		fmt.Fprintf(r.errOut, "  Theme: %s\n", r.theme.Name)
		fmt.Fprintln(r.errOut, "")
		return true

	case "/history":
		msgs := r.ctrl.Conversation().Messages()
		if len(msgs) == 0 {
			fmt.Fprintln(r.errOut, r.theme.Info.Render("No messages yet."))
			return true
		}
		for _, m := range msgs {
			fmt.Fprintln(r.out, r.theme.RenderMessage(m))
		}
		fmt.Fprintln(r.out)
		return true

	case "/theme":
		switch {
		case len(args) == 0:
			r.theme = r.theme.Toggle()
		case args[0] == config.ThemeLight || args[0] == config.ThemeDark:
			r.theme = NewTheme(args[0])
		default:
			fmt.Fprintf(r.errOut, "Unknown theme: %s (expected %s or %s)\n", args[0], config.ThemeLight, config.ThemeDark)
			return true
		}
		fmt.Fprintln(r.errOut, r.theme.Info.Render("Theme: "+r.theme.Name))
		return true

	case "/clear", "/c":
		fmt.Fprint(r.out, "\033[H\033[2J")
		return true

	case "/exit", "/quit", "/q":
		fmt.Fprintln(r.errOut, "Goodbye!")
		return false

	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s (type '/help' for available commands)\n", command)
		return true
	}
}
