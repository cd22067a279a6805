package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context, token string) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Dashboard(ctx context.Context, day string) error
	SignOut(ctx context.Context) error
	Toasts(ctx context.Context) error
	Dismiss(ctx context.Context, ref string) error
	WhoAmI(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: go <path>, signin, signup, forgot, reset [token], toasts, dismiss <n|id>, whoami, exit"
	helpSignedIn  = "Available commands: go <path>, dashboard [YYYY-MM-DD], profile, avatar <file>, signout, toasts, dismiss <n|id>, whoami, exit"
)

// runREPL starts a simple read–eval–print loop for the GoBarber CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gobarber %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "go", "open":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			err = a.Open(ctx, args[0])

		case "signin", "login":
			err = a.SignIn(ctx)

		case "signup", "register":
			err = a.SignUp(ctx)

		case "forgot":
			err = a.ForgotPassword(ctx)

		case "reset":
			err = a.ResetPassword(ctx, arg)

		case "profile":
			err = a.Profile(ctx)

		case "avatar":
			if arg == "" {
				printlnFn("Usage: avatar <file>")
				continue
			}
			err = a.Avatar(ctx, arg)

		case "dashboard", "d":
			err = a.Dashboard(ctx, arg)

		case "signout", "logout":
			err = a.SignOut(ctx)

		case "toasts":
			err = a.Toasts(ctx)

		case "dismiss":
			if arg == "" {
				printlnFn("Usage: dismiss <n|id>")
				continue
			}
			err = a.Dismiss(ctx, arg)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
