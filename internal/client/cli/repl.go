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
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Products(ctx context.Context) error
	More(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the shopcore client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - signin | login — authenticate
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - whoami         — show the current account
//	  - products       — load the first page of the catalog
//	  - more           — load the next page
//	  - reset          — drop the accumulated catalog
//	  - logout         — log out (wipes local accounts)
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, products, more, reset, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "products":
			_ = a.Products(ctx)

		case "more":
			_ = a.More(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
