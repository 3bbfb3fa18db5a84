package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Validate(ctx context.Context) error
	ResetToken(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	RevokeAccess(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL reads commands line by line from in and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit". Command errors
// are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: refresh, validate, reset-token, reset-password, revoke-access, logout, ping, exit")
			} else {
				printlnFn("Available commands: login, validate, reset-password, ping, exit")
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "validate":
			cmdErr = a.Validate(ctx)
		case "reset-token":
			cmdErr = a.ResetToken(ctx)
		case "reset-password":
			cmdErr = a.ResetPassword(ctx)
		case "revoke-access":
			cmdErr = a.RevokeAccess(ctx)
		case "ping":
			cmdErr = a.Ping(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
