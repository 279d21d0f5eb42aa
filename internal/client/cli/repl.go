package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	helpLogin     = "Available commands: login, register, help, exit"
	helpDashboard = "Available commands: projects, select <id>, newproject, secrets, addsecret, rm <id>, reveal <id>, copy <id>, refresh, logout, help, exit"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	syncScreen(ctx context.Context) string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Projects(ctx context.Context) error
	Select(ctx context.Context, arg string) error
	NewProject(ctx context.Context) error
	Secrets(ctx context.Context) error
	AddSecret(ctx context.Context) error
	Remove(ctx context.Context, arg string) error
	Reveal(ctx context.Context, arg string) error
	Copy(ctx context.Context, arg string) error
	Refresh(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the client's screens.
//
// Before each prompt the current screen is synchronized with the router, so
// a login, a logout or an expired session switches the command set on the
// next line. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Prompt & Commands
//
//	/login:
//	  - login         : authenticate
//	  - register      : create an account
//
//	/dashboard:
//	  - projects      : reload and list projects
//	  - select <id>   : select a project and list its secrets
//	  - newproject    : create a project
//	  - secrets       : list the selected project's secrets
//	  - addsecret     : add a secret to the selected project
//	  - rm <id>       : delete a secret (asks for confirmation)
//	  - reveal <id>   : show or hide a secret value
//	  - copy <id>     : copy a secret value to the clipboard
//	  - refresh       : reload projects and secrets
//	  - logout        : end the session
//
// help, exit and quit work everywhere. Handler errors are ignored here;
// handlers report to the user themselves.
//
// Lines are read from the same reader the command prompts use, so no input is
// buffered away from them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) error {
	for {
		screen := a.syncScreen(ctx)
		printlnFn(fmt.Sprintf("cs %s %s > ", screen, statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if screen == common.DashboardPath {
				printlnFn(helpDashboard)
			} else {
				printlnFn(helpLogin)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return nil
		}

		if screen == common.DashboardPath {
			dispatchDashboard(ctx, a, cmd, args)
		} else {
			dispatchLogin(ctx, a, cmd)
		}
	}
}

func dispatchLogin(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "login":
		_ = a.Login(ctx)
	case "register":
		_ = a.Register(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchDashboard(ctx context.Context, a execIface, cmd string, args []string) {
	withID := func(fn func(context.Context, string) error) {
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return
		}
		_ = fn(ctx, args[0])
	}

	switch cmd {
	case "projects":
		_ = a.Projects(ctx)
	case "select":
		withID(a.Select)
	case "newproject":
		_ = a.NewProject(ctx)
	case "secrets":
		_ = a.Secrets(ctx)
	case "addsecret":
		_ = a.AddSecret(ctx)
	case "rm":
		withID(a.Remove)
	case "reveal":
		withID(a.Reveal)
	case "copy":
		withID(a.Copy)
	case "refresh":
		_ = a.Refresh(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

// Shell runs the interactive shell until the user exits or input ends.
func (a *App) Shell(ctx context.Context) error {
	printlnFn(figure.NewFigure("CipherSafe", "standard", true).String())
	printlnFn("Welcome to CipherSafe (type 'help' for commands)")
	defer a.leaveDashboard()

	return runREPL(ctx, a, a.status, a.reader)
}
