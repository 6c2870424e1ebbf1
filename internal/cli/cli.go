// Package cli implements sweetctl, the operator tool for bootstrapping the shop.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dtroode/sweetshop-server/internal/model"
)

// Test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// ErrUsage is returned for an unknown or missing subcommand.
var ErrUsage = errors.New("usage: sweetctl create-admin [-name NAME] [-email EMAIL] [-contact NUMBER]")

// AdminCreator registers approved administrator accounts.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, params model.SignUpParams) (model.Account, error)
}

// App runs sweetctl subcommands against an AdminCreator.
type App struct {
	creator AdminCreator
	in      *bufio.Reader
	out     io.Writer
	// passwordFD is the terminal behind in, or -1 when in is not a terminal.
	passwordFD int
}

// NewApp creates an App reading answers from in and writing prompts to out.
// Passwords are read without echo when in is a terminal and as plain lines
// from in otherwise.
func NewApp(creator AdminCreator, in io.Reader, out io.Writer) *App {
	fd := -1
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &App{
		creator:    creator,
		in:         bufio.NewReader(in),
		out:        out,
		passwordFD: fd,
	}
}

// Run dispatches args[0] as the subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "create-admin":
		return a.CreateAdmin(ctx, args[1:])
	default:
		return ErrUsage
	}
}

// CreateAdmin creates an approved admin. Fields missing from the flags are
// prompted for, followed by the password twice.
func (a *App) CreateAdmin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "admin display name")
	email := fs.String("email", "", "admin email, used as login")
	contact := fs.String("contact", "", "admin contact number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := model.SignUpParams{Name: *name, Email: *email, ContactNumber: *contact}
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &params.Name},
		{"Enter email", &params.Email},
		{"Enter contact number", &params.ContactNumber},
	} {
		if *f.dst != "" {
			continue
		}
		v, err := a.readLine(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := a.readNewPassword()
	if err != nil {
		return err
	}
	params.Password = password

	account, err := a.creator.CreateAdmin(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(a.out, "Admin %s created with id %d\n", account.Email, account.ID)
	return nil
}

func (a *App) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) readNewPassword() (string, error) {
	first, err := a.readSecret("Enter password: ")
	if err != nil {
		return "", err
	}
	second, err := a.readSecret("Repeat password: ")
	if err != nil {
		return "", err
	}
	if !bytes.Equal(first, second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}

func (a *App) readSecret(prompt string) ([]byte, error) {
	if a.passwordFD < 0 {
		line, err := a.readLine(strings.TrimSuffix(prompt, ": "))
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return []byte(line), nil
	}

	if _, err := fmt.Fprint(a.out, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(a.passwordFD)
	fmt.Fprintln(a.out)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}
