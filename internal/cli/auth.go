package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
)

// AuthCommand signs a user in or registers a new account.
type AuthCommand struct {
	Email    string
	Password string
	SignUp   bool
}

// NewAuthCommand creates a new AuthCommand
func NewAuthCommand() *AuthCommand {
	return &AuthCommand{}
}

// ParseFlags parses command line flags
func (cmd *AuthCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email")
	fs.StringVar(&cmd.Password, "password", "", "Account password")
	fs.BoolVar(&cmd.SignUp, "signup", false, "Register a new account instead of signing in")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s auth [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Verify credentials against the configured backend.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s auth -email me@example.com -password secret\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s auth -signup -email me@example.com -password secret\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the auth command
func (cmd *AuthCommand) Run() error {
	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if cmd.SignUp {
		res := svc.Auth().SignUp(ctx, cmd.Email, cmd.Password)
		if res.Err != nil {
			return fmt.Errorf("sign up failed: %w", res.Err)
		}
		fmt.Printf("Registered %s (id %s) on %s\n", res.User.Email, res.User.ID, svc.Type())
		return nil
	}

	user, err := signIn(ctx, svc, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (id %s) on %s\n", user.Email, user.ID, svc.Type())
	return svc.Auth().SignOut(ctx)
}
