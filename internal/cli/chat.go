package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// ChatCommand posts to the shared room or tails it live.
type ChatCommand struct {
	Email    string
	Password string
	Send     string
	Tail     bool
}

// NewChatCommand creates a new ChatCommand
func NewChatCommand() *ChatCommand {
	return &ChatCommand{}
}

// ParseFlags parses command line flags
func (cmd *ChatCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email")
	fs.StringVar(&cmd.Password, "password", "", "Account password")
	fs.StringVar(&cmd.Send, "send", "", "Post this message to the room")
	fs.BoolVar(&cmd.Tail, "tail", false, "Stream new messages until interrupted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s chat [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the room history, post with -send, or follow with -tail.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the chat command
func (cmd *ChatCommand) Run() error {
	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	user, err := signIn(ctx, svc, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	if cmd.Send != "" {
		msg, err := svc.Database().CreateMessage(ctx, user.ID, cmd.Send)
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		fmt.Printf("Sent %s\n", msg.ID)
		if !cmd.Tail {
			return nil
		}
	}

	if cmd.Tail {
		unsubscribe, err := svc.Database().SubscribeToMessages(func(msg backend.Message) {
			fmt.Printf("%s  %s: %s\n", msg.CreatedAt, msg.UserID, msg.Content)
		})
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
		defer unsubscribe()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		return nil
	}

	msgs, err := svc.Database().GetMessages(ctx)
	if err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}
	for _, m := range msgs {
		fmt.Printf("%s  %s: %s\n", m.CreatedAt, m.UserID, m.Content)
	}
	return nil
}
