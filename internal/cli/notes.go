package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// NotesCommand lists or creates notes for the signed-in user.
type NotesCommand struct {
	Email    string
	Password string
	Title    string
	Content  string
}

// NewNotesCommand creates a new NotesCommand
func NewNotesCommand() *NotesCommand {
	return &NotesCommand{}
}

// ParseFlags parses command line flags
func (cmd *NotesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("notes", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email")
	fs.StringVar(&cmd.Password, "password", "", "Account password")
	fs.StringVar(&cmd.Title, "title", "", "Create a note with this title")
	fs.StringVar(&cmd.Content, "content", "", "Note body, used with -title")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s notes [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List notes, or create one when -title is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the notes command
func (cmd *NotesCommand) Run() error {
	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	user, err := signIn(ctx, svc, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	if cmd.Title != "" {
		note, err := svc.Database().CreateNote(ctx, user.ID, backend.NoteParams{
			Title:   cmd.Title,
			Content: cmd.Content,
		})
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		fmt.Printf("Created note %s\n", note.ID)
		return nil
	}

	notes, err := svc.Database().GetNotes(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	for _, n := range notes {
		fmt.Printf("%s  %s  %s\n", n.ID, n.CreatedAt, n.Title)
	}
	fmt.Printf("%d note(s)\n", len(notes))
	return nil
}
