package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FilesCommand uploads to or lists the configured storage bucket.
type FilesCommand struct {
	Email    string
	Password string
	Bucket   string
	Upload   string
}

// NewFilesCommand creates a new FilesCommand
func NewFilesCommand() *FilesCommand {
	return &FilesCommand{}
}

// ParseFlags parses command line flags
func (cmd *FilesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("files", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email")
	fs.StringVar(&cmd.Password, "password", "", "Account password")
	fs.StringVar(&cmd.Bucket, "bucket", "files", "Storage bucket name")
	fs.StringVar(&cmd.Upload, "upload", "", "Path of a local file to upload")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s files [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the user's files, or upload one with -upload.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the files command
func (cmd *FilesCommand) Run() error {
	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	user, err := signIn(ctx, svc, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	if cmd.Upload != "" {
		f, err := os.Open(cmd.Upload)
		if err != nil {
			return fmt.Errorf("open %s: %w", cmd.Upload, err)
		}
		defer f.Close()

		name := filepath.Base(cmd.Upload)
		key := fmt.Sprintf("%s/%s%s", user.ID, uuid.NewString(), filepath.Ext(name))
		uploaded, err := svc.Storage().UploadFile(ctx, cmd.Bucket, key, f, name)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		fmt.Printf("Uploaded %s\n", uploaded.Path)
		fmt.Printf("URL: %s\n", uploaded.URL)
		return nil
	}

	files, err := svc.Storage().ListFiles(ctx, cmd.Bucket, user.ID)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}
	for _, f := range files {
		fmt.Printf("%s  %s\n", f.Path, f.URL)
	}
	fmt.Printf("%d file(s)\n", len(files))
	return nil
}
