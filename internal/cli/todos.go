package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// TodosCommand lists, creates or completes todos.
type TodosCommand struct {
	Email    string
	Password string
	Task     string
	DueDate  string
	Done     string
}

// NewTodosCommand creates a new TodosCommand
func NewTodosCommand() *TodosCommand {
	return &TodosCommand{}
}

// ParseFlags parses command line flags
func (cmd *TodosCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("todos", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email")
	fs.StringVar(&cmd.Password, "password", "", "Account password")
	fs.StringVar(&cmd.Task, "task", "", "Create a todo with this description")
	fs.StringVar(&cmd.DueDate, "due", "", "Due date for -task, ISO-8601")
	fs.StringVar(&cmd.Done, "done", "", "Mark the todo with this id completed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s todos [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List todos, create one with -task, or complete one with -done.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the todos command
func (cmd *TodosCommand) Run() error {
	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := context.Background()

	user, err := signIn(ctx, svc, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	switch {
	case cmd.Task != "":
		todo, err := svc.Database().CreateTodo(ctx, user.ID, backend.TodoParams{
			Task:    cmd.Task,
			DueDate: cmd.DueDate,
		})
		if err != nil {
			return fmt.Errorf("create todo: %w", err)
		}
		fmt.Printf("Created todo %s\n", todo.ID)
		return nil

	case cmd.Done != "":
		completed := true
		todo, err := svc.Database().UpdateTodo(ctx, cmd.Done, backend.TodoUpdate{
			IsCompleted: &completed,
		})
		if err != nil {
			return fmt.Errorf("complete todo: %w", err)
		}
		fmt.Printf("Completed %q\n", todo.Task)
		return nil
	}

	todos, err := svc.Database().GetTodos(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	for _, t := range todos {
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Task)
	}
	fmt.Printf("%d todo(s)\n", len(todos))
	return nil
}
