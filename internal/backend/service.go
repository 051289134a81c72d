// Package backend defines the provider-agnostic service contract and the
// domain model shared by every adapter. Three adapters implement the
// contract against heterogeneous hosted backends; consumers never see which
// one is active.
package backend

import (
	"context"
	"errors"
	"io"
)

// Provider identifiers, one per adapter.
const (
	ProviderSupabase = "supabase"
	ProviderFirebase = "firebase"
	ProviderAppwrite = "appwrite"
)

// ErrNotFound is returned by database reads when the addressed record does
// not exist at the provider.
var ErrNotFound = errors.New("backend: not found")

// AuthStateFunc receives the new principal after an auth transition, or nil
// after a sign-out.
type AuthStateFunc func(user *User)

// MessageFunc receives each newly inserted chat message.
type MessageFunc func(msg Message)

// UnsubscribeFunc tears down a subscription. Safe to call once; adapters
// release internal timers and sockets when it runs.
type UnsubscribeFunc func()

// Auth is the authentication sub-contract. Sign-in and sign-up report
// failures through AuthResponse.Err rather than panicking or losing the
// distinction between "bad credentials" and "no result": auth paths never
// propagate a bare Go error to the caller except from SignOut.
type Auth interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) AuthResponse

	// SignUp registers a new account and provisions its Profile record as a
	// side effect.
	SignUp(ctx context.Context, email, password string) AuthResponse

	// SignOut ends the current session. A nil error means the session is gone.
	SignOut(ctx context.Context) error

	// GetCurrentUser resolves the active principal. It never fails: any
	// provider error degrades to nil, indistinguishable from "no session".
	GetCurrentUser(ctx context.Context) *User

	// OnAuthStateChange registers cb to run once per actual auth transition
	// (sign-in, sign-out, user switch). Implementations that poll must still
	// fire only on transitions, never on every tick.
	OnAuthStateChange(cb AuthStateFunc) UnsubscribeFunc
}

// Database is the document sub-contract. List operations return entities in
// the documented order for each type; create calls assign id and created_at
// at the provider, and update calls refresh updated_at.
//
// Failures are returned as plain errors with no typed hierarchy beyond
// ErrNotFound; callers treat any error as fatal to that one operation.
type Database interface {
	// Profiles. GetProfile returns ErrNotFound only when no profile document
	// exists, which sign-up prevents for accounts it created.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, params ProfileUpdate) (*Profile, error)

	// Notes, newest first.
	GetNotes(ctx context.Context, userID string) ([]Note, error)
	CreateNote(ctx context.Context, userID string, params NoteParams) (*Note, error)
	UpdateNote(ctx context.Context, id string, params NoteUpdate) (*Note, error)
	DeleteNote(ctx context.Context, id string) error

	// Todos, newest first.
	GetTodos(ctx context.Context, userID string) ([]Todo, error)
	CreateTodo(ctx context.Context, userID string, params TodoParams) (*Todo, error)
	UpdateTodo(ctx context.Context, id string, params TodoUpdate) (*Todo, error)
	DeleteTodo(ctx context.Context, id string) error

	// Messages: a global append-only room, oldest first. SubscribeToMessages
	// delivers inserts in provider feed order, which tracks but does not
	// guarantee global creation order across clients.
	GetMessages(ctx context.Context) ([]Message, error)
	CreateMessage(ctx context.Context, userID, content string) (*Message, error)
	SubscribeToMessages(cb MessageFunc) (UnsubscribeFunc, error)

	// Habits, newest first; logs per habit, latest completion first.
	GetHabits(ctx context.Context, userID string) ([]Habit, error)
	CreateHabit(ctx context.Context, userID string, params HabitParams) (*Habit, error)
	UpdateHabit(ctx context.Context, id string, params HabitUpdate) (*Habit, error)
	DeleteHabit(ctx context.Context, id string) error

	GetHabitLogs(ctx context.Context, habitID string) ([]HabitLog, error)
	CreateHabitLog(ctx context.Context, userID, habitID, notes string) (*HabitLog, error)
	DeleteHabitLog(ctx context.Context, id string) error

	// Events by start date ascending.
	GetEvents(ctx context.Context, userID string) ([]Event, error)
	CreateEvent(ctx context.Context, userID string, params EventParams) (*Event, error)
	UpdateEvent(ctx context.Context, id string, params EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// Expenses by transaction date descending.
	GetExpenses(ctx context.Context, userID string) ([]Expense, error)
	CreateExpense(ctx context.Context, userID string, params ExpenseParams) (*Expense, error)
	UpdateExpense(ctx context.Context, id string, params ExpenseUpdate) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// Kanban: boards newest first, children by position ascending.
	GetBoards(ctx context.Context, userID string) ([]KanbanBoard, error)
	CreateBoard(ctx context.Context, userID string, params BoardParams) (*KanbanBoard, error)
	UpdateBoard(ctx context.Context, id string, params BoardUpdate) (*KanbanBoard, error)
	DeleteBoard(ctx context.Context, id string) error

	GetColumns(ctx context.Context, boardID string) ([]KanbanColumn, error)
	CreateColumn(ctx context.Context, userID, boardID string, params ColumnParams) (*KanbanColumn, error)
	UpdateColumn(ctx context.Context, id string, params ColumnUpdate) (*KanbanColumn, error)
	DeleteColumn(ctx context.Context, id string) error

	GetCards(ctx context.Context, boardID string) ([]KanbanCard, error)
	CreateCard(ctx context.Context, userID string, params CardParams) (*KanbanCard, error)
	UpdateCard(ctx context.Context, id string, params CardUpdate) (*KanbanCard, error)
	DeleteCard(ctx context.Context, id string) error

	// Markdown documents, newest first.
	GetMarkdownDocs(ctx context.Context, userID string) ([]MarkdownDocument, error)
	CreateMarkdownDoc(ctx context.Context, userID string, params MarkdownDocParams) (*MarkdownDocument, error)
	UpdateMarkdownDoc(ctx context.Context, id string, params MarkdownDocUpdate) (*MarkdownDocument, error)
	DeleteMarkdownDoc(ctx context.Context, id string) error
}

// Storage is the object storage sub-contract.
type Storage interface {
	// UploadFile stores content under bucket/path. Name is the original file
	// name, kept for display only.
	UploadFile(ctx context.Context, bucket, path string, content io.Reader, name string) (*UploadedFile, error)

	DeleteFile(ctx context.Context, bucket, path string) error

	// GetPublicURL derives a URL for the object synchronously. It cannot
	// fail: providers whose durable URLs require an async exchange return a
	// best-effort construction that may not be fetchable.
	GetPublicURL(bucket, path string) string

	// ListFiles enumerates objects under the prefix. Pass "" for the bucket
	// root.
	ListFiles(ctx context.Context, bucket, prefix string) ([]UploadedFile, error)
}

// Service is the full capability surface a provider adapter implements. One
// instance is selected at process start and shared by every consumer; it
// holds no cross-call mutable state beyond what individual subscriptions
// own privately.
type Service interface {
	// Type reports the provider identifier backing this instance.
	Type() string

	Auth() Auth
	Database() Database
	Storage() Storage
}
