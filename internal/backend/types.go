package backend

// User is the authenticated principal as seen by every adapter. Email is an
// empty string when the provider omits it, never absent.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse carries the result of a sign-in or sign-up attempt. Exactly
// one of User and Err is set for a failed attempt; both may be inspected.
type AuthResponse struct {
	User *User
	Err  error
}

// Profile is the one-to-one companion record of a User. Adapters provision
// it during sign-up so a valid account always has one.
type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Note struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Todo struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Task        string `json:"task"`
	IsCompleted bool   `json:"is_completed"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Message is append-only: the contract exposes no update or delete for it.
type Message struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency"` // daily, weekly or monthly
	CreatedAt   string `json:"created_at"`
}

type HabitLog struct {
	ID          string `json:"id"`
	HabitID     string `json:"habit_id"`
	UserID      string `json:"user_id"`
	CompletedAt string `json:"completed_at"`
	Notes       string `json:"notes,omitempty"`
}

type Event struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	AllDay      bool   `json:"all_day"`
	CreatedAt   string `json:"created_at"`
}

type Expense struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"` // income or expense
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

type KanbanBoard struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Position orders columns within a board. Uniqueness within the board is the
// caller's responsibility; adapters store whatever they are given.
type KanbanColumn struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	BoardID   string `json:"board_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
}

type KanbanCard struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	BoardID     string `json:"board_id"`
	ColumnID    string `json:"column_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
}

type MarkdownDocument struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UploadedFile describes an object held by the active provider. Path is the
// provider's durable key; URL is derived and may expire, so it must never be
// persisted as an identifier.
type UploadedFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Name string `json:"name"`
}
