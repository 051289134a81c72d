package backend

// Create params carry the caller-supplied fields of a new entity. Identity
// fields (id, user_id, created_at) are always assigned by the adapter, never
// accepted from the caller.
//
// Update params use pointer fields: a nil pointer means "leave unchanged",
// which keeps an empty string and an omitted field distinguishable.

type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type NoteParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type TodoParams struct {
	Task        string `json:"task"`
	IsCompleted bool   `json:"is_completed"`
	DueDate     string `json:"due_date,omitempty"`
}

type TodoUpdate struct {
	Task        *string `json:"task,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type HabitParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency"`
}

type HabitUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

type EventParams struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	AllDay      bool   `json:"all_day"`
}

type EventUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	AllDay      *bool   `json:"all_day,omitempty"`
}

type ExpenseParams struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
}

type ExpenseUpdate struct {
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

type BoardParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type BoardUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ColumnParams struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type ColumnUpdate struct {
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type CardParams struct {
	BoardID     string `json:"board_id"`
	ColumnID    string `json:"column_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

type CardUpdate struct {
	ColumnID    *string `json:"column_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

type MarkdownDocParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type MarkdownDocUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
