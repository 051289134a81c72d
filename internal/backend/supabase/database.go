package supabase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// databaseAPI translates the contract's database calls into PostgREST
// requests. Filters and ordering compose declaratively on the query string;
// every insert and update asks for the mutated row back in the same round
// trip via Prefer: return=representation.
type databaseAPI struct {
	c *client
}

const (
	preferRepresentation = "return=representation"
	acceptSingleObject   = "application/vnd.pgrst.object+json"
)

func restPath(table string) string { return "/rest/v1/" + table }

func (d *databaseAPI) selectList(ctx context.Context, table string, filters map[string]string, order string, out any) error {
	q := url.Values{"select": {"*"}}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	if order != "" {
		q.Set("order", order)
	}
	return d.c.do(ctx, http.MethodGet, restPath(table), q, nil, nil, out)
}

func (d *databaseAPI) selectSingle(ctx context.Context, table string, filters map[string]string, out any) error {
	q := url.Values{"select": {"*"}}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	headers := map[string]string{"Accept": acceptSingleObject}
	err := d.c.do(ctx, http.MethodGet, restPath(table), q, headers, nil, out)
	return singleRowErr(err)
}

func (d *databaseAPI) insertReturning(ctx context.Context, table string, record, out any) error {
	headers := map[string]string{
		"Prefer": preferRepresentation,
		"Accept": acceptSingleObject,
	}
	return d.c.do(ctx, http.MethodPost, restPath(table), nil, headers, record, out)
}

func (d *databaseAPI) updateReturning(ctx context.Context, table string, filters map[string]string, patch, out any) error {
	q := url.Values{}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	headers := map[string]string{
		"Prefer": preferRepresentation,
		"Accept": acceptSingleObject,
	}
	err := d.c.do(ctx, http.MethodPatch, restPath(table), q, headers, patch, out)
	return singleRowErr(err)
}

func (d *databaseAPI) deleteRows(ctx context.Context, table string, filters map[string]string) error {
	q := url.Values{}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	return d.c.do(ctx, http.MethodDelete, restPath(table), q, nil, nil, nil)
}

// singleRowErr maps PostgREST's "zero rows for a single-object request"
// failure onto the contract's not-found sentinel.
func singleRowErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "status 406") {
		return backend.ErrNotFound
	}
	return err
}

// Profiles

func (d *databaseAPI) GetProfile(ctx context.Context, userID string) (*backend.Profile, error) {
	var p backend.Profile
	if err := d.selectSingle(ctx, "profiles", map[string]string{"user_id": userID}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *databaseAPI) UpdateProfile(ctx context.Context, userID string, params backend.ProfileUpdate) (*backend.Profile, error) {
	var p backend.Profile
	if err := d.updateReturning(ctx, "profiles", map[string]string{"user_id": userID}, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Notes

func (d *databaseAPI) GetNotes(ctx context.Context, userID string) ([]backend.Note, error) {
	notes := []backend.Note{}
	if err := d.selectList(ctx, "notes", map[string]string{"user_id": userID}, "created_at.desc", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *databaseAPI) CreateNote(ctx context.Context, userID string, params backend.NoteParams) (*backend.Note, error) {
	record := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"user_id": userID,
	}
	var n backend.Note
	if err := d.insertReturning(ctx, "notes", record, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (d *databaseAPI) UpdateNote(ctx context.Context, id string, params backend.NoteUpdate) (*backend.Note, error) {
	var n backend.Note
	if err := d.updateReturning(ctx, "notes", map[string]string{"id": id}, params, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (d *databaseAPI) DeleteNote(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "notes", map[string]string{"id": id})
}

// Todos

func (d *databaseAPI) GetTodos(ctx context.Context, userID string) ([]backend.Todo, error) {
	todos := []backend.Todo{}
	if err := d.selectList(ctx, "todos", map[string]string{"user_id": userID}, "created_at.desc", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (d *databaseAPI) CreateTodo(ctx context.Context, userID string, params backend.TodoParams) (*backend.Todo, error) {
	record := map[string]any{
		"task":         params.Task,
		"is_completed": params.IsCompleted,
		"user_id":      userID,
	}
	if params.DueDate != "" {
		record["due_date"] = params.DueDate
	}
	var t backend.Todo
	if err := d.insertReturning(ctx, "todos", record, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *databaseAPI) UpdateTodo(ctx context.Context, id string, params backend.TodoUpdate) (*backend.Todo, error) {
	var t backend.Todo
	if err := d.updateReturning(ctx, "todos", map[string]string{"id": id}, params, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *databaseAPI) DeleteTodo(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "todos", map[string]string{"id": id})
}

// Messages

func (d *databaseAPI) GetMessages(ctx context.Context) ([]backend.Message, error) {
	msgs := []backend.Message{}
	if err := d.selectList(ctx, "messages", nil, "created_at.asc", &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (d *databaseAPI) CreateMessage(ctx context.Context, userID, content string) (*backend.Message, error) {
	record := map[string]any{
		"content": content,
		"user_id": userID,
	}
	var m backend.Message
	if err := d.insertReturning(ctx, "messages", record, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Habits

func (d *databaseAPI) GetHabits(ctx context.Context, userID string) ([]backend.Habit, error) {
	habits := []backend.Habit{}
	if err := d.selectList(ctx, "habits", map[string]string{"user_id": userID}, "created_at.desc", &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (d *databaseAPI) CreateHabit(ctx context.Context, userID string, params backend.HabitParams) (*backend.Habit, error) {
	record := map[string]any{
		"name":      params.Name,
		"frequency": params.Frequency,
		"user_id":   userID,
	}
	if params.Description != "" {
		record["description"] = params.Description
	}
	var h backend.Habit
	if err := d.insertReturning(ctx, "habits", record, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (d *databaseAPI) UpdateHabit(ctx context.Context, id string, params backend.HabitUpdate) (*backend.Habit, error) {
	var h backend.Habit
	if err := d.updateReturning(ctx, "habits", map[string]string{"id": id}, params, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (d *databaseAPI) DeleteHabit(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "habits", map[string]string{"id": id})
}

// Habit logs

func (d *databaseAPI) GetHabitLogs(ctx context.Context, habitID string) ([]backend.HabitLog, error) {
	logs := []backend.HabitLog{}
	if err := d.selectList(ctx, "habit_logs", map[string]string{"habit_id": habitID}, "completed_at.desc", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (d *databaseAPI) CreateHabitLog(ctx context.Context, userID, habitID, notes string) (*backend.HabitLog, error) {
	record := map[string]any{
		"habit_id":     habitID,
		"user_id":      userID,
		"completed_at": time.Now().UTC().Format(time.RFC3339),
	}
	if notes != "" {
		record["notes"] = notes
	}
	var l backend.HabitLog
	if err := d.insertReturning(ctx, "habit_logs", record, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (d *databaseAPI) DeleteHabitLog(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "habit_logs", map[string]string{"id": id})
}

// Events

func (d *databaseAPI) GetEvents(ctx context.Context, userID string) ([]backend.Event, error) {
	events := []backend.Event{}
	if err := d.selectList(ctx, "events", map[string]string{"user_id": userID}, "start_date.asc", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (d *databaseAPI) CreateEvent(ctx context.Context, userID string, params backend.EventParams) (*backend.Event, error) {
	record := map[string]any{
		"title":      params.Title,
		"start_date": params.StartDate,
		"all_day":    params.AllDay,
		"user_id":    userID,
	}
	if params.Description != "" {
		record["description"] = params.Description
	}
	if params.EndDate != "" {
		record["end_date"] = params.EndDate
	}
	var e backend.Event
	if err := d.insertReturning(ctx, "events", record, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *databaseAPI) UpdateEvent(ctx context.Context, id string, params backend.EventUpdate) (*backend.Event, error) {
	var e backend.Event
	if err := d.updateReturning(ctx, "events", map[string]string{"id": id}, params, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *databaseAPI) DeleteEvent(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "events", map[string]string{"id": id})
}

// Expenses

func (d *databaseAPI) GetExpenses(ctx context.Context, userID string) ([]backend.Expense, error) {
	expenses := []backend.Expense{}
	if err := d.selectList(ctx, "expenses", map[string]string{"user_id": userID}, "date.desc", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (d *databaseAPI) CreateExpense(ctx context.Context, userID string, params backend.ExpenseParams) (*backend.Expense, error) {
	record := map[string]any{
		"amount":   params.Amount,
		"category": params.Category,
		"type":     params.Type,
		"date":     params.Date,
		"user_id":  userID,
	}
	if params.Description != "" {
		record["description"] = params.Description
	}
	var e backend.Expense
	if err := d.insertReturning(ctx, "expenses", record, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *databaseAPI) UpdateExpense(ctx context.Context, id string, params backend.ExpenseUpdate) (*backend.Expense, error) {
	var e backend.Expense
	if err := d.updateReturning(ctx, "expenses", map[string]string{"id": id}, params, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *databaseAPI) DeleteExpense(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "expenses", map[string]string{"id": id})
}

// Kanban boards

func (d *databaseAPI) GetBoards(ctx context.Context, userID string) ([]backend.KanbanBoard, error) {
	boards := []backend.KanbanBoard{}
	if err := d.selectList(ctx, "kanban_boards", map[string]string{"user_id": userID}, "created_at.desc", &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (d *databaseAPI) CreateBoard(ctx context.Context, userID string, params backend.BoardParams) (*backend.KanbanBoard, error) {
	record := map[string]any{
		"name":    params.Name,
		"user_id": userID,
	}
	if params.Description != "" {
		record["description"] = params.Description
	}
	var b backend.KanbanBoard
	if err := d.insertReturning(ctx, "kanban_boards", record, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *databaseAPI) UpdateBoard(ctx context.Context, id string, params backend.BoardUpdate) (*backend.KanbanBoard, error) {
	var b backend.KanbanBoard
	if err := d.updateReturning(ctx, "kanban_boards", map[string]string{"id": id}, params, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *databaseAPI) DeleteBoard(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "kanban_boards", map[string]string{"id": id})
}

// Kanban columns

func (d *databaseAPI) GetColumns(ctx context.Context, boardID string) ([]backend.KanbanColumn, error) {
	cols := []backend.KanbanColumn{}
	if err := d.selectList(ctx, "kanban_columns", map[string]string{"board_id": boardID}, "position.asc", &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

func (d *databaseAPI) CreateColumn(ctx context.Context, userID, boardID string, params backend.ColumnParams) (*backend.KanbanColumn, error) {
	record := map[string]any{
		"name":     params.Name,
		"position": params.Position,
		"user_id":  userID,
		"board_id": boardID,
	}
	var col backend.KanbanColumn
	if err := d.insertReturning(ctx, "kanban_columns", record, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (d *databaseAPI) UpdateColumn(ctx context.Context, id string, params backend.ColumnUpdate) (*backend.KanbanColumn, error) {
	var col backend.KanbanColumn
	if err := d.updateReturning(ctx, "kanban_columns", map[string]string{"id": id}, params, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (d *databaseAPI) DeleteColumn(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "kanban_columns", map[string]string{"id": id})
}

// Kanban cards

func (d *databaseAPI) GetCards(ctx context.Context, boardID string) ([]backend.KanbanCard, error) {
	cards := []backend.KanbanCard{}
	if err := d.selectList(ctx, "kanban_cards", map[string]string{"board_id": boardID}, "position.asc", &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (d *databaseAPI) CreateCard(ctx context.Context, userID string, params backend.CardParams) (*backend.KanbanCard, error) {
	record := map[string]any{
		"board_id":  params.BoardID,
		"column_id": params.ColumnID,
		"title":     params.Title,
		"position":  params.Position,
		"user_id":   userID,
	}
	if params.Description != "" {
		record["description"] = params.Description
	}
	var card backend.KanbanCard
	if err := d.insertReturning(ctx, "kanban_cards", record, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (d *databaseAPI) UpdateCard(ctx context.Context, id string, params backend.CardUpdate) (*backend.KanbanCard, error) {
	var card backend.KanbanCard
	if err := d.updateReturning(ctx, "kanban_cards", map[string]string{"id": id}, params, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (d *databaseAPI) DeleteCard(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "kanban_cards", map[string]string{"id": id})
}

// Markdown documents

func (d *databaseAPI) GetMarkdownDocs(ctx context.Context, userID string) ([]backend.MarkdownDocument, error) {
	docs := []backend.MarkdownDocument{}
	if err := d.selectList(ctx, "markdown_docs", map[string]string{"user_id": userID}, "created_at.desc", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *databaseAPI) CreateMarkdownDoc(ctx context.Context, userID string, params backend.MarkdownDocParams) (*backend.MarkdownDocument, error) {
	record := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"user_id": userID,
	}
	var doc backend.MarkdownDocument
	if err := d.insertReturning(ctx, "markdown_docs", record, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *databaseAPI) UpdateMarkdownDoc(ctx context.Context, id string, params backend.MarkdownDocUpdate) (*backend.MarkdownDocument, error) {
	var doc backend.MarkdownDocument
	if err := d.updateReturning(ctx, "markdown_docs", map[string]string{"id": id}, params, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *databaseAPI) DeleteMarkdownDoc(ctx context.Context, id string) error {
	return d.deleteRows(ctx, "markdown_docs", map[string]string{"id": id})
}
