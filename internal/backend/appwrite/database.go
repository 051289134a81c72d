package appwrite

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// databaseAPI maps contract calls onto Appwrite collections. Appwrite has no
// server-side timestamp defaults for custom attributes, so created_at and
// updated_at are set client-side at write time, which also keeps them
// orderable by the query DSL.
type databaseAPI struct {
	c *client
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

type documentList struct {
	Total     int              `json:"total"`
	Documents []map[string]any `json:"documents"`
}

func (d *databaseAPI) collectionPath(collection string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", d.c.databaseID, collection)
}

func (d *databaseAPI) listDocuments(ctx context.Context, collection string, queries []string) ([]map[string]any, error) {
	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q)
	}
	var list documentList
	if err := d.c.do(ctx, http.MethodGet, d.collectionPath(collection), params, nil, &list); err != nil {
		return nil, err
	}
	return list.Documents, nil
}

func (d *databaseAPI) createDocument(ctx context.Context, collection string, data map[string]any) (map[string]any, error) {
	body := map[string]any{"documentId": "unique()", "data": data}
	var doc map[string]any
	if err := d.c.do(ctx, http.MethodPost, d.collectionPath(collection), nil, body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *databaseAPI) updateDocument(ctx context.Context, collection, id string, data map[string]any) (map[string]any, error) {
	body := map[string]any{"data": data}
	var doc map[string]any
	if err := d.c.do(ctx, http.MethodPatch, d.collectionPath(collection)+"/"+id, nil, body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *databaseAPI) deleteDocument(ctx context.Context, collection, id string) error {
	return d.c.do(ctx, http.MethodDelete, d.collectionPath(collection)+"/"+id, nil, nil, nil)
}

func docStr(doc map[string]any, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func docBool(doc map[string]any, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docFloat(doc map[string]any, key string) float64 {
	f, _ := doc[key].(float64)
	return f
}

func docInt(doc map[string]any, key string) int {
	f, _ := doc[key].(float64)
	return int(f)
}

// Profiles

func profileFromDoc(doc map[string]any) backend.Profile {
	return backend.Profile{
		ID:        docStr(doc, "$id"),
		UserID:    docStr(doc, "user_id"),
		FirstName: docStr(doc, "first_name"),
		LastName:  docStr(doc, "last_name"),
		CreatedAt: docStr(doc, "created_at"),
		UpdatedAt: docStr(doc, "updated_at"),
	}
}

func (d *databaseAPI) createProfileDoc(ctx context.Context, userID string) error {
	_, err := d.createDocument(ctx, "profiles", map[string]any{
		"user_id":    userID,
		"created_at": nowISO(),
	})
	return err
}

func (d *databaseAPI) findProfileDoc(ctx context.Context, userID string) (map[string]any, error) {
	docs, err := d.listDocuments(ctx, "profiles", []string{queryEqual("user_id", userID)})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, backend.ErrNotFound
	}
	return docs[0], nil
}

func (d *databaseAPI) GetProfile(ctx context.Context, userID string) (*backend.Profile, error) {
	doc, err := d.findProfileDoc(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := profileFromDoc(doc)
	return &p, nil
}

func (d *databaseAPI) UpdateProfile(ctx context.Context, userID string, params backend.ProfileUpdate) (*backend.Profile, error) {
	doc, err := d.findProfileDoc(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{"updated_at": nowISO()}
	if params.FirstName != nil {
		data["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		data["last_name"] = *params.LastName
	}
	updated, err := d.updateDocument(ctx, "profiles", docStr(doc, "$id"), data)
	if err != nil {
		return nil, err
	}
	p := profileFromDoc(updated)
	return &p, nil
}

// Notes

func noteFromDoc(doc map[string]any) backend.Note {
	return backend.Note{
		ID:        docStr(doc, "$id"),
		UserID:    docStr(doc, "user_id"),
		Title:     docStr(doc, "title"),
		Content:   docStr(doc, "content"),
		CreatedAt: docStr(doc, "created_at"),
		UpdatedAt: docStr(doc, "updated_at"),
	}
}

func (d *databaseAPI) GetNotes(ctx context.Context, userID string) ([]backend.Note, error) {
	docs, err := d.listDocuments(ctx, "notes",
		[]string{queryEqual("user_id", userID), queryOrderDesc("created_at")})
	if err != nil {
		return nil, err
	}
	notes := make([]backend.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, noteFromDoc(doc))
	}
	return notes, nil
}

func (d *databaseAPI) CreateNote(ctx context.Context, userID string, params backend.NoteParams) (*backend.Note, error) {
	doc, err := d.createDocument(ctx, "notes", map[string]any{
		"title":      params.Title,
		"content":    params.Content,
		"user_id":    userID,
		"created_at": nowISO(),
	})
	if err != nil {
		return nil, err
	}
	n := noteFromDoc(doc)
	return &n, nil
}

func (d *databaseAPI) UpdateNote(ctx context.Context, id string, params backend.NoteUpdate) (*backend.Note, error) {
	data := map[string]any{"updated_at": nowISO()}
	if params.Title != nil {
		data["title"] = *params.Title
	}
	if params.Content != nil {
		data["content"] = *params.Content
	}
	doc, err := d.updateDocument(ctx, "notes", id, data)
	if err != nil {
		return nil, err
	}
	n := noteFromDoc(doc)
	return &n, nil
}

func (d *databaseAPI) DeleteNote(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "notes", id)
}

// Todos

func todoFromDoc(doc map[string]any) backend.Todo {
	return backend.Todo{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		Task:        docStr(doc, "task"),
		IsCompleted: docBool(doc, "is_completed"),
		DueDate:     docStr(doc, "due_date"),
		CreatedAt:   docStr(doc, "created_at"),
		UpdatedAt:   docStr(doc, "updated_at"),
	}
}

func (d *databaseAPI) GetTodos(ctx context.Context, userID string) ([]backend.Todo, error) {
	docs, err := d.listDocuments(ctx, "todos",
		[]string{queryEqual("user_id", userID), queryOrderDesc("created_at")})
	if err != nil {
		return nil, err
	}
	todos := make([]backend.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, todoFromDoc(doc))
	}
	return todos, nil
}

func (d *databaseAPI) CreateTodo(ctx context.Context, userID string, params backend.TodoParams) (*backend.Todo, error) {
	data := map[string]any{
		"task":         params.Task,
		"is_completed": params.IsCompleted,
		"user_id":      userID,
		"created_at":   nowISO(),
	}
	if params.DueDate != "" {
		data["due_date"] = params.DueDate
	}
	doc, err := d.createDocument(ctx, "todos", data)
	if err != nil {
		return nil, err
	}
	t := todoFromDoc(doc)
	return &t, nil
}

func (d *databaseAPI) UpdateTodo(ctx context.Context, id string, params backend.TodoUpdate) (*backend.Todo, error) {
	data := map[string]any{"updated_at": nowISO()}
	if params.Task != nil {
		data["task"] = *params.Task
	}
	if params.IsCompleted != nil {
		data["is_completed"] = *params.IsCompleted
	}
	if params.DueDate != nil {
		data["due_date"] = *params.DueDate
	}
	doc, err := d.updateDocument(ctx, "todos", id, data)
	if err != nil {
		return nil, err
	}
	t := todoFromDoc(doc)
	return &t, nil
}

func (d *databaseAPI) DeleteTodo(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "todos", id)
}

// Messages

func messageFromDoc(doc map[string]any) backend.Message {
	return backend.Message{
		ID:        docStr(doc, "$id"),
		UserID:    docStr(doc, "user_id"),
		Content:   docStr(doc, "content"),
		CreatedAt: docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetMessages(ctx context.Context) ([]backend.Message, error) {
	docs, err := d.listDocuments(ctx, "messages", []string{queryOrderAsc("created_at")})
	if err != nil {
		return nil, err
	}
	msgs := make([]backend.Message, 0, len(docs))
	for _, doc := range docs {
		msgs = append(msgs, messageFromDoc(doc))
	}
	return msgs, nil
}

func (d *databaseAPI) CreateMessage(ctx context.Context, userID, content string) (*backend.Message, error) {
	doc, err := d.createDocument(ctx, "messages", map[string]any{
		"content":    content,
		"user_id":    userID,
		"created_at": nowISO(),
	})
	if err != nil {
		return nil, err
	}
	m := messageFromDoc(doc)
	return &m, nil
}

// Habits

func habitFromDoc(doc map[string]any) backend.Habit {
	return backend.Habit{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		Name:        docStr(doc, "name"),
		Description: docStr(doc, "description"),
		Frequency:   docStr(doc, "frequency"),
		CreatedAt:   docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetHabits(ctx context.Context, userID string) ([]backend.Habit, error) {
	docs, err := d.listDocuments(ctx, "habits",
		[]string{queryEqual("user_id", userID), queryOrderDesc("created_at")})
	if err != nil {
		return nil, err
	}
	habits := make([]backend.Habit, 0, len(docs))
	for _, doc := range docs {
		habits = append(habits, habitFromDoc(doc))
	}
	return habits, nil
}

func (d *databaseAPI) CreateHabit(ctx context.Context, userID string, params backend.HabitParams) (*backend.Habit, error) {
	data := map[string]any{
		"name":       params.Name,
		"frequency":  params.Frequency,
		"user_id":    userID,
		"created_at": nowISO(),
	}
	if params.Description != "" {
		data["description"] = params.Description
	}
	doc, err := d.createDocument(ctx, "habits", data)
	if err != nil {
		return nil, err
	}
	h := habitFromDoc(doc)
	return &h, nil
}

func (d *databaseAPI) UpdateHabit(ctx context.Context, id string, params backend.HabitUpdate) (*backend.Habit, error) {
	data := map[string]any{}
	if params.Name != nil {
		data["name"] = *params.Name
	}
	if params.Description != nil {
		data["description"] = *params.Description
	}
	if params.Frequency != nil {
		data["frequency"] = *params.Frequency
	}
	doc, err := d.updateDocument(ctx, "habits", id, data)
	if err != nil {
		return nil, err
	}
	h := habitFromDoc(doc)
	return &h, nil
}

func (d *databaseAPI) DeleteHabit(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "habits", id)
}

// Habit logs

func habitLogFromDoc(doc map[string]any) backend.HabitLog {
	return backend.HabitLog{
		ID:          docStr(doc, "$id"),
		HabitID:     docStr(doc, "habit_id"),
		UserID:      docStr(doc, "user_id"),
		CompletedAt: docStr(doc, "completed_at"),
		Notes:       docStr(doc, "notes"),
	}
}

func (d *databaseAPI) GetHabitLogs(ctx context.Context, habitID string) ([]backend.HabitLog, error) {
	docs, err := d.listDocuments(ctx, "habit_logs",
		[]string{queryEqual("habit_id", habitID), queryOrderDesc("completed_at")})
	if err != nil {
		return nil, err
	}
	logs := make([]backend.HabitLog, 0, len(docs))
	for _, doc := range docs {
		logs = append(logs, habitLogFromDoc(doc))
	}
	return logs, nil
}

func (d *databaseAPI) CreateHabitLog(ctx context.Context, userID, habitID, notes string) (*backend.HabitLog, error) {
	data := map[string]any{
		"habit_id":     habitID,
		"user_id":      userID,
		"completed_at": nowISO(),
	}
	if notes != "" {
		data["notes"] = notes
	}
	doc, err := d.createDocument(ctx, "habit_logs", data)
	if err != nil {
		return nil, err
	}
	l := habitLogFromDoc(doc)
	return &l, nil
}

func (d *databaseAPI) DeleteHabitLog(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "habit_logs", id)
}

// Events

func eventFromDoc(doc map[string]any) backend.Event {
	return backend.Event{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		Title:       docStr(doc, "title"),
		Description: docStr(doc, "description"),
		StartDate:   docStr(doc, "start_date"),
		EndDate:     docStr(doc, "end_date"),
		AllDay:      docBool(doc, "all_day"),
		CreatedAt:   docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetEvents(ctx context.Context, userID string) ([]backend.Event, error) {
	docs, err := d.listDocuments(ctx, "events",
		[]string{queryEqual("user_id", userID), queryOrderAsc("start_date")})
	if err != nil {
		return nil, err
	}
	events := make([]backend.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, eventFromDoc(doc))
	}
	return events, nil
}

func (d *databaseAPI) CreateEvent(ctx context.Context, userID string, params backend.EventParams) (*backend.Event, error) {
	data := map[string]any{
		"title":      params.Title,
		"start_date": params.StartDate,
		"all_day":    params.AllDay,
		"user_id":    userID,
		"created_at": nowISO(),
	}
	if params.Description != "" {
		data["description"] = params.Description
	}
	if params.EndDate != "" {
		data["end_date"] = params.EndDate
	}
	doc, err := d.createDocument(ctx, "events", data)
	if err != nil {
		return nil, err
	}
	e := eventFromDoc(doc)
	return &e, nil
}

func (d *databaseAPI) UpdateEvent(ctx context.Context, id string, params backend.EventUpdate) (*backend.Event, error) {
	data := map[string]any{}
	if params.Title != nil {
		data["title"] = *params.Title
	}
	if params.Description != nil {
		data["description"] = *params.Description
	}
	if params.StartDate != nil {
		data["start_date"] = *params.StartDate
	}
	if params.EndDate != nil {
		data["end_date"] = *params.EndDate
	}
	if params.AllDay != nil {
		data["all_day"] = *params.AllDay
	}
	doc, err := d.updateDocument(ctx, "events", id, data)
	if err != nil {
		return nil, err
	}
	e := eventFromDoc(doc)
	return &e, nil
}

func (d *databaseAPI) DeleteEvent(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "events", id)
}

// Expenses

func expenseFromDoc(doc map[string]any) backend.Expense {
	return backend.Expense{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		Amount:      docFloat(doc, "amount"),
		Category:    docStr(doc, "category"),
		Description: docStr(doc, "description"),
		Type:        docStr(doc, "type"),
		Date:        docStr(doc, "date"),
		CreatedAt:   docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetExpenses(ctx context.Context, userID string) ([]backend.Expense, error) {
	docs, err := d.listDocuments(ctx, "expenses",
		[]string{queryEqual("user_id", userID), queryOrderDesc("date")})
	if err != nil {
		return nil, err
	}
	expenses := make([]backend.Expense, 0, len(docs))
	for _, doc := range docs {
		expenses = append(expenses, expenseFromDoc(doc))
	}
	return expenses, nil
}

func (d *databaseAPI) CreateExpense(ctx context.Context, userID string, params backend.ExpenseParams) (*backend.Expense, error) {
	data := map[string]any{
		"amount":     params.Amount,
		"category":   params.Category,
		"type":       params.Type,
		"date":       params.Date,
		"user_id":    userID,
		"created_at": nowISO(),
	}
	if params.Description != "" {
		data["description"] = params.Description
	}
	doc, err := d.createDocument(ctx, "expenses", data)
	if err != nil {
		return nil, err
	}
	e := expenseFromDoc(doc)
	return &e, nil
}

func (d *databaseAPI) UpdateExpense(ctx context.Context, id string, params backend.ExpenseUpdate) (*backend.Expense, error) {
	data := map[string]any{}
	if params.Amount != nil {
		data["amount"] = *params.Amount
	}
	if params.Category != nil {
		data["category"] = *params.Category
	}
	if params.Description != nil {
		data["description"] = *params.Description
	}
	if params.Type != nil {
		data["type"] = *params.Type
	}
	if params.Date != nil {
		data["date"] = *params.Date
	}
	doc, err := d.updateDocument(ctx, "expenses", id, data)
	if err != nil {
		return nil, err
	}
	e := expenseFromDoc(doc)
	return &e, nil
}

func (d *databaseAPI) DeleteExpense(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "expenses", id)
}

// Kanban boards

func boardFromDoc(doc map[string]any) backend.KanbanBoard {
	return backend.KanbanBoard{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		Name:        docStr(doc, "name"),
		Description: docStr(doc, "description"),
		CreatedAt:   docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetBoards(ctx context.Context, userID string) ([]backend.KanbanBoard, error) {
	docs, err := d.listDocuments(ctx, "kanban_boards",
		[]string{queryEqual("user_id", userID), queryOrderDesc("created_at")})
	if err != nil {
		return nil, err
	}
	boards := make([]backend.KanbanBoard, 0, len(docs))
	for _, doc := range docs {
		boards = append(boards, boardFromDoc(doc))
	}
	return boards, nil
}

func (d *databaseAPI) CreateBoard(ctx context.Context, userID string, params backend.BoardParams) (*backend.KanbanBoard, error) {
	data := map[string]any{
		"name":       params.Name,
		"user_id":    userID,
		"created_at": nowISO(),
	}
	if params.Description != "" {
		data["description"] = params.Description
	}
	doc, err := d.createDocument(ctx, "kanban_boards", data)
	if err != nil {
		return nil, err
	}
	b := boardFromDoc(doc)
	return &b, nil
}

func (d *databaseAPI) UpdateBoard(ctx context.Context, id string, params backend.BoardUpdate) (*backend.KanbanBoard, error) {
	data := map[string]any{}
	if params.Name != nil {
		data["name"] = *params.Name
	}
	if params.Description != nil {
		data["description"] = *params.Description
	}
	doc, err := d.updateDocument(ctx, "kanban_boards", id, data)
	if err != nil {
		return nil, err
	}
	b := boardFromDoc(doc)
	return &b, nil
}

func (d *databaseAPI) DeleteBoard(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "kanban_boards", id)
}

// Kanban columns

func columnFromDoc(doc map[string]any) backend.KanbanColumn {
	return backend.KanbanColumn{
		ID:        docStr(doc, "$id"),
		UserID:    docStr(doc, "user_id"),
		BoardID:   docStr(doc, "board_id"),
		Name:      docStr(doc, "name"),
		Position:  docInt(doc, "position"),
		CreatedAt: docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetColumns(ctx context.Context, boardID string) ([]backend.KanbanColumn, error) {
	docs, err := d.listDocuments(ctx, "kanban_columns",
		[]string{queryEqual("board_id", boardID), queryOrderAsc("position")})
	if err != nil {
		return nil, err
	}
	cols := make([]backend.KanbanColumn, 0, len(docs))
	for _, doc := range docs {
		cols = append(cols, columnFromDoc(doc))
	}
	return cols, nil
}

func (d *databaseAPI) CreateColumn(ctx context.Context, userID, boardID string, params backend.ColumnParams) (*backend.KanbanColumn, error) {
	doc, err := d.createDocument(ctx, "kanban_columns", map[string]any{
		"name":       params.Name,
		"position":   params.Position,
		"user_id":    userID,
		"board_id":   boardID,
		"created_at": nowISO(),
	})
	if err != nil {
		return nil, err
	}
	col := columnFromDoc(doc)
	return &col, nil
}

func (d *databaseAPI) UpdateColumn(ctx context.Context, id string, params backend.ColumnUpdate) (*backend.KanbanColumn, error) {
	data := map[string]any{}
	if params.Name != nil {
		data["name"] = *params.Name
	}
	if params.Position != nil {
		data["position"] = *params.Position
	}
	doc, err := d.updateDocument(ctx, "kanban_columns", id, data)
	if err != nil {
		return nil, err
	}
	col := columnFromDoc(doc)
	return &col, nil
}

func (d *databaseAPI) DeleteColumn(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "kanban_columns", id)
}

// Kanban cards

func cardFromDoc(doc map[string]any) backend.KanbanCard {
	return backend.KanbanCard{
		ID:          docStr(doc, "$id"),
		UserID:      docStr(doc, "user_id"),
		BoardID:     docStr(doc, "board_id"),
		ColumnID:    docStr(doc, "column_id"),
		Title:       docStr(doc, "title"),
		Description: docStr(doc, "description"),
		Position:    docInt(doc, "position"),
		CreatedAt:   docStr(doc, "created_at"),
	}
}

func (d *databaseAPI) GetCards(ctx context.Context, boardID string) ([]backend.KanbanCard, error) {
	docs, err := d.listDocuments(ctx, "kanban_cards",
		[]string{queryEqual("board_id", boardID), queryOrderAsc("position")})
	if err != nil {
		return nil, err
	}
	cards := make([]backend.KanbanCard, 0, len(docs))
	for _, doc := range docs {
		cards = append(cards, cardFromDoc(doc))
	}
	return cards, nil
}

func (d *databaseAPI) CreateCard(ctx context.Context, userID string, params backend.CardParams) (*backend.KanbanCard, error) {
	data := map[string]any{
		"board_id":   params.BoardID,
		"column_id":  params.ColumnID,
		"title":      params.Title,
		"position":   params.Position,
		"user_id":    userID,
		"created_at": nowISO(),
	}
	if params.Description != "" {
		data["description"] = params.Description
	}
	doc, err := d.createDocument(ctx, "kanban_cards", data)
	if err != nil {
		return nil, err
	}
	card := cardFromDoc(doc)
	return &card, nil
}

func (d *databaseAPI) UpdateCard(ctx context.Context, id string, params backend.CardUpdate) (*backend.KanbanCard, error) {
	data := map[string]any{}
	if params.ColumnID != nil {
		data["column_id"] = *params.ColumnID
	}
	if params.Title != nil {
		data["title"] = *params.Title
	}
	if params.Description != nil {
		data["description"] = *params.Description
	}
	if params.Position != nil {
		data["position"] = *params.Position
	}
	doc, err := d.updateDocument(ctx, "kanban_cards", id, data)
	if err != nil {
		return nil, err
	}
	card := cardFromDoc(doc)
	return &card, nil
}

func (d *databaseAPI) DeleteCard(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "kanban_cards", id)
}

// Markdown documents

func markdownFromDoc(doc map[string]any) backend.MarkdownDocument {
	return backend.MarkdownDocument{
		ID:        docStr(doc, "$id"),
		UserID:    docStr(doc, "user_id"),
		Title:     docStr(doc, "title"),
		Content:   docStr(doc, "content"),
		CreatedAt: docStr(doc, "created_at"),
		UpdatedAt: docStr(doc, "updated_at"),
	}
}

func (d *databaseAPI) GetMarkdownDocs(ctx context.Context, userID string) ([]backend.MarkdownDocument, error) {
	docs, err := d.listDocuments(ctx, "markdown_docs",
		[]string{queryEqual("user_id", userID), queryOrderDesc("created_at")})
	if err != nil {
		return nil, err
	}
	out := make([]backend.MarkdownDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, markdownFromDoc(doc))
	}
	return out, nil
}

func (d *databaseAPI) CreateMarkdownDoc(ctx context.Context, userID string, params backend.MarkdownDocParams) (*backend.MarkdownDocument, error) {
	doc, err := d.createDocument(ctx, "markdown_docs", map[string]any{
		"title":      params.Title,
		"content":    params.Content,
		"user_id":    userID,
		"created_at": nowISO(),
	})
	if err != nil {
		return nil, err
	}
	m := markdownFromDoc(doc)
	return &m, nil
}

func (d *databaseAPI) UpdateMarkdownDoc(ctx context.Context, id string, params backend.MarkdownDocUpdate) (*backend.MarkdownDocument, error) {
	data := map[string]any{"updated_at": nowISO()}
	if params.Title != nil {
		data["title"] = *params.Title
	}
	if params.Content != nil {
		data["content"] = *params.Content
	}
	doc, err := d.updateDocument(ctx, "markdown_docs", id, data)
	if err != nil {
		return nil, err
	}
	m := markdownFromDoc(doc)
	return &m, nil
}

func (d *databaseAPI) DeleteMarkdownDoc(ctx context.Context, id string) error {
	return d.deleteDocument(ctx, "markdown_docs", id)
}
