package firebase

import (
	"context"

	"github.com/google/uuid"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// databaseAPI maps contract calls onto Firestore collections. Document ids
// are minted client-side so a create can commit and read back under a known
// name in two round trips.
type databaseAPI struct {
	c *client
}

func fieldStr(f map[string]any, key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

func fieldBool(f map[string]any, key string) bool {
	b, _ := f[key].(bool)
	return b
}

func fieldFloat(f map[string]any, key string) float64 {
	switch t := f[key].(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	}
	return 0
}

func fieldInt(f map[string]any, key string) int {
	switch t := f[key].(type) {
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

// create commits a new document with a server-resolved created_at, then
// reads it back: the write acknowledgement alone never carries the settled
// timestamp.
func (d *databaseAPI) create(ctx context.Context, collection string, fields map[string]any, tsFields []string) (*fsDocument, error) {
	id := uuid.NewString()
	if err := d.c.commitWrite(ctx, collection, id, fields, nil, tsFields); err != nil {
		return nil, err
	}
	return d.c.getDocument(ctx, collection, id)
}

// update commits a masked write and reads the result back, same reasoning
// as create.
func (d *databaseAPI) update(ctx context.Context, collection, id string, fields map[string]any, tsFields []string) (*fsDocument, error) {
	mask := make([]string, 0, len(fields))
	for k := range fields {
		mask = append(mask, k)
	}
	if err := d.c.commitWrite(ctx, collection, id, fields, mask, tsFields); err != nil {
		return nil, err
	}
	return d.c.getDocument(ctx, collection, id)
}

// Profiles

func profileFromDoc(doc fsDocument) backend.Profile {
	f := decodeFields(doc.Fields)
	return backend.Profile{
		ID:        docID(doc.Name),
		UserID:    fieldStr(f, "user_id"),
		FirstName: fieldStr(f, "first_name"),
		LastName:  fieldStr(f, "last_name"),
		CreatedAt: toISO(f["created_at"]),
		UpdatedAt: toISO(f["updated_at"]),
	}
}

func (d *databaseAPI) createProfileDoc(ctx context.Context, userID string) error {
	_, err := d.create(ctx, "profiles", map[string]any{"user_id": userID}, []string{"created_at"})
	return err
}

func (d *databaseAPI) findProfileDoc(ctx context.Context, userID string) (*fsDocument, error) {
	docs, err := d.c.runQuery(ctx, "profiles", "user_id", userID, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, backend.ErrNotFound
	}
	return &docs[0], nil
}

func (d *databaseAPI) GetProfile(ctx context.Context, userID string) (*backend.Profile, error) {
	doc, err := d.findProfileDoc(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := profileFromDoc(*doc)
	return &p, nil
}

func (d *databaseAPI) UpdateProfile(ctx context.Context, userID string, params backend.ProfileUpdate) (*backend.Profile, error) {
	doc, err := d.findProfileDoc(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if params.FirstName != nil {
		fields["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		fields["last_name"] = *params.LastName
	}
	updated, err := d.update(ctx, "profiles", docID(doc.Name), fields, []string{"updated_at"})
	if err != nil {
		return nil, err
	}
	p := profileFromDoc(*updated)
	return &p, nil
}

// Notes

func noteFromDoc(doc fsDocument) backend.Note {
	f := decodeFields(doc.Fields)
	return backend.Note{
		ID:        docID(doc.Name),
		UserID:    fieldStr(f, "user_id"),
		Title:     fieldStr(f, "title"),
		Content:   fieldStr(f, "content"),
		CreatedAt: toISO(f["created_at"]),
		UpdatedAt: toISO(f["updated_at"]),
	}
}

func (d *databaseAPI) GetNotes(ctx context.Context, userID string) ([]backend.Note, error) {
	docs, err := d.c.runQuery(ctx, "notes", "user_id", userID,
		[]queryOrder{{field: "created_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"user_id": userID,
	}
	doc, err := d.create(ctx, "notes", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	n := noteFromDoc(*doc)
	return &n, nil
}

func (d *databaseAPI) UpdateNote(ctx context.Context, id string, params backend.NoteUpdate) (*backend.Note, error) {
	fields := map[string]any{}
	if params.Title != nil {
		fields["title"] = *params.Title
	}
	if params.Content != nil {
		fields["content"] = *params.Content
	}
	doc, err := d.update(ctx, "notes", id, fields, []string{"updated_at"})
	if err != nil {
		return nil, err
	}
	n := noteFromDoc(*doc)
	return &n, nil
}

func (d *databaseAPI) DeleteNote(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "notes", id)
}

// Todos

func todoFromDoc(doc fsDocument) backend.Todo {
	f := decodeFields(doc.Fields)
	return backend.Todo{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		Task:        fieldStr(f, "task"),
		IsCompleted: fieldBool(f, "is_completed"),
		DueDate:     fieldStr(f, "due_date"),
		CreatedAt:   toISO(f["created_at"]),
		UpdatedAt:   toISO(f["updated_at"]),
	}
}

func (d *databaseAPI) GetTodos(ctx context.Context, userID string) ([]backend.Todo, error) {
	docs, err := d.c.runQuery(ctx, "todos", "user_id", userID,
		[]queryOrder{{field: "created_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"task":         params.Task,
		"is_completed": params.IsCompleted,
		"user_id":      userID,
	}
	if params.DueDate != "" {
		fields["due_date"] = params.DueDate
	}
	doc, err := d.create(ctx, "todos", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	t := todoFromDoc(*doc)
	return &t, nil
}

func (d *databaseAPI) UpdateTodo(ctx context.Context, id string, params backend.TodoUpdate) (*backend.Todo, error) {
	fields := map[string]any{}
	if params.Task != nil {
		fields["task"] = *params.Task
	}
	if params.IsCompleted != nil {
		fields["is_completed"] = *params.IsCompleted
	}
	if params.DueDate != nil {
		fields["due_date"] = *params.DueDate
	}
	doc, err := d.update(ctx, "todos", id, fields, []string{"updated_at"})
	if err != nil {
		return nil, err
	}
	t := todoFromDoc(*doc)
	return &t, nil
}

func (d *databaseAPI) DeleteTodo(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "todos", id)
}

// Messages

func messageFromDoc(doc fsDocument) backend.Message {
	f := decodeFields(doc.Fields)
	return backend.Message{
		ID:        docID(doc.Name),
		UserID:    fieldStr(f, "user_id"),
		Content:   fieldStr(f, "content"),
		CreatedAt: toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetMessages(ctx context.Context) ([]backend.Message, error) {
	docs, err := d.c.runQuery(ctx, "messages", "", "",
		[]queryOrder{{field: "created_at", direction: "ASCENDING"}})
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
	fields := map[string]any{
		"content": content,
		"user_id": userID,
	}
	doc, err := d.create(ctx, "messages", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	m := messageFromDoc(*doc)
	return &m, nil
}

// Habits

func habitFromDoc(doc fsDocument) backend.Habit {
	f := decodeFields(doc.Fields)
	return backend.Habit{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		Name:        fieldStr(f, "name"),
		Description: fieldStr(f, "description"),
		Frequency:   fieldStr(f, "frequency"),
		CreatedAt:   toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetHabits(ctx context.Context, userID string) ([]backend.Habit, error) {
	docs, err := d.c.runQuery(ctx, "habits", "user_id", userID,
		[]queryOrder{{field: "created_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"name":      params.Name,
		"frequency": params.Frequency,
		"user_id":   userID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	doc, err := d.create(ctx, "habits", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	h := habitFromDoc(*doc)
	return &h, nil
}

func (d *databaseAPI) UpdateHabit(ctx context.Context, id string, params backend.HabitUpdate) (*backend.Habit, error) {
	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.Frequency != nil {
		fields["frequency"] = *params.Frequency
	}
	doc, err := d.update(ctx, "habits", id, fields, nil)
	if err != nil {
		return nil, err
	}
	h := habitFromDoc(*doc)
	return &h, nil
}

func (d *databaseAPI) DeleteHabit(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "habits", id)
}

// Habit logs

func habitLogFromDoc(doc fsDocument) backend.HabitLog {
	f := decodeFields(doc.Fields)
	return backend.HabitLog{
		ID:          docID(doc.Name),
		HabitID:     fieldStr(f, "habit_id"),
		UserID:      fieldStr(f, "user_id"),
		CompletedAt: toISO(f["completed_at"]),
		Notes:       fieldStr(f, "notes"),
	}
}

func (d *databaseAPI) GetHabitLogs(ctx context.Context, habitID string) ([]backend.HabitLog, error) {
	docs, err := d.c.runQuery(ctx, "habit_logs", "habit_id", habitID,
		[]queryOrder{{field: "completed_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"habit_id": habitID,
		"user_id":  userID,
	}
	if notes != "" {
		fields["notes"] = notes
	}
	doc, err := d.create(ctx, "habit_logs", fields, []string{"completed_at"})
	if err != nil {
		return nil, err
	}
	l := habitLogFromDoc(*doc)
	return &l, nil
}

func (d *databaseAPI) DeleteHabitLog(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "habit_logs", id)
}

// Events

func eventFromDoc(doc fsDocument) backend.Event {
	f := decodeFields(doc.Fields)
	return backend.Event{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		Title:       fieldStr(f, "title"),
		Description: fieldStr(f, "description"),
		StartDate:   fieldStr(f, "start_date"),
		EndDate:     fieldStr(f, "end_date"),
		AllDay:      fieldBool(f, "all_day"),
		CreatedAt:   toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetEvents(ctx context.Context, userID string) ([]backend.Event, error) {
	docs, err := d.c.runQuery(ctx, "events", "user_id", userID,
		[]queryOrder{{field: "start_date", direction: "ASCENDING"}})
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
	fields := map[string]any{
		"title":      params.Title,
		"start_date": params.StartDate,
		"all_day":    params.AllDay,
		"user_id":    userID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	if params.EndDate != "" {
		fields["end_date"] = params.EndDate
	}
	doc, err := d.create(ctx, "events", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	e := eventFromDoc(*doc)
	return &e, nil
}

func (d *databaseAPI) UpdateEvent(ctx context.Context, id string, params backend.EventUpdate) (*backend.Event, error) {
	fields := map[string]any{}
	if params.Title != nil {
		fields["title"] = *params.Title
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.StartDate != nil {
		fields["start_date"] = *params.StartDate
	}
	if params.EndDate != nil {
		fields["end_date"] = *params.EndDate
	}
	if params.AllDay != nil {
		fields["all_day"] = *params.AllDay
	}
	doc, err := d.update(ctx, "events", id, fields, nil)
	if err != nil {
		return nil, err
	}
	e := eventFromDoc(*doc)
	return &e, nil
}

func (d *databaseAPI) DeleteEvent(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "events", id)
}

// Expenses

func expenseFromDoc(doc fsDocument) backend.Expense {
	f := decodeFields(doc.Fields)
	return backend.Expense{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		Amount:      fieldFloat(f, "amount"),
		Category:    fieldStr(f, "category"),
		Description: fieldStr(f, "description"),
		Type:        fieldStr(f, "type"),
		Date:        fieldStr(f, "date"),
		CreatedAt:   toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetExpenses(ctx context.Context, userID string) ([]backend.Expense, error) {
	docs, err := d.c.runQuery(ctx, "expenses", "user_id", userID,
		[]queryOrder{{field: "date", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"amount":   params.Amount,
		"category": params.Category,
		"type":     params.Type,
		"date":     params.Date,
		"user_id":  userID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	doc, err := d.create(ctx, "expenses", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	e := expenseFromDoc(*doc)
	return &e, nil
}

func (d *databaseAPI) UpdateExpense(ctx context.Context, id string, params backend.ExpenseUpdate) (*backend.Expense, error) {
	fields := map[string]any{}
	if params.Amount != nil {
		fields["amount"] = *params.Amount
	}
	if params.Category != nil {
		fields["category"] = *params.Category
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.Type != nil {
		fields["type"] = *params.Type
	}
	if params.Date != nil {
		fields["date"] = *params.Date
	}
	doc, err := d.update(ctx, "expenses", id, fields, nil)
	if err != nil {
		return nil, err
	}
	e := expenseFromDoc(*doc)
	return &e, nil
}

func (d *databaseAPI) DeleteExpense(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "expenses", id)
}

// Kanban boards

func boardFromDoc(doc fsDocument) backend.KanbanBoard {
	f := decodeFields(doc.Fields)
	return backend.KanbanBoard{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		Name:        fieldStr(f, "name"),
		Description: fieldStr(f, "description"),
		CreatedAt:   toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetBoards(ctx context.Context, userID string) ([]backend.KanbanBoard, error) {
	docs, err := d.c.runQuery(ctx, "kanban_boards", "user_id", userID,
		[]queryOrder{{field: "created_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"name":    params.Name,
		"user_id": userID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	doc, err := d.create(ctx, "kanban_boards", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	b := boardFromDoc(*doc)
	return &b, nil
}

func (d *databaseAPI) UpdateBoard(ctx context.Context, id string, params backend.BoardUpdate) (*backend.KanbanBoard, error) {
	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	doc, err := d.update(ctx, "kanban_boards", id, fields, nil)
	if err != nil {
		return nil, err
	}
	b := boardFromDoc(*doc)
	return &b, nil
}

func (d *databaseAPI) DeleteBoard(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "kanban_boards", id)
}

// Kanban columns

func columnFromDoc(doc fsDocument) backend.KanbanColumn {
	f := decodeFields(doc.Fields)
	return backend.KanbanColumn{
		ID:        docID(doc.Name),
		UserID:    fieldStr(f, "user_id"),
		BoardID:   fieldStr(f, "board_id"),
		Name:      fieldStr(f, "name"),
		Position:  fieldInt(f, "position"),
		CreatedAt: toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetColumns(ctx context.Context, boardID string) ([]backend.KanbanColumn, error) {
	docs, err := d.c.runQuery(ctx, "kanban_columns", "board_id", boardID,
		[]queryOrder{{field: "position", direction: "ASCENDING"}})
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
	fields := map[string]any{
		"name":     params.Name,
		"position": params.Position,
		"user_id":  userID,
		"board_id": boardID,
	}
	doc, err := d.create(ctx, "kanban_columns", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	col := columnFromDoc(*doc)
	return &col, nil
}

func (d *databaseAPI) UpdateColumn(ctx context.Context, id string, params backend.ColumnUpdate) (*backend.KanbanColumn, error) {
	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Position != nil {
		fields["position"] = *params.Position
	}
	doc, err := d.update(ctx, "kanban_columns", id, fields, nil)
	if err != nil {
		return nil, err
	}
	col := columnFromDoc(*doc)
	return &col, nil
}

func (d *databaseAPI) DeleteColumn(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "kanban_columns", id)
}

// Kanban cards

func cardFromDoc(doc fsDocument) backend.KanbanCard {
	f := decodeFields(doc.Fields)
	return backend.KanbanCard{
		ID:          docID(doc.Name),
		UserID:      fieldStr(f, "user_id"),
		BoardID:     fieldStr(f, "board_id"),
		ColumnID:    fieldStr(f, "column_id"),
		Title:       fieldStr(f, "title"),
		Description: fieldStr(f, "description"),
		Position:    fieldInt(f, "position"),
		CreatedAt:   toISO(f["created_at"]),
	}
}

func (d *databaseAPI) GetCards(ctx context.Context, boardID string) ([]backend.KanbanCard, error) {
	docs, err := d.c.runQuery(ctx, "kanban_cards", "board_id", boardID,
		[]queryOrder{{field: "position", direction: "ASCENDING"}})
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
	fields := map[string]any{
		"board_id":  params.BoardID,
		"column_id": params.ColumnID,
		"title":     params.Title,
		"position":  params.Position,
		"user_id":   userID,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	doc, err := d.create(ctx, "kanban_cards", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	card := cardFromDoc(*doc)
	return &card, nil
}

func (d *databaseAPI) UpdateCard(ctx context.Context, id string, params backend.CardUpdate) (*backend.KanbanCard, error) {
	fields := map[string]any{}
	if params.ColumnID != nil {
		fields["column_id"] = *params.ColumnID
	}
	if params.Title != nil {
		fields["title"] = *params.Title
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.Position != nil {
		fields["position"] = *params.Position
	}
	doc, err := d.update(ctx, "kanban_cards", id, fields, nil)
	if err != nil {
		return nil, err
	}
	card := cardFromDoc(*doc)
	return &card, nil
}

func (d *databaseAPI) DeleteCard(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "kanban_cards", id)
}

// Markdown documents

func markdownFromDoc(doc fsDocument) backend.MarkdownDocument {
	f := decodeFields(doc.Fields)
	return backend.MarkdownDocument{
		ID:        docID(doc.Name),
		UserID:    fieldStr(f, "user_id"),
		Title:     fieldStr(f, "title"),
		Content:   fieldStr(f, "content"),
		CreatedAt: toISO(f["created_at"]),
		UpdatedAt: toISO(f["updated_at"]),
	}
}

func (d *databaseAPI) GetMarkdownDocs(ctx context.Context, userID string) ([]backend.MarkdownDocument, error) {
	docs, err := d.c.runQuery(ctx, "markdown_docs", "user_id", userID,
		[]queryOrder{{field: "created_at", direction: "DESCENDING"}})
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
	fields := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"user_id": userID,
	}
	doc, err := d.create(ctx, "markdown_docs", fields, []string{"created_at"})
	if err != nil {
		return nil, err
	}
	m := markdownFromDoc(*doc)
	return &m, nil
}

func (d *databaseAPI) UpdateMarkdownDoc(ctx context.Context, id string, params backend.MarkdownDocUpdate) (*backend.MarkdownDocument, error) {
	fields := map[string]any{}
	if params.Title != nil {
		fields["title"] = *params.Title
	}
	if params.Content != nil {
		fields["content"] = *params.Content
	}
	doc, err := d.update(ctx, "markdown_docs", id, fields, []string{"updated_at"})
	if err != nil {
		return nil, err
	}
	m := markdownFromDoc(*doc)
	return &m, nil
}

func (d *databaseAPI) DeleteMarkdownDoc(ctx context.Context, id string) error {
	return d.c.deleteDocument(ctx, "markdown_docs", id)
}
