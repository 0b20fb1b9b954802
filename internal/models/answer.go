package models

import "fmt"

// Answer kinds, matching what the presentation layer can render.
const (
	AnswerTable = "table"
	AnswerText  = "text"
	AnswerError = "error"
)

type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Answer is the single result type every query handler returns. Exactly one
// of Table, Content or Message is meaningful, selected by Kind.
type Answer struct {
	Kind    string
	Title   string
	Table   *Table
	Content string
	Message string
}

func NewTableAnswer(title string, table *Table) *Answer {
	return &Answer{Kind: AnswerTable, Title: title, Table: table}
}

func NewTextAnswer(content string) *Answer {
	return &Answer{Kind: AnswerText, Content: content}
}

func NewErrorAnswer(format string, args ...any) *Answer {
	return &Answer{Kind: AnswerError, Message: fmt.Sprintf(format, args...)}
}
