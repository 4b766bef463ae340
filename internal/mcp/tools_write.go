package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/quill/internal/diary"
)

// WriteInput is the input for the write_entry tool.
type WriteInput struct {
	Date      string   `json:"date,omitempty"       jsonschema:"day of the entry as DD/MM/YY or today (default today); future dates are rejected"`
	Mood      string   `json:"mood,omitempty"       jsonschema:"mood marker such as emocode, a menu number 1-7, or a feeling word such as tired"`
	Body      string   `json:"body"                 jsonschema:"entry text (required)"`
	SideNotes []string `json:"side_notes,omitempty" jsonschema:"up to two short notes shown in boxes below the body"`
}

// WriteOutput is the output for the write_entry tool.
type WriteOutput struct {
	Path  string `json:"path"  jsonschema:"monthly file the entry was written to"`
	Date  string `json:"date"  jsonschema:"entry date as DD/MM/YY"`
	Day   string `json:"day"   jsonschema:"weekday name"`
	Mood  string `json:"mood"  jsonschema:"mood marker stored"`
	Emoji string `json:"emoji" jsonschema:"mood emoji"`
}

func handleWriteEntry(deps Deps) mcp.ToolHandlerFor[WriteInput, WriteOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input WriteInput) (*mcp.CallToolResult, WriteOutput, error) {
		if strings.TrimSpace(input.Body) == "" {
			return nil, WriteOutput{}, errors.New("body is required")
		}

		date, err := diary.ParseDate(input.Date, deps.now())
		if err != nil {
			return nil, WriteOutput{}, err
		}

		entry, err := diary.NewEntry(date, diary.MoodForFeeling(input.Mood), input.Body, input.SideNotes...)
		if err != nil {
			return nil, WriteOutput{}, err
		}

		path, err := deps.Store.AppendEntry(entry)
		if err != nil {
			return nil, WriteOutput{}, fmt.Errorf("writing entry: %w", err)
		}

		return nil, WriteOutput{
			Path:  path,
			Date:  entry.DateText(),
			Day:   entry.DayName,
			Mood:  string(entry.Mood),
			Emoji: entry.Mood.Symbol(),
		}, nil
	}
}
