package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/search"
)

// --- find_entries ---

// FindInput is the input for the find_entries tool.
type FindInput struct {
	Date string `json:"date" jsonschema:"day to look up as DD/MM/YY, or today"`
}

// FindOutput is the output for the find_entries tool.
type FindOutput struct {
	Date    string          `json:"date"    jsonschema:"the day searched, as DD/MM/YY"`
	Count   int             `json:"count"   jsonschema:"number of entries found"`
	Entries []search.Result `json:"entries" jsonschema:"matching entries in file order"`
}

func handleFindEntries(deps Deps) mcp.ToolHandlerFor[FindInput, FindOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
		date, err := diary.ParseDateText(input.Date, deps.now())
		if err != nil {
			return nil, FindOutput{}, err
		}

		results, err := deps.Search.FindByDate(date)
		if err != nil {
			return nil, FindOutput{}, fmt.Errorf("searching entries: %w", err)
		}
		if results == nil {
			results = []search.Result{}
		}

		return nil, FindOutput{
			Date:    date.Format(diary.DateLayout),
			Count:   len(results),
			Entries: results,
		}, nil
	}
}

// --- list_partitions ---

// PartitionsInput is the input for the list_partitions tool (no parameters).
type PartitionsInput struct{}

// PartitionInfo describes one monthly file.
type PartitionInfo struct {
	Year  int    `json:"year"  jsonschema:"calendar year"`
	Month string `json:"month" jsonschema:"month name"`
	Name  string `json:"name"  jsonschema:"file name"`
	Path  string `json:"path"  jsonschema:"absolute file path"`
}

// PartitionsOutput is the output for the list_partitions tool.
type PartitionsOutput struct {
	Root       string          `json:"root"       jsonschema:"diary root directory"`
	Partitions []PartitionInfo `json:"partitions" jsonschema:"monthly files, oldest first"`
}

func handleListPartitions(deps Deps) mcp.ToolHandlerFor[PartitionsInput, PartitionsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ PartitionsInput) (*mcp.CallToolResult, PartitionsOutput, error) {
		cat := deps.Store.Catalog()
		parts, err := cat.ListPartitionsChronological()
		if err != nil {
			return nil, PartitionsOutput{}, fmt.Errorf("listing partitions: %w", err)
		}

		out := PartitionsOutput{Root: cat.Root(), Partitions: make([]PartitionInfo, 0, len(parts))}
		for _, p := range parts {
			out.Partitions = append(out.Partitions, PartitionInfo{
				Year:  p.Year,
				Month: p.Month.String(),
				Name:  p.Name(),
				Path:  p.Path,
			})
		}
		return nil, out, nil
	}
}

// --- list_moods ---

// MoodsInput is the input for the list_moods tool (no parameters).
type MoodsInput struct{}

// MoodInfo describes one mood marker.
type MoodInfo struct {
	Number   int      `json:"number"   jsonschema:"menu number accepted as a feeling"`
	Marker   string   `json:"marker"   jsonschema:"LaTeX macro name"`
	Emoji    string   `json:"emoji"    jsonschema:"display emoji"`
	Keywords []string `json:"keywords" jsonschema:"feeling words that select this mood"`
}

// MoodsOutput is the output for the list_moods tool.
type MoodsOutput struct {
	Default string     `json:"default" jsonschema:"marker used when none matches"`
	Moods   []MoodInfo `json:"moods"   jsonschema:"available moods in menu order"`
}

func handleListMoods() mcp.ToolHandlerFor[MoodsInput, MoodsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ MoodsInput) (*mcp.CallToolResult, MoodsOutput, error) {
		out := MoodsOutput{Default: string(diary.DefaultMood)}
		for i, m := range diary.Moods {
			out.Moods = append(out.Moods, MoodInfo{
				Number:   i + 1,
				Marker:   string(m),
				Emoji:    m.Symbol(),
				Keywords: m.Keywords(),
			})
		}
		return nil, out, nil
	}
}
