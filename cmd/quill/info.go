package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/diary"
)

// newPartitionsCmd creates the partitions command.
func newPartitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partitions",
		Short: "List the monthly files in chronological order",
		Args:  cobra.NoArgs,
		RunE:  runPartitions,
	}
}

func runPartitions(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	parts, err := a.catalog.ListPartitionsChronological()
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		type partition struct {
			Year  int    `json:"year"`
			Month string `json:"month"`
			Name  string `json:"name"`
			Path  string `json:"path"`
		}
		list := make([]partition, 0, len(parts))
		for _, p := range parts {
			list = append(list, partition{Year: p.Year, Month: p.Month.String(), Name: p.Name(), Path: p.Path})
		}
		return printer.WriteJSON(map[string]any{"root": a.catalog.Root(), "partitions": list})
	}

	if len(parts) == 0 {
		printer.Println("No monthly files under " + a.catalog.Root() + ".")
		return nil
	}
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, []string{strconv.Itoa(p.Year), p.Month.String(), p.Name()})
	}
	printer.Table([]string{"YEAR", "MONTH", "FILE"}, rows)
	return nil
}

// newMoodsCmd creates the moods command.
func newMoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List the moods an entry can carry",
		Long: `List the mood markers with their menu number, emoji and the feeling words
that select them. Any of these can be passed to 'quill write --mood'.`,
		Args: cobra.NoArgs,
		RunE: runMoods,
	}
}

func runMoods(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	if printer.IsJSON() {
		type mood struct {
			Number   int      `json:"number"`
			Marker   string   `json:"marker"`
			Emoji    string   `json:"emoji"`
			Keywords []string `json:"keywords"`
		}
		list := make([]mood, 0, len(diary.Moods))
		for i, m := range diary.Moods {
			list = append(list, mood{Number: i + 1, Marker: string(m), Emoji: m.Symbol(), Keywords: m.Keywords()})
		}
		return printer.WriteJSON(map[string]any{"default": diary.DefaultMood, "moods": list})
	}

	rows := make([][]string, 0, len(diary.Moods))
	for i, m := range diary.Moods {
		rows = append(rows, []string{strconv.Itoa(i + 1), string(m), m.Symbol(), strings.Join(m.Keywords(), ", ")})
	}
	printer.Table([]string{"#", "MARKER", "EMOJI", "FEELINGS"}, rows)
	printer.Println()
	printer.KeyValue("Default", string(diary.DefaultMood))
	return nil
}
