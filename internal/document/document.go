// Package document assembles the master LaTeX document that includes every
// diary partition in chronological order.
package document

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gorewood/quill/internal/catalog"
	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/store"
)

// Defaults used when the master document has no title or author yet.
const (
	DefaultMainFile = "MainFile.tex"
	DefaultTitle    = "My Diary"
	DefaultAuthor   = "Anonymous"
	EmojiDir        = "Emoji"
)

const (
	titlePrefix  = `\title{\Huge `
	authorPrefix = `\author{`
)

// ErrExists is returned by Init when the master document already exists.
var ErrExists = errors.New("master document already exists")

// emojiImages maps each mood macro to its image under EmojiDir.
var emojiImages = []struct {
	mood  diary.Mood
	image string
}{
	{diary.MoodAmazed, "amazed-smiley"},
	{diary.MoodBeer, "beer-smiley"},
	{diary.MoodCoffee, "coffee-smiley"},
	{diary.MoodConfused, "confused-smiley"},
	{diary.MoodHeadbang, "headbang-smiley"},
	{diary.MoodShutCalc, "shutupandcalc"},
	{diary.MoodCode, "code-smiley"},
}

var packages = []string{
	"lipsum", "xcolor", "framed", "datetime", "[utf8]inputenc", "[T1]fontenc",
	"fourier", "marginnote", "tikz", "hyperref", "graphicx",
}

// Assembler writes the master document for a diary root.
type Assembler struct {
	catalog  *catalog.Catalog
	mainFile string
	logger   *zap.Logger
}

// NewAssembler creates an Assembler writing mainFile (relative to the
// catalog root unless absolute). An empty mainFile uses DefaultMainFile.
func NewAssembler(cat *catalog.Catalog, mainFile string, logger *zap.Logger) *Assembler {
	if mainFile == "" {
		mainFile = DefaultMainFile
	}
	if !filepath.IsAbs(mainFile) {
		mainFile = filepath.Join(cat.Root(), mainFile)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{catalog: cat, mainFile: mainFile, logger: logger}
}

// Path returns the master document path.
func (a *Assembler) Path() string {
	return a.mainFile
}

// PDFPath returns the path of the compiled document.
func (a *Assembler) PDFPath() string {
	return strings.TrimSuffix(a.mainFile, filepath.Ext(a.mainFile)) + ".pdf"
}

// Exists reports whether the master document exists.
func (a *Assembler) Exists() bool {
	_, err := os.Stat(a.mainFile)
	return err == nil
}

// Init creates the master document with title and author and the emoji
// image directory. It fails with ErrExists if the document is present.
func (a *Assembler) Init(title, author string) error {
	if a.Exists() {
		return ErrExists
	}
	if err := os.MkdirAll(filepath.Join(a.catalog.Root(), EmojiDir), 0o755); err != nil {
		return &store.IOError{Op: "create directory", Path: EmojiDir, Err: err}
	}
	return a.write(orDefault(title, DefaultTitle), orDefault(author, DefaultAuthor))
}

// Rebuild rewrites the master document with one include per partition,
// keeping the existing title and author.
func (a *Assembler) Rebuild() error {
	title, author, err := a.readMeta()
	if err != nil {
		return err
	}
	return a.write(title, author)
}

// readMeta returns the title and author of the current document, or the
// defaults when the document or either field is absent.
func (a *Assembler) readMeta() (string, string, error) {
	data, err := os.ReadFile(a.mainFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTitle, DefaultAuthor, nil
		}
		return "", "", &store.IOError{Op: "read document", Path: a.mainFile, Err: err}
	}
	content := string(data)
	return orDefault(field(content, titlePrefix), DefaultTitle),
		orDefault(field(content, authorPrefix), DefaultAuthor), nil
}

func (a *Assembler) write(title, author string) error {
	parts, err := a.catalog.ListPartitionsChronological()
	if err != nil {
		return err
	}
	content := Render(title, author, a.includes(parts))
	if err := os.MkdirAll(filepath.Dir(a.mainFile), 0o755); err != nil {
		return &store.IOError{Op: "create directory", Path: filepath.Dir(a.mainFile), Err: err}
	}
	if err := store.WriteFileAtomic(a.mainFile, []byte(content), 0o644); err != nil {
		return &store.IOError{Op: "write document", Path: a.mainFile, Err: err}
	}
	a.logger.Debug("master document written",
		zap.String("path", a.mainFile), zap.Int("partitions", len(parts)))
	return nil
}

// includes returns the \include targets for parts, relative to the
// document directory and without extension.
func (a *Assembler) includes(parts []catalog.Partition) []string {
	base := filepath.Dir(a.mainFile)
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		rel, err := filepath.Rel(base, p.Path)
		if err != nil {
			rel = p.Path
		}
		rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		if !path.IsAbs(rel) && !strings.HasPrefix(rel, ".") {
			rel = "./" + rel
		}
		targets = append(targets, rel)
	}
	return targets
}

// Render produces the full master document.
func Render(title, author string, includes []string) string {
	var builder strings.Builder

	builder.WriteString(`\documentclass[a4paper]{book}` + "\n")
	for _, pkg := range packages {
		opts, name := "", pkg
		if strings.HasPrefix(pkg, "[") {
			end := strings.IndexByte(pkg, ']')
			opts, name = pkg[:end+1], pkg[end+1:]
		}
		fmt.Fprintf(&builder, "\\usepackage%s{%s}\n", opts, name)
	}
	builder.WriteString("\n" + `\input{input}` + "\n\n")

	for _, e := range emojiImages {
		fmt.Fprintf(&builder, "\\newcommand{\\%s}{\\includegraphics[height=1.8ex]{\"./%s/%s\"}}\n",
			e.mood, EmojiDir, e.image)
	}
	builder.WriteString(`\newcommand{\datestampcust}[3]{\dayofweekname{#1}{#2}{#3} {#1.#2.#3}}` + "\n")
	builder.WriteString(`\newcommand{\sep}{-----------------------------------------------------------}` + "\n\n")

	fmt.Fprintf(&builder, "%s%s}\n", titlePrefix, title)
	fmt.Fprintf(&builder, "%s%s}\n", authorPrefix, author)
	builder.WriteString(`\date{}` + "\n\n")

	builder.WriteString(`\begin{document}` + "\n")
	builder.WriteString(`\maketitle` + "\n\n")
	for _, inc := range includes {
		fmt.Fprintf(&builder, "\\include{%s}\n", inc)
	}
	if len(includes) > 0 {
		builder.WriteString("\n")
	}
	builder.WriteString(`\end{document}` + "\n")
	return builder.String()
}

// EmojiImages returns the image names the document expects under EmojiDir.
func EmojiImages() []string {
	names := make([]string, len(emojiImages))
	for i, e := range emojiImages {
		names[i] = e.image
	}
	return names
}

// field returns the text between prefix and the next closing brace.
func field(content, prefix string) string {
	_, after, ok := strings.Cut(content, prefix)
	if !ok {
		return ""
	}
	value, _, ok := strings.Cut(after, "}")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
