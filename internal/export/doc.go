// Package export writes diary entries in formats other tools can read.
//
// Two formats are supported:
//
//   - JSON: the search result fields, one array or one file per entry
//   - Markdown: YAML frontmatter, a heading, the body and quoted side notes
//
// Example markdown output:
//
//	---
//	schema: quill.export/v1
//	date: "2025-03-01"
//	day: Saturday
//	mood: emocode
//	source: 2025/March_2025.tex
//	---
//
//	# Saturday 01/03/25 💻
//
//	Shipped the release.
//
//	> with the team
//
// When writing to a directory each entry gets its own file named by ISO
// date, with -2, -3, ... appended for further entries on the same day.
package export
