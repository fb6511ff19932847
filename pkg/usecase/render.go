package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// formatter renders the three building blocks of a changelog block in one
// markup dialect. The dialect is selected once from the file extension.
type formatter interface {
	heading(text string) string
	subheading(text string) string
	bullet(entry *model.ChangeEntry) string
}

type markdownFormatter struct{}

func (markdownFormatter) heading(text string) string {
	return "## " + text + "\n"
}

func (markdownFormatter) subheading(text string) string {
	return "### " + text + "\n"
}

func (markdownFormatter) bullet(entry *model.ChangeEntry) string {
	return fmt.Sprintf("* [%s](%s): %s\n", entry.DisplayID(), entry.URL, entry.Title)
}

type restructuredTextFormatter struct{}

func (restructuredTextFormatter) heading(text string) string {
	return text + "\n" + strings.Repeat("=", utf8.RuneCountInString(text)) + "\n"
}

func (restructuredTextFormatter) subheading(text string) string {
	return text + "\n" + strings.Repeat("-", utf8.RuneCountInString(text)) + "\n"
}

func (restructuredTextFormatter) bullet(entry *model.ChangeEntry) string {
	return fmt.Sprintf("* `%s <%s>`__: %s\n", entry.DisplayID(), entry.URL, entry.Title)
}

func newFormatter(dialect model.Dialect) formatter {
	if dialect == model.DialectRestructuredText {
		return restructuredTextFormatter{}
	}
	return markdownFormatter{}
}

// Render turns the version header and the classified groups into a formatted
// changelog block. The output is deterministic: identical inputs produce
// byte-identical text.
func Render(header *model.VersionHeader, groups []*model.ChangeGroup, dialect model.Dialect) *model.RenderedBlock {
	f := newFormatter(dialect)

	var b strings.Builder
	b.WriteString(f.heading(header.Text()))

	for _, group := range groups {
		if len(group.Entries) == 0 {
			continue
		}
		b.WriteString("\n")
		if group.Title != "" {
			b.WriteString(f.subheading(group.Title))
			b.WriteString("\n")
		}
		for _, entry := range group.Entries {
			b.WriteString(f.bullet(entry))
		}
	}

	return &model.RenderedBlock{Text: b.String(), Dialect: dialect}
}
