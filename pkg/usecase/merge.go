package usecase

import (
	"strings"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// Merge prepends the rendered block to the existing changelog content and
// returns the complete new file content. The existing content is never
// touched: it reappears verbatim as the suffix of the result, separated from
// the new block by exactly one blank line. There is no deduplication; a rerun
// for the same release produces a duplicate block.
func Merge(existing string, block *model.RenderedBlock) string {
	text := strings.TrimRight(block.Text, "\n")
	if existing == "" {
		return text + "\n"
	}
	return text + "\n\n" + existing
}
