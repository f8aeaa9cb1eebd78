package discourse

import (
	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
	"github.com/hyperterse/dataexplorer/core/shared/text"
)

// debugBlock writes content between an opening and a closing marker of the
// same width.
func debugBlock(log interfaces.DebugLogger, name, content string) {
	if log == nil {
		return
	}
	log.Debug("===== " + name + " =====")
	log.Debug(content)
	log.Debug("======" + text.Repeat("=", len(name)) + "======")
}
