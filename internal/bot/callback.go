package bot

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Spok95/material-report-bot/internal/domain/report"
)

// callback_data у Telegram не длиннее 64 байт, поэтому путь узла
// заменяем хешем и ищем узел в текущем дереве.
const (
	cbToggle  = "rep:t:"
	cbRetry   = "rep:retry"
	cbRefresh = "rep:refresh"
	cbPrev    = "rep:prev"
	cbNext    = "rep:next"
	cbExcel   = "rep:xlsx"
	cbLogout  = "rep:logout"
	cbCancel  = "nav:cancel"
)

func nodeKey(id report.NodeID) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(string(id)))
}

func toggleData(id report.NodeID) string { return cbToggle + nodeKey(id) }

// parseToggle ключ узла из callback_data.
func parseToggle(data string) (string, bool) {
	key, ok := strings.CutPrefix(data, cbToggle)
	if !ok || len(key) != 16 {
		return "", false
	}
	return key, true
}

// findNode узел дерева по ключу из кнопки.
func findNode(tree report.Tree, key string) (report.NodeID, bool) {
	for _, p := range tree.Parents {
		if nodeKey(p.ID()) == key {
			return p.ID(), true
		}
		for _, c := range p.Categories {
			if nodeKey(c.ID()) == key {
				return c.ID(), true
			}
		}
	}
	return "", false
}
