package botkit

import "strings"

// Разбивает аргументы команды на первое слово и остаток.
// "/summary https://x digest" -> ("https://x", "digest")
func SplitArgs(args string) (string, string) {
	args = strings.TrimSpace(args)
	first, rest, _ := strings.Cut(args, " ")
	return first, strings.TrimSpace(rest)
}
