package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	replacer = strings.NewReplacer(
		"\\", "\\\\",
		"-", "\\-",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	// Внутри url ссылки экранируются только ) и \
	linkReplacer = strings.NewReplacer(
		"\\", "\\\\",
		")", "\\)",
	)
)

// Экранирует спецсимволы MarkdownV2 для телеграма
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

// Ссылка [text](url) с экранированием обеих частей
func Link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", EscapeForMarkdown(text), linkReplacer.Replace(url))
}

// Обрезает строку до limit рун, добавляя многоточие. Вызывать до экранирования.
func Truncate(src string, limit int) string {
	if utf8.RuneCountInString(src) <= limit {
		return src
	}

	runes := []rune(src)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
