package summary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// readability оставляет много пустых строк, три и больше подряд схлопываем в одну
var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanText(text string) string {
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n"))
}

// Достает читаемый текст из html (или просто текста)
func Extract(r io.Reader) (string, error) {
	doc, err := readability.FromReader(r, nil)
	if err != nil {
		return "", err
	}

	return cleanText(doc.TextContent), nil
}

// Скачивает страницу статьи и достает из нее текст
func ExtractURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	return Extract(resp.Body)
}
