package discord

import "strings"

const (
	contentLimit     = 2000
	embedTitleLimit  = 256
	embedDescription = 4096
	ellipsis         = "…"
)

// Truncate обрезает текст до limit рун с учётом лимитов Discord.
// По возможности режет по переводу строки, чтобы не разрывать форматирование.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	end := limit - len([]rune(ellipsis))
	if end <= 0 {
		return string(runes[:limit])
	}
	cut := end
	for i := end; i > end/2; i-- {
		if runes[i-1] == '\n' {
			cut = i - 1
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), "\n") + ellipsis
}
