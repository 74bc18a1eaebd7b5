package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders whole kronor with Swedish digit grouping, e.g. "1 199 kr".
func FormatPrice(amount int64) string {
	return message.NewPrinter(language.Swedish).Sprintf("%d kr", amount)
}
