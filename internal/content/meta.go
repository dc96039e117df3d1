package content

import "fmt"

// MetaDescriptionLimit is the rune budget before "..." is appended.
const MetaDescriptionLimit = 155

// MetaTitle formats "{service} in {city}, {state} | {business}".
func MetaTitle(service, city, state, business string) string {
	return fmt.Sprintf("%s in %s, %s | %s", service, city, state, business)
}

// MetaDescription returns text verbatim when it fits, otherwise its first
// MetaDescriptionLimit runes followed by "...".
func MetaDescription(text string) string {
	runes := []rune(text)
	if len(runes) <= MetaDescriptionLimit {
		return text
	}
	return string(runes[:MetaDescriptionLimit]) + "..."
}
