package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fb-form"
	ClassHeader  ChromeClass = "fb-header"
	ClassActions ChromeClass = "fb-actions"
	ClassErrors  ChromeClass = "fb-errors"
	ClassEmpty   ChromeClass = "fb-empty"
)

func chromeClasses(overrides map[ChromeClass]string) map[string]string {
	pick := func(class ChromeClass) string {
		if value := sanitizeClassList(overrides[class]); value != "" {
			return string(class) + " " + value
		}
		return string(class)
	}
	return map[string]string{
		"form":    pick(ClassForm),
		"header":  pick(ClassHeader),
		"actions": pick(ClassActions),
		"errors":  pick(ClassErrors),
		"empty":   pick(ClassEmpty),
	}
}
