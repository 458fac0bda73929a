package vanilla

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}

// sanitizeClassList drops reserved fb- tokens so callers cannot restyle
// chrome by accident.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fb-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	default:
		return fmt.Sprint(v)
	}
}

type rendererTheme struct {
	Name     string
	Variant  string
	Partials map[string]string
	CSSVars  map[string]string
	AssetURL func(string) string
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	return rendererTheme{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Partials: copyStringMap(cfg.Partials),
		CSSVars:  copyStringMap(cfg.CSSVars),
		AssetURL: cfg.AssetURL,
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

var cssUnsafe = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "")

// cssVarsStyle renders theme variables scoped to :root. Names without the
// "--" prefix are skipped and values lose characters that could close the
// declaration block.
func cssVarsStyle(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(cssUnsafe.Replace(key))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(cssUnsafe.Replace(vars[key])))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
