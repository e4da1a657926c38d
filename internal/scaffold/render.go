package scaffold

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateFuncs are available to every template rendered by TemplateRender.
var templateFuncs = template.FuncMap{
	"upper":  strings.ToUpper,
	"lower":  strings.ToLower,
	"title":  title,
	"kebab":  func(s string) string { return joinWords(s, "-", strings.ToLower) },
	"snake":  func(s string) string { return joinWords(s, "_", strings.ToLower) },
	"pascal": func(s string) string { return joinWords(s, "", title) },
}

// TemplateRender is a RenderFunc backed by text/template. Names and file
// bodies share the same engine; referencing an undefined variable fails.
func TemplateRender(req RenderRequest) (string, error) {
	name := req.Filename
	if name == "" {
		name = string(req.Mode)
	}

	tmpl, err := template.New(name).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(req.Template)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req.Data.Map()); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// title builds a fresh Caser per call; a Caser must not be shared across
// goroutines and names render concurrently.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// joinWords splits s on case changes and separators, transforms each word
// and joins them with sep.
func joinWords(s, sep string, transform func(string) string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = transform(w)
	}
	return strings.Join(words, sep)
}

func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}
