// Package langdetect names the programming language of code listings found
// in wiki markup (<source> and <syntaxhighlight> blocks). An explicit lang
// attribute wins; otherwise the content is classified with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// aliases maps lang attribute values used on wiki pages to canonical names.
var aliases = map[string]string{
	"sh":       "bash",
	"shell":    "bash",
	"console":  "bash",
	"js":       "javascript",
	"py":       "python",
	"python3":  "python",
	"cpp":      "c++",
	"c++":      "c++",
	"csharp":   "c#",
	"cs":       "c#",
	"golang":   "go",
	"html5":    "html",
	"xml":      "xml",
	"latex":    "tex",
	"wikitext": "wikitext",
	"moin":     "wikitext",
	"yml":      "yaml",
	"rb":       "ruby",
	"rs":       "rust",
	"pl":       "perl",
}

// candidates restricts the classifier to languages common on wiki pages.
var candidates = []string{
	"Python", "Shell", "JavaScript", "PHP", "Lua", "Java", "C", "C++",
	"C#", "Ruby", "Perl", "Go", "Rust", "SQL", "HTML", "CSS", "XML",
	"JSON", "YAML", "TeX", "Haskell", "Pascal",
}

type pattern struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// patterns are checked in order before the classifier runs.
var patterns = []pattern{
	{"go", func(_, t []byte) bool { return bytes.HasPrefix(t, []byte("package ")) }},
	{"php", func(_, t []byte) bool { return bytes.HasPrefix(t, []byte("<?php")) }},
	{"lua", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("local function ")) ||
			(bytes.Contains(c, []byte("function ")) && bytes.Contains(c, []byte(" end")) && bytes.Contains(c, []byte("local ")))
	}},
	{"python", func(c, _ []byte) bool {
		s := string(c)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__") ||
			(strings.HasPrefix(strings.TrimSpace(s), "import ") && !strings.Contains(s, "import ("))
	}},
	{"html", func(_, t []byte) bool {
		lower := bytes.ToLower(t)
		return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(_, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) && bytes.Contains(t, []byte(`"`)) &&
			bytes.Contains(t, []byte(":"))
	}},
	{"sql", func(_, t []byte) bool {
		upper := strings.ToUpper(string(t))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("fn main()")) || bytes.Contains(c, []byte("println!"))
	}},
	{"javascript", func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("console.log")) || bytes.Contains(c, []byte("=>"))
	}},
}

// ForCodeBlock returns the language of a code listing. attr is the value of
// the tag's lang attribute and may be empty.
func ForCodeBlock(attr string, code string) string {
	if lang := Normalize(attr); lang != "" {
		return lang
	}
	return Detect([]byte(code))
}

// Normalize maps a lang attribute value to its canonical name. It returns
// "" for an empty attribute.
func Normalize(attr string) string {
	lang := strings.ToLower(strings.TrimSpace(attr))
	if lang == "" {
		return ""
	}
	if canonical, ok := aliases[lang]; ok {
		return canonical
	}
	return lang
}

// Detect classifies code content. It returns Text when detection fails or
// the classifier is not confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromEnry(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return fromEnry(lang)
	}

	return Text
}

func fromEnry(lang string) string {
	return Normalize(lang)
}
