package wikiparser_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

func FuzzParse(f *testing.F) {
	f.Add("== Heading ==\nText with [[Link|caption]] and {{Template|a|b}}.")
	f.Add("{|\n|a||b\n|-\n!c\n|}")
	f.Add("* one\n** two\n# three\n; term : definition")
	f.Add("<nowiki>[[x]]</nowiki><math>x^2</math><pre>{{y}}</pre>")
	f.Add("[[Image:a.png|thumb|[[inner]] caption]]\n[[Category:X]][[de:Y]]")
	f.Add("{{{{{{x}}}}}} [[[[ ]]]] <gallery>\nA.jpg|c\n</gallery> <!-- open")
	f.Add("'''''b''i''' [http://example.org ext] mailto:a@b.c\r\n")

	parser := wikiparser.New(testOptions())

	f.Fuzz(func(t *testing.T, text string) {
		page, err := parser.Parse(text)
		if text == "" {
			if !errors.Is(err, wikiparser.ErrEmptyInput) {
				t.Fatalf("empty input: got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", text, err)
		}
		if page == nil || page.Root() == nil {
			t.Fatalf("Parse(%q) returned no root", text)
		}
		if _, err := json.Marshal(page); err != nil {
			t.Fatalf("marshal page for %q: %v", text, err)
		}
	})
}
