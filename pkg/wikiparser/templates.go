package wikiparser

import (
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// TemplateSpacer is the pre-parse replacement used when a template parser
// returns an empty one.
const TemplateSpacer = "(TEMPLATE)"

// TemplateParser resolves one template invocation. Implementations must be
// safe for concurrent use.
type TemplateParser interface {
	// ParseTemplate resolves t. page is the page being built; only its
	// page-level parts are populated at this point.
	ParseTemplate(t *wikiast.Template, page *wikiast.ParsedPage) ResolvedTemplate

	// ConfigurationInfo describes the strategy and its settings.
	ConfigurationInfo() string
}

// ResolvedTemplate tells the parser what to do with a template.
type ResolvedTemplate struct {
	// PreParseReplacement replaces the markup before the rest of the page is
	// parsed. Markup in it is parsed like page text. Empty means
	// TemplateSpacer.
	PreParseReplacement string

	// PostParseReplacement replaces the parsed pre-parse text in the final
	// element text.
	PostParseReplacement string

	// RetainParsed keeps the parsed pre-parse text and ignores
	// PostParseReplacement.
	RetainParsed bool

	// Object is recorded on the enclosing element: a *wikiast.Template, a
	// *wikiast.Link, or nil for nothing.
	Object wikiast.Inline
}

// resolveTemplates matches {{ }} pairs innermost first and hands each one to
// the template parser.
func (st *parseState) resolveTemplates() {
	buf := st.buf
	var stack []int
	pos := 0
	closeAt := -1
	for {
		if closeAt < pos {
			if closeAt = buf.IndexOf("}}", pos); closeAt < 0 {
				return
			}
		}
		if open := buf.IndexOfRange("{{", pos, closeAt); open >= 0 {
			if buf.CharAt(open+2) == '{' && buf.CharAt(open+3) != '{' {
				open++
			}
			stack = append(stack, open)
			pos = open + 2
			continue
		}
		if len(stack) == 0 {
			pos = closeAt + 2
			continue
		}
		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pos = st.resolveTemplate(span.New(start, closeAt+2))
		closeAt = -1
	}
}

// resolveTemplate replaces one template and returns the scan position after
// the replacement. The name and parameters are split at top-level pipes
// before verbatim content is put back, so pipes inside nowiki stay literal.
func (st *parseState) resolveTemplate(whole span.Span) int {
	innerStart := whole.Start + 2
	parts := splitTopLevel(st.buf.Substring(span.New(innerStart, whole.End-2)), '|')
	var name string
	var params []string
	offset := innerStart
	for i, part := range parts {
		text := strings.TrimSpace(st.expandPlaceholders(span.New(offset, offset+len(part))))
		offset += len(part) + 1
		switch {
		case i == 0:
			name = text
		case text != "":
			params = append(params, text)
		}
	}
	tpl := wikiast.NewTemplate(name, params)

	resolved := st.p.opts.TemplateParser.ParseTemplate(tpl, st.page)
	pre := resolved.PreParseReplacement
	if pre == "" {
		pre = TemplateSpacer
	}

	st.rewrite(whole, pre)
	st.templates.Add(span.New(whole.Start, whole.Start+len(pre)))

	rec := templateRecord{post: resolved.PostParseReplacement, retain: resolved.RetainParsed}
	switch obj := resolved.Object.(type) {
	case *wikiast.Link:
		rec.link = obj
	case *wikiast.Template:
		rec.tpl = obj
	}
	st.templateRecs = append(st.templateRecs, rec)

	return whole.Start + len(pre)
}

// splitTopLevel splits s at sep, ignoring separators nested in [[ ]] or {{ }}.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "[[") || strings.HasPrefix(s[i:], "{{"):
			depth++
			i++
		case (strings.HasPrefix(s[i:], "]]") || strings.HasPrefix(s[i:], "}}")) && depth > 0:
			depth--
			i++
		case s[i] == sep && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}
