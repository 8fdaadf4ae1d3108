package wikiparser

import "github.com/yaklabco/wikiparse/pkg/wikiast"

// buildList consumes the run of lines starting with the same list marker as
// the first one. The marker is stripped from each line before the entries
// and sublists are built.
func (st *parseState) buildList(handles []int) (*wikiast.NestedListContainer, int) {
	marker := st.lineText(handles[0])[0]
	n := 0
	for n < len(handles) {
		text := st.lineText(handles[n])
		if text == "" || text[0] != marker {
			break
		}
		st.advance(handles[n], 1)
		n++
	}
	return st.buildListItems(handles[:n], marker == '#'), n
}

func (st *parseState) buildListItems(handles []int, numbered bool) *wikiast.NestedListContainer {
	list := wikiast.NewNestedListContainer(numbered)
	list.SetSrcSpan(st.newSrcSpan())

	for i := 0; i < len(handles); {
		h := handles[i]
		text := st.lineText(h)
		if text != "" && (text[0] == '*' || text[0] == '#') {
			sub, n := st.buildList(handles[i:])
			list.Add(sub)
			i += n
			continue
		}
		if text != "" && (text[0] == ':' || text[0] == ';') {
			st.advance(h, 1)
		}
		item := wikiast.NewNestedListElement()
		st.fillElement(item.Element(), []int{h}, false)
		list.Add(item)
		i++
	}
	return list
}
