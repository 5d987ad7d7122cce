package lexicon

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// node is one position inside a raw API document. Accessors never fail: a
// missing key, a wrong type or a too-short array yields the zero node, and
// the zero node yields nothing further down.
type node struct {
	r gjson.Result
}

func wrap(r gjson.Result) node { return node{r: r} }

func (n node) isRecord() bool { return n.r.IsObject() }

func (n node) isList() bool { return n.r.IsArray() }

// field returns the named member of a record. Names are plain API keys and
// never contain gjson path syntax.
func (n node) field(name string) node {
	if !n.r.IsObject() {
		return node{}
	}
	return node{r: n.r.Get(name)}
}

// path walks a dot-separated chain of record fields.
func (n node) path(names ...string) node {
	cur := n
	for _, name := range names {
		cur = cur.field(name)
	}
	return cur
}

// items returns the elements of a list, or nil for anything else.
func (n node) items() []node {
	if !n.r.IsArray() {
		return nil
	}
	arr := n.r.Array()
	out := make([]node, len(arr))
	for i, r := range arr {
		out[i] = node{r: r}
	}
	return out
}

// index returns element i of a list.
func (n node) index(i int) node {
	items := n.items()
	if i < 0 || i >= len(items) {
		return node{}
	}
	return items[i]
}

// text returns the node's value when it is a JSON string.
func (n node) text() (string, bool) {
	if n.r.Type != gjson.String {
		return "", false
	}
	return n.r.Str, true
}

// tagged reports whether n is a list whose first element is the string tag,
// which is how the API labels "text", "vis" and similar fragments.
func (n node) tagged(tag string) bool {
	label, ok := n.index(0).text()
	return ok && label == tag
}

var markerPattern = regexp.MustCompile(`\{.*?\}`)

// StripMarkers removes inline formatting tokens such as {it}, {/it} or
// {bc} and trims the result.
func StripMarkers(s string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(s, ""))
}
