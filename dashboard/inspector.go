package dashboard

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/jerry-enebeli/runboard/model"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// jsonToken matches strings (optionally followed by a colon, making them keys), literals and numbers.
var jsonToken = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

// PrettyJSON renders data with two space indentation and without HTML escaping.
func PrettyJSON(data interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Highlight HTML-escapes a JSON document and wraps every token in a span classed
// json-key, json-string, json-number, json-boolean or json-null.
func Highlight(doc string) string {
	escaped := htmlEscaper.Replace(doc)
	return jsonToken.ReplaceAllStringFunc(escaped, func(match string) string {
		class := "json-number"
		switch {
		case strings.HasPrefix(match, `"`):
			class = "json-string"
			if strings.HasSuffix(match, ":") {
				class = "json-key"
			}
		case match == "true" || match == "false":
			class = "json-boolean"
		case match == "null":
			class = "json-null"
		}
		return `<span class="` + class + `">` + match + `</span>`
	})
}

// Inspector shows the full record behind a table row.
type Inspector struct {
	mu     sync.Mutex
	row    *model.TableRow
	copied flag
}

func NewInspector() *Inspector {
	return NewInspectorWithTimer(realAfterFunc)
}

func NewInspectorWithTimer(after AfterFunc) *Inspector {
	return &Inspector{copied: flag{after: after}}
}

func (i *Inspector) Open(row model.TableRow) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.row = &row
}

func (i *Inspector) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.row = nil
}

func (i *Inspector) IsOpen() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.row != nil
}

// JSON returns the open row's data as pretty JSON, or "" when nothing is open.
func (i *Inspector) JSON() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.row == nil {
		return "", nil
	}
	return PrettyJSON(i.row.Data)
}

// HTML returns the highlighted JSON of the open row.
func (i *Inspector) HTML() (string, error) {
	doc, err := i.JSON()
	if err != nil {
		return "", err
	}
	return Highlight(doc), nil
}

// Copy returns the text to put on the clipboard and shows the copied confirmation.
func (i *Inspector) Copy() (string, error) {
	doc, err := i.JSON()
	if err != nil || doc == "" {
		return doc, err
	}
	i.mu.Lock()
	i.copied.raise(i.mu.Lock, i.mu.Unlock)
	i.mu.Unlock()
	return doc, nil
}

func (i *Inspector) Copied() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.copied.on
}
