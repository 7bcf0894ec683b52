package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

var declaredEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*encoding=["']([^"']+)["']`)

// ParseNode parses an XML document into a Node tree. Documents declaring a
// non-UTF-8 encoding are transcoded; undeclared non-UTF-8 input is read as
// windows-1252, which is what legacy VML parts tend to be written in.
func ParseNode(data []byte) (*Node, error) {
	return parse(data, true, nil)
}

// ParseNodeSkipping parses like ParseNode but leaves out the subtrees of
// elements with the given local names, such as sheetData when rows are
// streamed separately. The skipped elements are kept as empty nodes.
func ParseNodeSkipping(data []byte, skip ...string) (*Node, error) {
	return parse(data, true, skipSet(skip))
}

// ParseReaderSkipping is ParseNodeSkipping over a stream. The input must be
// UTF-8 or declare its encoding.
func ParseReaderSkipping(r io.Reader, skip ...string) (*Node, error) {
	return parseFrom(NewDecoder(r), true, skipSet(skip))
}

func skipSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, s := range names {
		set[s] = true
	}
	return set
}

// ParseLenient parses markup that may not be well formed, such as legacy
// VML with unclosed HTML elements.
func ParseLenient(data []byte) (*Node, error) {
	return parse(data, false, nil)
}

func parse(data []byte, strict bool, skip map[string]bool) (*Node, error) {
	return parseFrom(NewDecoder(bytes.NewReader(normaliseEncoding(data))), strict, skip)
}

func parseFrom(dec *xml.Decoder, strict bool, skip map[string]bool) (*Node, error) {
	if !strict {
		dec.Strict = false
		dec.AutoClose = xml.HTMLAutoClose
		dec.Entity = xml.HTMLEntity
	}
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: elementAttrs(t.Attr)}
			if len(stack) > 0 {
				stack[len(stack)-1].Append(n)
			} else if root == nil {
				root = n
			}
			if skip[t.Name.Local] && len(stack) > 0 {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse xml: %w", err)
				}
				continue
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(top.Children) > 0 && strings.TrimSpace(top.Text) == "" {
				top.Text = ""
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return root, nil
}

// NewDecoder returns an xml.Decoder that transcodes declared non-UTF-8
// encodings, for callers that stream large parts token by token.
func NewDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// ReadElement reads the element opened by start, up to its end tag, into a
// Node. It lets streaming readers hand one element at a time to
// Type.FromTree.
func ReadElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	root := &Node{Name: start.Name, Attrs: elementAttrs(start.Attr)}
	stack := []*Node{root}
	for len(stack) > 0 {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read <%s>: %w", start.Name.Local, err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: elementAttrs(t.Attr)}
			top.Append(n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(top.Children) > 0 && strings.TrimSpace(top.Text) == "" {
				top.Text = ""
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.Text += string(t)
		}
	}
	return root, nil
}

// elementAttrs drops namespace declarations; the emitter regenerates them.
func elementAttrs(attrs []xml.Attr) []xml.Attr {
	var out []xml.Attr
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func normaliseEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	if m := declaredEncoding.FindSubmatch(head); m != nil && !strings.EqualFold(string(m[1]), "utf-8") {
		return data
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return out
}

// WriteNode serialises n. Namespaces other than the root's are declared on
// the root element with their conventional prefixes.
func WriteNode(w io.Writer, n *Node) error {
	e := &emitter{prefixes: map[string]string{}, used: map[string]bool{"xml": true}}
	e.collect(n, n.Name.Space)
	e.buf.Grow(512)
	e.element(n, "", true)
	_, err := w.Write(e.buf.Bytes())
	return err
}

// String renders the subtree without an XML declaration.
func (n *Node) String() string {
	var b bytes.Buffer
	if err := WriteNode(&b, n); err != nil {
		return ""
	}
	return b.String()
}

type emitter struct {
	buf      bytes.Buffer
	prefixes map[string]string
	order    []string
	used     map[string]bool
}

func (e *emitter) declare(space string) {
	if space == "" || space == NSXML {
		return
	}
	if _, ok := e.prefixes[space]; ok {
		return
	}
	p := PrefixFor(space)
	if p == "" || e.used[p] {
		for i := 0; ; i++ {
			p = fmt.Sprintf("ns%d", i)
			if !e.used[p] {
				break
			}
		}
	}
	e.used[p] = true
	e.prefixes[space] = p
	e.order = append(e.order, space)
}

func (e *emitter) collect(n *Node, rootSpace string) {
	n.Walk(func(c *Node) bool {
		if c.Name.Space != rootSpace {
			e.declare(c.Name.Space)
		}
		for _, a := range c.Attrs {
			e.declare(a.Name.Space)
		}
		return true
	})
}

func (e *emitter) element(n *Node, def string, root bool) {
	e.buf.WriteByte('<')
	name, childDef := n.Name.Local, def
	var localDecl *string
	switch {
	case root:
		childDef = n.Name.Space
	case n.Name.Space == def:
	case e.prefixes[n.Name.Space] != "":
		name = e.prefixes[n.Name.Space] + ":" + n.Name.Local
	default:
		childDef = n.Name.Space
		localDecl = &childDef
	}
	e.buf.WriteString(name)
	if root {
		if n.Name.Space != "" {
			e.attr("xmlns", n.Name.Space)
		}
		for _, space := range e.order {
			e.attr("xmlns:"+e.prefixes[space], space)
		}
	}
	if localDecl != nil {
		e.attr("xmlns", *localDecl)
	}
	for _, a := range n.Attrs {
		switch a.Name.Space {
		case "":
			e.attr(a.Name.Local, a.Value)
		case NSXML:
			e.attr("xml:"+a.Name.Local, a.Value)
		default:
			e.attr(e.prefixes[a.Name.Space]+":"+a.Name.Local, a.Value)
		}
	}
	if len(n.Children) == 0 && n.Text == "" {
		e.buf.WriteString("/>")
		return
	}
	e.buf.WriteByte('>')
	if n.Text != "" {
		_ = xml.EscapeText(&e.buf, []byte(n.Text))
	}
	for _, c := range n.Children {
		e.element(c, childDef, false)
	}
	e.buf.WriteString("</")
	e.buf.WriteString(name)
	e.buf.WriteByte('>')
}

func (e *emitter) attr(name, value string) {
	e.buf.WriteByte(' ')
	e.buf.WriteString(name)
	e.buf.WriteString(`="`)
	_ = xml.EscapeText(&e.buf, []byte(value))
	e.buf.WriteByte('"')
}
