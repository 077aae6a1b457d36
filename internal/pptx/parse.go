package pptx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads one XML part into a node tree. Namespace prefixes are kept
// as written; attribute and sibling order are preserved.
//
// encoding/xml is deliberately not used here: its decoder resolves
// prefixes to namespace URIs and cannot reproduce the original prefixes
// on output, which would force redeclaring namespaces on the slide root.
// PresentationML parts are machine-generated XML without DTDs or CDATA,
// so the scanner below covers the full part grammar we encounter.
func Parse(data []byte) (*Node, error) {
	p := &parser{data: data}
	p.skipBOM()
	p.skipMisc()
	root, err := p.element()
	if err != nil {
		return nil, err
	}
	p.skipMisc()
	if p.pos != len(p.data) {
		return nil, fmt.Errorf("pptx: trailing content at offset %d", p.pos)
	}
	return root, nil
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("pptx: "+format+" (offset %d)", append(args, p.pos)...)
}

func (p *parser) skipBOM() {
	if bytes.HasPrefix(p.data, []byte{0xEF, 0xBB, 0xBF}) {
		p.pos = 3
	}
}

// skipMisc consumes whitespace, the XML declaration, processing
// instructions, comments and DOCTYPE between elements.
func (p *parser) skipMisc() {
	for {
		for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
			p.pos++
		}
		switch {
		case p.hasPrefix("<?"):
			if i := bytes.Index(p.data[p.pos:], []byte("?>")); i >= 0 {
				p.pos += i + 2
				continue
			}
			p.pos = len(p.data)
		case p.hasPrefix("<!--"):
			if i := bytes.Index(p.data[p.pos:], []byte("-->")); i >= 0 {
				p.pos += i + 3
				continue
			}
			p.pos = len(p.data)
		case p.hasPrefix("<!"):
			if i := bytes.IndexByte(p.data[p.pos:], '>'); i >= 0 {
				p.pos += i + 1
				continue
			}
			p.pos = len(p.data)
		default:
			return
		}
	}
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.data[p.pos:], []byte(s))
}

func (p *parser) element() (*Node, error) {
	if p.pos >= len(p.data) || p.data[p.pos] != '<' {
		return nil, p.errf("expected element start")
	}
	p.pos++
	tag := p.name()
	if tag == "" {
		return nil, p.errf("expected element name")
	}
	n := &Node{Tag: tag}

	for {
		p.skipWS()
		if p.pos >= len(p.data) {
			return nil, p.errf("unterminated start tag <%s>", tag)
		}
		if p.hasPrefix("/>") {
			p.pos += 2
			return n, nil
		}
		if p.data[p.pos] == '>' {
			p.pos++
			break
		}
		name := p.name()
		if name == "" {
			return nil, p.errf("malformed attribute in <%s>", tag)
		}
		p.skipWS()
		if p.pos >= len(p.data) || p.data[p.pos] != '=' {
			return nil, p.errf("attribute %q in <%s> missing value", name, tag)
		}
		p.pos++
		p.skipWS()
		val, err := p.quoted()
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: val})
	}

	// Content until the matching end tag.
	for {
		if p.pos >= len(p.data) {
			return nil, p.errf("missing end tag </%s>", tag)
		}
		if p.data[p.pos] != '<' {
			start := p.pos
			for p.pos < len(p.data) && p.data[p.pos] != '<' {
				p.pos++
			}
			text := unescape(string(p.data[start:p.pos]))
			if strings.TrimSpace(text) != "" || len(n.Children) == 0 {
				n.Text += text
			}
			continue
		}
		if p.hasPrefix("</") {
			p.pos += 2
			end := p.name()
			p.skipWS()
			if p.pos >= len(p.data) || p.data[p.pos] != '>' {
				return nil, p.errf("malformed end tag </%s>", end)
			}
			p.pos++
			if end != tag {
				return nil, p.errf("mismatched end tag </%s> for <%s>", end, tag)
			}
			// Whitespace-only content around children is formatting noise.
			if len(n.Children) > 0 && strings.TrimSpace(n.Text) == "" {
				n.Text = ""
			}
			return n, nil
		}
		if p.hasPrefix("<!--") || p.hasPrefix("<?") || p.hasPrefix("<!") {
			p.skipMisc()
			continue
		}
		child, err := p.element()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
}

func (p *parser) skipWS() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
}

func (p *parser) name() string {
	start := p.pos
	for p.pos < len(p.data) && isNameByte(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *parser) quoted() (string, error) {
	if p.pos >= len(p.data) {
		return "", p.errf("unterminated attribute value")
	}
	q := p.data[p.pos]
	if q != '"' && q != '\'' {
		return "", p.errf("attribute value must be quoted")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] != q {
		p.pos++
	}
	if p.pos >= len(p.data) {
		return "", p.errf("unterminated attribute value")
	}
	val := unescape(string(p.data[start:p.pos]))
	p.pos++
	return val, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == ':' || b == '_' || b == '-' || b == '.':
		return true
	case b >= 0x80:
		// Non-ASCII name bytes pass through untouched.
		return true
	}
	return false
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		ref := s[i+1 : i+end]
		switch {
		case ref == "amp":
			b.WriteByte('&')
		case ref == "lt":
			b.WriteByte('<')
		case ref == "gt":
			b.WriteByte('>')
		case ref == "quot":
			b.WriteByte('"')
		case ref == "apos":
			b.WriteByte('\'')
		case strings.HasPrefix(ref, "#x") || strings.HasPrefix(ref, "#X"):
			if v, err := strconv.ParseInt(ref[2:], 16, 32); err == nil {
				b.WriteRune(rune(v))
			}
		case strings.HasPrefix(ref, "#"):
			if v, err := strconv.ParseInt(ref[1:], 10, 32); err == nil {
				b.WriteRune(rune(v))
			}
		default:
			// Unknown entity, keep it literal.
			b.WriteString(s[i : i+end+1])
		}
		i += end + 1
	}
	return b.String()
}
