// Package bracket reads and writes constituency trees in a bracketed
// notation with head and label marks:
//
//	(S (NP:SB (DT the) (NN^ cat)) (VBD^ sat))
//
// A tag is CAT[=ID][:LABEL][^]. The ^ mark designates the head child; when
// no child of a node is marked the last child is the head. A bracket
// holding exactly one word is a leaf. A top-level bracket with an empty tag
// holds several roots. Other bare words are untagged leaves and may carry
// the ^ mark themselves:
//
//	(S (NP the cat^) sat^)
package bracket

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "hatparse/nlp/types"
)

const FIRST_INTERNAL_ID = 500

type token struct {
	val string
	pos int
}

type reader struct {
	tokens []token
	cur    int
	tree   *nlp.Tree
	nextID int
}

func tokenize(s string) []token {
	tokens := make([]token, 0, len(s)/3)
	start := -1
	flush := func(i int) {
		if start >= 0 {
			tokens = append(tokens, token{s[start:i], start})
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case r == '(' || r == ')':
			flush(i)
			tokens = append(tokens, token{string(r), i})
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return tokens
}

type tag struct {
	cat, id, label string
	head           bool
}

func parseTag(s string) tag {
	var t tag
	if strings.HasSuffix(s, "^") {
		t.head = true
		s = s[:len(s)-1]
	}
	if i := strings.LastIndexByte(s, ':'); i > 0 {
		t.label = s[i+1:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '='); i > 0 {
		t.id = s[i+1:]
		s = s[:i]
	}
	t.cat = s
	return t
}

func (r *reader) peek() (token, bool) {
	if r.cur >= len(r.tokens) {
		return token{}, false
	}
	return r.tokens[r.cur], true
}

func (r *reader) next() (token, bool) {
	tok, ok := r.peek()
	if ok {
		r.cur++
	}
	return tok, ok
}

func (r *reader) expect(val string) error {
	tok, ok := r.next()
	if !ok {
		return fmt.Errorf("expected %q, got end of input", val)
	}
	if tok.val != val {
		return fmt.Errorf("expected %q at offset %d, got %q", val, tok.pos, tok.val)
	}
	return nil
}

// node parses one bracket group; the opening bracket is already consumed
func (r *reader) node() (nlp.NodeID, tag, error) {
	tok, ok := r.next()
	if !ok {
		return nlp.NoNode, tag{}, fmt.Errorf("unterminated bracket")
	}
	if tok.val == "(" || tok.val == ")" {
		return nlp.NoNode, tag{}, fmt.Errorf("missing tag at offset %d", tok.pos)
	}
	t := parseTag(tok.val)
	la, ok := r.peek()
	if !ok {
		return nlp.NoNode, t, fmt.Errorf("unterminated bracket for %q", tok.val)
	}
	if la.val == ")" {
		return nlp.NoNode, t, fmt.Errorf("empty node %q at offset %d", tok.val, tok.pos)
	}
	if la.val != "(" && r.cur+1 < len(r.tokens) && r.tokens[r.cur+1].val == ")" {
		r.cur++
		leaf := r.tree.AddLeaf(la.val, t.cat, t.label)
		return leaf, t, r.expect(")")
	}
	if t.id != "" {
		if _, exists := r.tree.Lookup(t.id); exists {
			return nlp.NoNode, t, fmt.Errorf("duplicate id %q at offset %d", t.id, tok.pos)
		}
	}
	// anonymous nodes are named once the whole sentence is read
	n := r.tree.NewInternal(t.id, t.cat, t.label)
	if err := r.children(n); err != nil {
		return nlp.NoNode, t, err
	}
	return n, t, nil
}

func (r *reader) children(parent nlp.NodeID) error {
	var marked bool
	for {
		tok, ok := r.next()
		if !ok {
			return fmt.Errorf("unterminated bracket")
		}
		if tok.val == ")" {
			break
		}
		var (
			child nlp.NodeID
			head  bool
		)
		if tok.val == "(" {
			var (
				t   tag
				err error
			)
			child, t, err = r.node()
			if err != nil {
				return err
			}
			head = t.head
		} else {
			// bare word: an untagged leaf
			form := tok.val
			if len(form) > 1 && strings.HasSuffix(form, "^") {
				form, head = form[:len(form)-1], true
			}
			child = r.tree.AddLeaf(form, "", "")
		}
		r.tree.AddChild(parent, child, head && !marked)
		marked = marked || head
	}
	p := r.tree.Node(parent)
	if len(p.Children) == 0 {
		return fmt.Errorf("internal node %q without children", p.ID)
	}
	if !marked {
		p.Head = len(p.Children) - 1
	}
	return nil
}

// nameAnonymous gives every internal node without an id a synthetic one,
// skipping ids the sentence already uses
func (r *reader) nameAnonymous() {
	for i := range r.tree.Nodes {
		n := nlp.NodeID(i)
		if r.tree.IsLeaf(n) || r.tree.Node(n).ID != "" {
			continue
		}
		for {
			id := fmt.Sprintf("#%d", r.nextID)
			r.nextID++
			if _, used := r.tree.Lookup(id); !used {
				r.tree.SetID(n, id)
				break
			}
		}
	}
}

// sentence parses one top-level group into a tree
func (r *reader) sentence(name string) (*nlp.Tree, error) {
	r.tree = nlp.NewTree(name)
	r.nextID = FIRST_INTERNAL_ID
	if err := r.expect("("); err != nil {
		return nil, err
	}
	if la, ok := r.peek(); ok && la.val == "(" {
		// empty top tag: every child is a root
		for {
			tok, ok := r.next()
			if !ok {
				return nil, fmt.Errorf("unterminated sentence %s", name)
			}
			if tok.val == ")" {
				break
			}
			if tok.val != "(" {
				return nil, fmt.Errorf("unexpected word %q at offset %d", tok.val, tok.pos)
			}
			root, _, err := r.node()
			if err != nil {
				return nil, err
			}
			r.tree.AddRoot(root)
		}
	} else {
		root, _, err := r.node()
		if err != nil {
			return nil, err
		}
		r.tree.AddRoot(root)
	}
	r.nameAnonymous()
	r.tree.Normalize()
	return r.tree, nil
}

// ReadString parses every tree in s
func ReadString(s string) ([]*nlp.Tree, error) {
	r := &reader{tokens: tokenize(s)}
	trees := make([]*nlp.Tree, 0, 16)
	for r.cur < len(r.tokens) {
		name := fmt.Sprintf("%d", len(trees)+1)
		t, err := r.sentence(name)
		if err != nil {
			return trees, fmt.Errorf("sentence %s: %w", name, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func Read(reader io.Reader) ([]*nlp.Tree, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return ReadString(string(data))
}

func ReadFile(filename string) ([]*nlp.Tree, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Format renders t on one line; several roots are wrapped in an empty bracket
func Format(t *nlp.Tree) string {
	if len(t.Roots) == 1 {
		return t.NodeString(t.Roots[0])
	}
	return "( " + t.String() + ")"
}

func Write(writer io.Writer, trees []*nlp.Tree) error {
	w := bufio.NewWriter(writer)
	for _, t := range trees {
		if _, err := w.WriteString(Format(t)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func WriteFile(filename string, trees []*nlp.Tree) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, trees)
}
