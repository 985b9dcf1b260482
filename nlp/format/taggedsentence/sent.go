// Package taggedsentence reads and writes one sentence per line as
// space separated word/TAG tokens. A sentence is returned as a tree holding
// only its leaves, the input of a parse.
package taggedsentence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "hatparse/nlp/types"
)

func Read(reader io.Reader) ([]*nlp.Tree, error) {
	var sentences []*nlp.Tree
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 1; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		sent := nlp.NewTree(fmt.Sprintf("%d", len(sentences)+1))
		for _, taggedTokenString := range strings.Fields(line) {
			// the tag follows the last slash, words may contain slashes
			sep := strings.LastIndexByte(taggedTokenString, '/')
			if sep <= 0 || sep == len(taggedTokenString)-1 {
				return nil, fmt.Errorf("got untagged token %q at line %d", taggedTokenString, i)
			}
			sent.AddLeaf(taggedTokenString[:sep], taggedTokenString[sep+1:], "")
		}
		sentences = append(sentences, sent)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func ReadFile(filename string) ([]*nlp.Tree, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Write outputs the leaves of each tree as a tagged sentence
func Write(writer io.Writer, trees []*nlp.Tree) error {
	w := bufio.NewWriter(writer)
	for _, t := range trees {
		for i, l := range t.Leaves {
			if i > 0 {
				w.WriteByte(' ')
			}
			leaf := t.Node(l)
			fmt.Fprintf(w, "%s/%s", leaf.Form, leaf.Category)
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
