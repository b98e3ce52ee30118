// Package dictionary loads fixed-length word lists and indexes them by prefix.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrInvalidLength is returned for a target word length below 1.
var ErrInvalidLength = errors.New("word length must be at least 1")

// ReadError wraps any failure to open or read a dictionary file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read dictionary %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Dictionary is an ordered list of uppercase words of one length.
// Duplicates in the source are kept.
type Dictionary struct {
	length int
	words  []string
	// word -> []int of positions in words
	index *patricia.Trie
}

// Load reads path and keeps the lines whose trimmed length is exactly
// length runes, uppercased.
func Load(path string, length int) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	d, err := LoadReader(file, length)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return nil, err
	}
	log.Debugf("Loaded %d words of length %d from %s", d.Len(), length, path)
	return d, nil
}

// LoadReader is Load over an arbitrary reader.
func LoadReader(r io.Reader, length int) (*Dictionary, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}

	d := &Dictionary{length: length, index: patricia.NewTrie()}
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			word := strings.TrimSpace(line)
			if utf8.RuneCountInString(word) == length {
				d.add(strings.ToUpper(word))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ReadError{Err: err}
		}
	}
	return d, nil
}

// New builds a dictionary from words already in memory. Words are
// uppercased and those of the wrong length dropped.
func New(words []string, length int) *Dictionary {
	d := &Dictionary{length: length, index: patricia.NewTrie()}
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if utf8.RuneCountInString(w) == length {
			d.add(w)
		}
	}
	return d
}

func (d *Dictionary) add(word string) {
	pos := len(d.words)
	d.words = append(d.words, word)

	key := patricia.Prefix(word)
	if item := d.index.Get(key); item != nil {
		d.index.Set(key, append(item.([]int), pos))
		return
	}
	d.index.Insert(key, []int{pos})
}

// Length returns the word length this dictionary was built for.
func (d *Dictionary) Length() int { return d.length }

// Len returns the number of entries, duplicates included.
func (d *Dictionary) Len() int { return len(d.words) }

// Words returns the entries in source order. The slice is shared.
func (d *Dictionary) Words() []string { return d.words }

// WithPrefix returns the entries starting with prefix, in source order.
func (d *Dictionary) WithPrefix(prefix string) []string {
	if prefix == "" {
		return d.words
	}

	var positions []int
	err := d.index.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary index: %v", err)
		return nil
	}

	sort.Ints(positions)
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = d.words[p]
	}
	return out
}
