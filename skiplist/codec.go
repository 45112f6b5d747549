package skiplist

import (
	"bufio"
	"cmp"
	"os"
	"strconv"
	"strings"
)

// Codec formats and parses keys and values for the snapshot format:
// one key:value pair per line, UTF-8, no newlines inside a value.
type Codec[K cmp.Ordered, V any] struct {
	FormatKey   func(K) string
	ParseKey    func(string) (K, bool)
	FormatValue func(V) string
	ParseValue  func(string) (V, bool)
}

// StringCodec is the identity codec for string keys and values.
func StringCodec() Codec[string, string] {
	return Codec[string, string]{
		FormatKey:   func(k string) string { return k },
		ParseKey:    func(s string) (string, bool) { return s, s != "" },
		FormatValue: func(v string) string { return v },
		ParseValue:  func(s string) (string, bool) { return s, true },
	}
}

// IntStringCodec matches the reference workload: integer keys, string
// values.
func IntStringCodec() Codec[int, string] {
	return Codec[int, string]{
		FormatKey: func(k int) string { return strconv.Itoa(k) },
		ParseKey: func(s string) (int, bool) {
			n, err := strconv.Atoi(s)
			return n, err == nil
		},
		FormatValue: func(v string) string { return v },
		ParseValue:  func(s string) (string, bool) { return s, true },
	}
}

// splitEntry splits a snapshot line on its first delimiter. It reports
// ok=false for lines with no delimiter or an empty key or value, which
// Load skips rather than treating as an error.
func splitEntry(line string) (key, value string, ok bool) {
	idx := strings.Index(line, delimiter)
	if idx <= 0 || idx == len(line)-1 {
		return "", "", false
	}

	return line[:idx], line[idx+1:], true
}

// Dump writes every entry, in ascending key order, to the configured
// snapshot path as "key:value\n" lines, truncating any existing file.
func (s *SkipList[K, V]) Dump() error {
	if s.codec == nil {
		return ErrNoCodec
	}

	f, err := os.Create(s.snapshotPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for n := s.header.forward[0]; n != nil; n = n.forward[0] {
		if _, err := w.WriteString(s.codec.FormatKey(n.key)); err != nil {
			return err
		}
		if _, err := w.WriteString(delimiter); err != nil {
			return err
		}
		if _, err := w.WriteString(s.codec.FormatValue(n.value)); err != nil {
			return err
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

// Load reads the configured snapshot path and inserts each entry found.
// Existing keys are left unchanged (Insert reports StatusExists, which
// Load ignores); malformed lines are skipped.
func (s *SkipList[K, V]) Load() error {
	if s.codec == nil {
		return ErrNoCodec
	}

	f, err := os.Open(s.snapshotPath)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rawKey, rawValue, ok := splitEntry(scanner.Text())
		if !ok {
			continue
		}

		key, ok := s.codec.ParseKey(rawKey)
		if !ok {
			continue
		}

		value, ok := s.codec.ParseValue(rawValue)
		if !ok {
			continue
		}

		s.Insert(key, value)
	}

	return scanner.Err()
}
