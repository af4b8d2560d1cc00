// Package diagnostic translates rustc JSON diagnostic records.
//
// rustc with --error-format=json writes one JSON record per line to
// stderr. Records carrying "$message_type": "diagnostic" hold the
// fields this package translates:
//
//   - message
//   - spans[].label
//   - children[].message
//   - children[].spans[].label
//
// Every (original, translated) pair produced while walking the record
// is then replayed against the flattened "rendered" field as a literal
// substring replacement, so the human-readable rendering stays
// consistent with the structured fields.
//
// All other fields pass through untouched, and nothing in this package
// is fatal: a line that cannot be parsed, gated, translated, or
// re-encoded is emitted byte-for-byte as it arrived. A translation bug
// must never keep a diagnostic from reaching its consumer.
//
// The JSON format is documented at
// https://doc.rust-lang.org/rustc/json.html
package diagnostic

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/rustc-ja/rustc-ja/phrase"
)

// messageTypeDiagnostic is the discriminant value that marks a record
// as translatable. Other record types (artifact notifications, future
// incompat reports) pass through.
const messageTypeDiagnostic = "diagnostic"

// Substitution is one recorded text replacement: a field's original
// value and the translation that replaced it.
type Substitution struct {
	Original   string
	Translated string
}

// TranslateStream translates each line of data independently and
// reassembles the stream. Line structure, including any trailing
// newline, is preserved.
func TranslateStream(data []byte, table *phrase.Table) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = TranslateLine(line, table)
	}
	return bytes.Join(lines, []byte("\n"))
}

// TranslateLine translates one line of rustc JSON output. The line is
// returned unchanged when it is not a single well-formed JSON object,
// when the record is not a diagnostic, when nothing in it translated,
// or when the translated record cannot be re-encoded.
func TranslateLine(line []byte, table *phrase.Table) []byte {
	record, ok := decodeRecord(line)
	if !ok {
		return line
	}
	if mt, _ := record["$message_type"].(string); mt != messageTypeDiagnostic {
		return line
	}

	translated, subs := TranslateRecord(record, table)
	if len(subs) == 0 {
		// Nothing matched; keep the input bytes so untranslated
		// output is byte-for-byte identical.
		return line
	}

	out, err := encodeRecord(translated)
	if err != nil {
		return line
	}
	return out
}

// TranslateRecord walks a decoded diagnostic record, translating every
// eligible text field, and returns the translated copy together with
// the log of substitutions that were applied. The input record is not
// modified. Structural shape is preserved exactly: same fields, same
// array lengths, same nesting.
func TranslateRecord(record map[string]any, table *phrase.Table) (map[string]any, []Substitution) {
	out := cloneMap(record)
	var subs []Substitution

	translateTextField(out, "message", table, &subs)

	if spans, ok := out["spans"].([]any); ok {
		out["spans"] = translateSpans(spans, table, &subs)
	}

	if children, ok := out["children"].([]any); ok {
		translated := make([]any, len(children))
		for i, c := range children {
			child, ok := c.(map[string]any)
			if !ok {
				translated[i] = c
				continue
			}
			cc := cloneMap(child)
			translateTextField(cc, "message", table, &subs)
			if spans, ok := cc["spans"].([]any); ok {
				cc["spans"] = translateSpans(spans, table, &subs)
			}
			translated[i] = cc
		}
		out["children"] = translated
	}

	reconcileRendered(out, subs)
	return out, subs
}

// translateTextField translates the string value at key in m, replacing
// the field and logging the pair only when the text actually changed.
// Absent, null, or non-string values are left alone.
func translateTextField(m map[string]any, key string, table *phrase.Table, subs *[]Substitution) {
	s, ok := m[key].(string)
	if !ok {
		return
	}
	translated := table.Translate(s)
	if translated == s {
		return
	}
	m[key] = translated
	*subs = append(*subs, Substitution{Original: s, Translated: translated})
}

// translateSpans returns a copy of spans with each span's label
// translated. Elements that are not objects are carried over as-is.
func translateSpans(spans []any, table *phrase.Table, subs *[]Substitution) []any {
	out := make([]any, len(spans))
	for i, s := range spans {
		span, ok := s.(map[string]any)
		if !ok {
			out[i] = s
			continue
		}
		cp := cloneMap(span)
		translateTextField(cp, "label", table, subs)
		out[i] = cp
	}
	return out
}

// reconcileRendered rewrites the rendered field by replacing, in log
// order, every occurrence of each logged original with its translation.
// Pairs with an empty original or an unchanged translation are skipped.
// Replacements are sequential and global, so a later pair can also
// match text inserted by an earlier one.
func reconcileRendered(record map[string]any, subs []Substitution) {
	rendered, ok := record["rendered"].(string)
	if !ok {
		return
	}
	for _, sub := range subs {
		if sub.Original == "" || sub.Original == sub.Translated {
			continue
		}
		rendered = strings.ReplaceAll(rendered, sub.Original, sub.Translated)
	}
	record["rendered"] = rendered
}

// decodeRecord parses line as exactly one JSON object. Numbers are kept
// as json.Number so numeric literals survive re-encoding unchanged.
func decodeRecord(line []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, false
	}
	// Trailing content after the object means this is not a clean JSONL
	// record.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return record, true
}

// encodeRecord re-encodes a record as a single JSON line. HTML escaping
// is disabled so source snippets in rendered output (`-->`, `&`, `<`)
// round-trip exactly.
func encodeRecord(record map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// cloneMap makes a shallow copy of m. Nested values that get modified
// are cloned separately before mutation.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
