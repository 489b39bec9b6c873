package ner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/arnix/ner-radio/internal/domain"
)

const (
	stateElementID = "preloaded-state"
	statePrefix    = "window.__PRELOADED_STATE__="
)

// bareKeyPattern matches an identifier directly after "{" or "," and directly
// before ":". It is a heuristic over the minified object literal, not a
// parser; keys containing these delimiters as substrings are out of scope.
var bareKeyPattern = regexp.MustCompile(`([{,])([a-zA-Z][a-zA-Z0-9]*):`)

// State is the decoded application state embedded in a program page.
type State struct {
	root map[string]any
}

// ExtractState locates the preloaded state blob in a program page, repairs it
// into parseable JSON and decodes it.
func ExtractState(pageHTML string) (*State, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse program page: %w", err)
	}

	node := doc.Find("#" + stateElementID)
	if node.Length() == 0 {
		return nil, ErrMalformedPage
	}

	return DecodeState(node.First().Text())
}

// DecodeState repairs a raw state script into parseable JSON and decodes it.
// The input may still carry the JS global-assignment prefix.
func DecodeState(script string) (*State, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(script), statePrefix)
	repaired := RepairJSON(raw)

	var root map[string]any
	if err := json5.Unmarshal([]byte(repaired), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if root == nil {
		return nil, ErrDecode
	}
	return &State{root: root}, nil
}

// RepairJSON rewrites the minified JS object literal into JSON the lenient
// decoder accepts: the boolean-shorthand tokens !0/!1 are replaced and bare
// object keys are quoted. The !0/!1 rewrite is a blunt global substitution
// (it would also hit those byte pairs inside strings); kept as-is because the
// station state has never carried them elsewhere.
func RepairJSON(raw string) string {
	repaired := strings.ReplaceAll(raw, "!0", "0")
	repaired = strings.ReplaceAll(repaired, "!1", "1")
	return bareKeyPattern.ReplaceAllString(repaired, `$1"$2":`)
}

// lookup walks nested objects by key.
func (s *State) lookup(path ...string) (any, bool) {
	var cur any = s.root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ShowList returns the typed show entries from the state. Individual entries
// that do not decode are skipped, so a well-formed list never fails mid-way.
func (s *State) ShowList() ([]*domain.ShowEntry, error) {
	node, ok := s.lookup("reducers", "programList", "data")
	if !ok {
		return nil, fmt.Errorf("%w: missing show list", ErrDecode)
	}
	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: show list is not a list", ErrDecode)
	}

	entries := make([]*domain.ShowEntry, 0, len(items))
	for _, item := range items {
		buf, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var entry domain.ShowEntry
		if err := json.Unmarshal(buf, &entry); err != nil {
			slog.Debug("Skipping undecodable show entry", "error", err)
			continue
		}
		entry.Raw = buf
		entries = append(entries, &entry)
	}
	return entries, nil
}

// ScheduleText returns the free-text weekly schedule description.
func (s *State) ScheduleText() (string, error) {
	node, ok := s.lookup("reducers", "program", "getItem", "time", "text")
	if !ok {
		return "", fmt.Errorf("%w: missing schedule description", ErrDecode)
	}
	text, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("%w: schedule description is not text", ErrDecode)
	}
	return text, nil
}

// RawJSON renders the whole decoded state, for debug dumps.
func (s *State) RawJSON() ([]byte, error) {
	return json.MarshalIndent(s.root, "", "  ")
}
