package model

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// ReasonSet is an unordered set of free-text deficiency causes.
//
// Members are NFC-normalized with runs of whitespace collapsed. Two reasons
// that differ only by case are the same member; the first spelling wins.
// Iteration order is deterministic (sorted by folded form).
type ReasonSet struct {
	members []reason
}

type reason struct {
	key     string // case-folded, used for identity and ordering
	display string
}

// ParseReasons builds a set from raw reason strings. An entry that is empty
// after normalization makes the whole set malformed.
func ParseReasons(raw []string) (ReasonSet, error) {
	var s ReasonSet
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		display := normalizeReason(r)
		if display == "" {
			return ReasonSet{}, apperrors.Newf(apperrors.CodeValidation, "malformed reason set: entry %d is empty", i)
		}
		key := cases.Fold().String(display)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.members = append(s.members, reason{key: key, display: display})
	}
	sort.Slice(s.members, func(i, j int) bool {
		return s.members[i].key < s.members[j].key
	})
	return s, nil
}

// MustParseReasons is ParseReasons for literals in tests and fixtures.
func MustParseReasons(raw ...string) ReasonSet {
	s, err := ParseReasons(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeReasons parses the stored encoding (a JSON list of strings).
// An empty column or JSON null decodes to the empty set.
func DecodeReasons(encoded string) (ReasonSet, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" || encoded == "null" {
		return ReasonSet{}, nil
	}
	var raw []string
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return ReasonSet{}, apperrors.Wrap(apperrors.CodeValidation, "malformed reason set", err)
	}
	return ParseReasons(raw)
}

// Encode returns the storage encoding of the set.
func (s ReasonSet) Encode() (string, error) {
	data, err := json.Marshal(s.Values())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Len returns the number of members.
func (s ReasonSet) Len() int {
	return len(s.members)
}

// Values returns the members in deterministic order. Never nil.
func (s ReasonSet) Values() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = m.display
	}
	return out
}

// Contains reports whether r is a member, ignoring case and normalization.
func (s ReasonSet) Contains(r string) bool {
	key := cases.Fold().String(normalizeReason(r))
	for _, m := range s.members {
		if m.key == key {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every member of s is a member of other.
func (s ReasonSet) SubsetOf(other ReasonSet) bool {
	for _, m := range s.members {
		if !other.Contains(m.display) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same members.
func (s ReasonSet) Equal(other ReasonSet) bool {
	return s.Len() == other.Len() && s.SubsetOf(other)
}

// MarshalJSON encodes the set as a JSON list.
func (s ReasonSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a JSON list into the set.
func (s *ReasonSet) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeReasons(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func normalizeReason(r string) string {
	return strings.Join(strings.Fields(norm.NFC.String(r)), " ")
}
