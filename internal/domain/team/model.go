package team

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRoster = errors.New("invalid roster")

// Entry is the static metadata of one team. Name is the join key against game records.
type Entry struct {
	ID         string
	Name       string
	Logo       string
	Conference string
	Division   string
}

// Roster is the ordered list of known teams of a league.
type Roster struct {
	entries []Entry
	byName  map[string]int
}

// NewRoster rejects empty and duplicate team names.
func NewRoster(entries []Entry) (Roster, error) {
	byName := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			return Roster{}, fmt.Errorf("%w: entry %d has no team name", ErrInvalidRoster, i)
		}
		if _, dup := byName[entry.Name]; dup {
			return Roster{}, fmt.Errorf("%w: duplicate team %q", ErrInvalidRoster, entry.Name)
		}
		byName[entry.Name] = len(out)
		out = append(out, entry)
	}
	return Roster{entries: out, byName: byName}, nil
}

func (r Roster) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r Roster) Len() int {
	return len(r.entries)
}

func (r Roster) Lookup(name string) (Entry, bool) {
	idx, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

func (r Roster) Has(name string) bool {
	_, ok := r.byName[strings.TrimSpace(name)]
	return ok
}
