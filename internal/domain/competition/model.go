package competition

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// UnknownPriority ranks competitions missing from the catalog after every known one.
	UnknownPriority = 6
	DefaultFlag     = "🌎"
)

var ErrInvalidCatalog = errors.New("invalid competition catalog")

type Competition struct {
	ID          int
	Name        string
	Country     string
	Type        string
	Description string
	Priority    int
	Active      bool
	Flag        string
}

type PriorityGroup struct {
	Name        string
	Color       string
	Description string
}

// Catalog maps competition names to their metadata.
type Catalog struct {
	byName map[string]Competition
	groups map[int]PriorityGroup
}

// NewCatalog validates the mapping: names must be present and unique, priorities
// positive, and every priority must have a group when groups are given.
func NewCatalog(items []Competition, groups map[int]PriorityGroup) (Catalog, error) {
	byName := make(map[string]Competition, len(items))
	var problems []string
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			problems = append(problems, fmt.Sprintf("entry %d (id=%d) has no name", i, item.ID))
			continue
		}
		if _, dup := byName[item.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate competition %q", item.Name))
			continue
		}
		if item.Priority < 1 {
			problems = append(problems, fmt.Sprintf("competition %q has priority %d", item.Name, item.Priority))
		}
		if len(groups) > 0 {
			if _, ok := groups[item.Priority]; !ok {
				problems = append(problems, fmt.Sprintf("competition %q references missing priority group %d", item.Name, item.Priority))
			}
		}
		byName[item.Name] = item
	}
	if len(problems) > 0 {
		return Catalog{}, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}

	copied := make(map[int]PriorityGroup, len(groups))
	for k, v := range groups {
		copied[k] = v
	}
	return Catalog{byName: byName, groups: copied}, nil
}

// Lookup returns the active competition with the given name.
func (c Catalog) Lookup(name string) (Competition, bool) {
	item, ok := c.byName[strings.TrimSpace(name)]
	if !ok || !item.Active {
		return Competition{}, false
	}
	return item, true
}

// Priority returns UnknownPriority and false for names that are absent or inactive.
func (c Catalog) Priority(name string) (int, bool) {
	item, ok := c.Lookup(name)
	if !ok {
		return UnknownPriority, false
	}
	return item.Priority, true
}

func (c Catalog) Flag(name string) string {
	item, ok := c.Lookup(name)
	if !ok || strings.TrimSpace(item.Flag) == "" {
		return DefaultFlag
	}
	return item.Flag
}

func (c Catalog) Group(priority int) (PriorityGroup, bool) {
	g, ok := c.groups[priority]
	return g, ok
}

func (c Catalog) Len() int {
	return len(c.byName)
}

// Competitions lists active competitions by priority, then name.
func (c Catalog) Competitions() []Competition {
	out := make([]Competition, 0, len(c.byName))
	for _, item := range c.byName {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}
