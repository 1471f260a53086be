package scratch

import (
	"fmt"
	"slices"
	"strings"
)

// AppendType selects which end of a list or file receives new items.
type AppendType int

const (
	Append AppendType = iota
	Prepend
)

func (t AppendType) String() string {
	switch t {
	case Append:
		return "APPEND"
	case Prepend:
		return "PREPEND"
	default:
		return fmt.Sprintf("AppendType(%d)", int(t))
	}
}

func ParseAppendType(value string) (AppendType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "APPEND":
		return Append, nil
	case "PREPEND":
		return Prepend, nil
	default:
		return Append, fmt.Errorf("unsupported append type %q (supported: append, prepend)", value)
	}
}

// DefaultScratchMeaning decides which scratch "open default" resolves to.
type DefaultScratchMeaning int

const (
	Topmost DefaultScratchMeaning = iota
	LastOpened
)

func (m DefaultScratchMeaning) String() string {
	switch m {
	case Topmost:
		return "TOPMOST"
	case LastOpened:
		return "LAST_OPENED"
	default:
		return fmt.Sprintf("DefaultScratchMeaning(%d)", int(m))
	}
}

func ParseDefaultScratchMeaning(value string) (DefaultScratchMeaning, error) {
	key := strings.ToUpper(strings.TrimSpace(value))
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "TOPMOST":
		return Topmost, nil
	case "LAST_OPENED":
		return LastOpened, nil
	default:
		return Topmost, fmt.Errorf("unsupported default scratch meaning %q (supported: topmost, last-opened)", value)
	}
}

// Shifts accepted by Config.Move.
const (
	Up   = -1
	Down = 1
)

// Config is an immutable snapshot of the scratch list and its policies.
// Every method returns a new value; the receiver's slices are never written to.
type Config struct {
	Scratches             []Scratch
	LastOpened            *Scratch
	ListenToClipboard     bool
	ClipboardAppendType   AppendType
	NewScratchAppendType  AppendType
	DefaultScratchMeaning DefaultScratchMeaning
}

// DefaultConfig is the configuration used when nothing has been persisted yet.
func DefaultConfig() Config {
	return Config{
		Scratches:             []Scratch{},
		LastOpened:            nil,
		ListenToClipboard:     false,
		ClipboardAppendType:   Append,
		NewScratchAppendType:  Append,
		DefaultScratchMeaning: Topmost,
	}
}

// With replaces the scratch list.
func (c Config) With(scratches []Scratch) Config {
	c.Scratches = cloneScratches(scratches)
	return c
}

// Add inserts scratch at the end or the front depending on NewScratchAppendType.
func (c Config) Add(scratch Scratch) Config {
	scratches := make([]Scratch, 0, len(c.Scratches)+1)
	switch c.NewScratchAppendType {
	case Append:
		scratches = append(scratches, c.Scratches...)
		scratches = append(scratches, scratch)
	case Prepend:
		scratches = append(scratches, scratch)
		scratches = append(scratches, c.Scratches...)
	default:
		panic(fmt.Sprintf("unexpected new scratch append type %v", c.NewScratchAppendType))
	}
	c.Scratches = scratches
	return c
}

// Without removes the first element equal to scratch.
func (c Config) Without(scratch Scratch) Config {
	index := c.IndexOf(scratch)
	if index == -1 {
		return c
	}
	scratches := make([]Scratch, 0, len(c.Scratches)-1)
	scratches = append(scratches, c.Scratches[:index]...)
	scratches = append(scratches, c.Scratches[index+1:]...)
	c.Scratches = scratches
	return c
}

// Replace swaps every occurrence of old for replacement, keeping positions,
// and follows the rename in LastOpened.
func (c Config) Replace(old, replacement Scratch) Config {
	scratches := make([]Scratch, len(c.Scratches))
	for i, s := range c.Scratches {
		if s.Equal(old) {
			scratches[i] = replacement
		} else {
			scratches[i] = s
		}
	}
	c.Scratches = scratches
	if c.LastOpened != nil && c.LastOpened.Equal(old) {
		c.LastOpened = &replacement
	}
	return c
}

// Move shifts scratch by shift positions on a ring the size of the list.
// A scratch that is not in the list leaves the config unchanged.
func (c Config) Move(scratch Scratch, shift int) Config {
	oldIndex := c.IndexOf(scratch)
	if oldIndex == -1 {
		return c
	}
	size := len(c.Scratches)
	newIndex := ((oldIndex+shift)%size + size) % size

	scratches := slices.Clone(c.Scratches)
	moved := scratches[oldIndex]
	scratches = slices.Delete(scratches, oldIndex, oldIndex+1)
	scratches = slices.Insert(scratches, newIndex, moved)
	c.Scratches = scratches
	return c
}

func (c Config) WithListenToClipboard(value bool) Config {
	c.ListenToClipboard = value
	return c
}

// WithDefaultScratchMeaning is a no-op for nil so optional persisted fields keep defaults.
func (c Config) WithDefaultScratchMeaning(value *DefaultScratchMeaning) Config {
	if value == nil {
		return c
	}
	c.DefaultScratchMeaning = *value
	return c
}

func (c Config) WithClipboard(value *AppendType) Config {
	if value == nil {
		return c
	}
	c.ClipboardAppendType = *value
	return c
}

func (c Config) WithNewScratch(value *AppendType) Config {
	if value == nil {
		return c
	}
	c.NewScratchAppendType = *value
	return c
}

// WithLastOpened sets or, for nil, clears the last opened scratch.
func (c Config) WithLastOpened(value *Scratch) Config {
	if value == nil {
		c.LastOpened = nil
		return c
	}
	s := *value
	c.LastOpened = &s
	return c
}

// DefaultScratch resolves the scratch opened by "open default".
// The list must not be empty.
func (c Config) DefaultScratch() Scratch {
	switch c.DefaultScratchMeaning {
	case Topmost:
		return c.Scratches[0]
	case LastOpened:
		if c.LastOpened != nil {
			return *c.LastOpened
		}
		return c.Scratches[0]
	default:
		panic(fmt.Sprintf("unexpected default scratch meaning %v", c.DefaultScratchMeaning))
	}
}

func (c Config) IndexOf(scratch Scratch) int {
	for i, s := range c.Scratches {
		if s.Equal(scratch) {
			return i
		}
	}
	return -1
}

func (c Config) Contains(scratch Scratch) bool {
	return c.IndexOf(scratch) != -1
}

func (c Config) FindByFileName(fileName string) (Scratch, bool) {
	for _, s := range c.Scratches {
		if s.FileName() == fileName {
			return s, true
		}
	}
	return Scratch{}, false
}

// Equal compares all fields structurally.
func (c Config) Equal(other Config) bool {
	if c.ListenToClipboard != other.ListenToClipboard ||
		c.ClipboardAppendType != other.ClipboardAppendType ||
		c.NewScratchAppendType != other.NewScratchAppendType ||
		c.DefaultScratchMeaning != other.DefaultScratchMeaning {
		return false
	}
	if (c.LastOpened == nil) != (other.LastOpened == nil) {
		return false
	}
	if c.LastOpened != nil && !c.LastOpened.Equal(*other.LastOpened) {
		return false
	}
	return sameScratches(c.Scratches, other.Scratches)
}

func sameScratches(a, b []Scratch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func cloneScratches(scratches []Scratch) []Scratch {
	if scratches == nil {
		return []Scratch{}
	}
	return slices.Clone(scratches)
}
