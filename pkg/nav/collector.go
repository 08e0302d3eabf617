// Package nav collects the (anchor, caption) entries used for the optional
// fieldset navigation menu.
package nav

// Entry is one menu item.
type Entry struct {
	Anchor  string
	Caption string
}

// Collector keeps entries in insertion order. Adding an anchor twice replaces
// the caption in place.
type Collector struct {
	entries []Entry
	index   map[string]int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{index: make(map[string]int)}
}

// Add records caption under anchor.
func (c *Collector) Add(caption, anchor string) {
	if i, ok := c.index[anchor]; ok {
		c.entries[i].Caption = caption
		return
	}
	c.index[anchor] = len(c.entries)
	c.entries = append(c.entries, Entry{Anchor: anchor, Caption: caption})
}

// Entries returns a copy of the collected entries.
func (c *Collector) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Collector) Len() int { return len(c.entries) }
