package models

// PresetField is a single key/value pair from a preset's FILTER section.
type PresetField struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// Preset is a named, ordered set of screener filter criteria.
// Field order follows the source file and is preserved on the wire.
type Preset struct {
	Name   string        `json:"name"`
	Fields []PresetField `json:"fields"`
}

// Get returns the value of the first field named key.
func (p *Preset) Get(key string) (string, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Len returns the number of fields.
func (p *Preset) Len() int { return len(p.Fields) }
