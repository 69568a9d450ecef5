package notice

// FieldDictionary maps merge-field names to display strings. Keys are
// exactly the RequiredMergeFields contract; values may be empty but are
// always present.
type FieldDictionary map[string]string

// Clone returns a copy of the dictionary
func (d FieldDictionary) Clone() FieldDictionary {
	out := make(FieldDictionary, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// GeneratedDocument describes one rendered notice artifact. A cache hit is
// materialized as a fresh copy in the output directory, so callers never hold
// a handle into the cache itself. Fields is empty when the document came from
// the cache; mapping only happens on a fresh render.
type GeneratedDocument struct {
	Path      string          `json:"path"`
	FileName  string          `json:"fileName"`
	Format    TemplateFormat  `json:"format"`
	FromCache bool            `json:"fromCache"`
	Fields    FieldDictionary `json:"fields,omitempty"`
}
