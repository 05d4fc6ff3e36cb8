package metrics

// Count tallies occurrences of one syntactic category, split by whether each
// occurrence carries an unsafe marker or sits inside an unsafe context.
type Count struct {
	Safe   uint64 `yaml:"safe" json:"safe"`
	Unsafe uint64 `yaml:"unsafe" json:"unsafe"`
}

// Count increments the side selected by isUnsafe.
func (c *Count) Count(isUnsafe bool) {
	if isUnsafe {
		c.Unsafe++
		return
	}
	c.Safe++
}

// Total returns the combined safe and unsafe tally.
func (c Count) Total() uint64 {
	return c.Safe + c.Unsafe
}

// Add returns the element-wise sum of two counts.
func (c Count) Add(other Count) Count {
	return Count{
		Safe:   c.Safe + other.Safe,
		Unsafe: c.Unsafe + other.Unsafe,
	}
}

// CounterBlock groups the syntactic categories tracked by the unsafety
// walker: free-standing functions, executable expressions, trait
// declarations, trait implementations and methods.
type CounterBlock struct {
	Functions  Count `yaml:"functions" json:"functions"`
	Exprs      Count `yaml:"exprs" json:"exprs"`
	ItemImpls  Count `yaml:"itemImpls" json:"itemImpls"`
	ItemTraits Count `yaml:"itemTraits" json:"itemTraits"`
	Methods    Count `yaml:"methods" json:"methods"`
}

// Add returns the category-wise sum of two counter blocks.
func (b CounterBlock) Add(other CounterBlock) CounterBlock {
	return CounterBlock{
		Functions:  b.Functions.Add(other.Functions),
		Exprs:      b.Exprs.Add(other.Exprs),
		ItemImpls:  b.ItemImpls.Add(other.ItemImpls),
		ItemTraits: b.ItemTraits.Add(other.ItemTraits),
		Methods:    b.Methods.Add(other.Methods),
	}
}

// HasUnsafe reports whether any category recorded an unsafe occurrence.
func (b *CounterBlock) HasUnsafe() bool {
	return b.Functions.Unsafe > 0 ||
		b.Exprs.Unsafe > 0 ||
		b.ItemImpls.Unsafe > 0 ||
		b.ItemTraits.Unsafe > 0 ||
		b.Methods.Unsafe > 0
}

// FileMetrics holds the outcome of scanning a single compilation unit.
// ForbidsUnsafe records a crate or file level forbid(unsafe_code)
// annotation; it is informational and independent of the counters, so a
// forbid annotation coexisting with nonzero unsafe counts is reported as is.
type FileMetrics struct {
	Path          string       `yaml:"path,omitempty" json:"path,omitempty"`
	Digest        uint64       `yaml:"digest,omitempty" json:"digest,omitempty"`
	Counters      CounterBlock `yaml:"counters" json:"counters"`
	ForbidsUnsafe bool         `yaml:"forbidsUnsafe" json:"forbidsUnsafe"`
}

// CrateMetrics aggregates per-file metrics for one crate.
type CrateMetrics struct {
	Name          string         `yaml:"name,omitempty" json:"name,omitempty"`
	Root          string         `yaml:"root,omitempty" json:"root,omitempty"`
	Files         []*FileMetrics `yaml:"files,omitempty" json:"files,omitempty"`
	Totals        CounterBlock   `yaml:"totals" json:"totals"`
	ForbidsUnsafe bool           `yaml:"forbidsUnsafe" json:"forbidsUnsafe"`
}

// AddFile appends a file outcome and folds its counters into the totals.
func (c *CrateMetrics) AddFile(file *FileMetrics) {
	c.Files = append(c.Files, file)
	c.Totals = c.Totals.Add(file.Counters)
}
