package entities

// Section identifies which manifest mapping declares a dependency.
type Section string

const (
	SectionDirect      Section = "dependencies"
	SectionDevelopment Section = "devDependencies"
)

// sentinelVersion stands in for a dependency declared without a usable specifier.
const sentinelVersion = "0.0.0"

// DependencyRecord is one declared dependency as read from the manifest.
type DependencyRecord struct {
	Name         string
	CurrentRange string // raw specifier, e.g. "^1.2.0"
	Section      Section
}

// DependencySnapshot is the immutable view of a manifest's dependencies for a single run.
// Records keep declaration order: direct dependencies first, then development ones.
type DependencySnapshot struct {
	records []DependencyRecord
	index   map[string]int
}

// NewDependencySnapshot builds a snapshot from records. When a name is declared in
// both sections the first occurrence wins, matching how the manifest is mutated.
func NewDependencySnapshot(records []DependencyRecord) *DependencySnapshot {
	snapshot := &DependencySnapshot{
		records: make([]DependencyRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, record := range records {
		if _, exists := snapshot.index[record.Name]; exists {
			continue
		}
		snapshot.index[record.Name] = len(snapshot.records)
		snapshot.records = append(snapshot.records, record)
	}
	return snapshot
}

// Records returns a copy of the snapshot's records in declaration order.
func (s *DependencySnapshot) Records() []DependencyRecord {
	result := make([]DependencyRecord, len(s.records))
	copy(result, s.records)
	return result
}

// Lookup returns the record for name, if declared.
func (s *DependencySnapshot) Lookup(name string) (DependencyRecord, bool) {
	idx, ok := s.index[name]
	if !ok {
		return DependencyRecord{}, false
	}
	return s.records[idx], true
}

// Len returns the number of declared dependencies.
func (s *DependencySnapshot) Len() int { return len(s.records) }

// Filter returns a snapshot restricted by an allow-list and a deny-list of names.
// An empty allow-list keeps everything.
func (s *DependencySnapshot) Filter(only, reject []string) *DependencySnapshot {
	allowed := toSet(only)
	denied := toSet(reject)

	kept := make([]DependencyRecord, 0, len(s.records))
	for _, record := range s.records {
		if len(allowed) > 0 {
			if _, ok := allowed[record.Name]; !ok {
				continue
			}
		}
		if _, ok := denied[record.Name]; ok {
			continue
		}
		kept = append(kept, record)
	}
	return NewDependencySnapshot(kept)
}

// ResolvedCandidate is a dependency the resolver reports as updatable.
type ResolvedCandidate struct {
	Name          string
	LatestAllowed string
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
