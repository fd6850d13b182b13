package search

import (
	"fmt"
	"os"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

const (
	// DefaultLimit is the number of results returned when none is configured.
	DefaultLimit = 10

	// ExactScore is the fixed score of an exact-mode match. Fuzzy scores are
	// clamped below it.
	ExactScore = 1 << 20
)

// MatchMode selects how a query is compared against candidate names.
type MatchMode uint8

const (
	ModeFuzzy MatchMode = iota
	ModeExact
)

func (m MatchMode) String() string {
	if m == ModeExact {
		return "exact"
	}
	return "fuzzy"
}

// ParseMatchMode converts "fuzzy" or "exact" (any case) into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fuzzy":
		return ModeFuzzy, nil
	case "exact":
		return ModeExact, nil
	default:
		return ModeFuzzy, &ConfigError{Field: "match_mode", Value: s, Err: ErrInvalidMatchMode}
	}
}

// Query is the user's search term together with how it should be matched.
type Query struct {
	Text          string
	Mode          MatchMode
	CaseSensitive bool
}

// EntryFilter restricts which entry kinds are yielded.
type EntryFilter uint8

const (
	FilterBoth EntryFilter = iota
	FilterFilesOnly
	FilterDirsOnly
)

func (f EntryFilter) String() string {
	switch f {
	case FilterFilesOnly:
		return "files"
	case FilterDirsOnly:
		return "directories"
	default:
		return "all"
	}
}

// Accepts reports whether a candidate passes the filter.
func (f EntryFilter) Accepts(c Candidate) bool {
	switch f {
	case FilterFilesOnly:
		return !c.IsDir()
	case FilterDirsOnly:
		return c.IsDir()
	default:
		return true
	}
}

// IgnoreRules prune entries by name before they are matched or descended.
type IgnoreRules struct {
	// Dirs are directory names (case-insensitive, wildcards allowed).
	Dirs []string
	// Files are file name patterns such as "*.log" or "thumbs.db".
	Files []string
}

// IsEmpty reports whether no rule is configured.
func (r IgnoreRules) IsEmpty() bool {
	return len(r.Dirs) == 0 && len(r.Files) == 0
}

// Config is resolved once per invocation and never mutated during a search.
type Config struct {
	Root           string
	Hidden         bool
	FilesOnly      bool
	DirsOnly       bool
	Limit          int
	Parallel       bool
	Threads        int
	FollowSymlinks bool
	Ignore         IgnoreRules
	// MaxFileSize skips regular files larger than this many bytes. Zero disables
	// the check, which keeps stat calls off the traversal path.
	MaxFileSize int64
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(root string) Config {
	return Config{
		Root:           root,
		Limit:          DefaultLimit,
		FollowSymlinks: true,
	}
}

// Filter resolves the files-only/dirs-only flags.
func (c Config) Filter() EntryFilter {
	switch {
	case c.FilesOnly:
		return FilterFilesOnly
	case c.DirsOnly:
		return FilterDirsOnly
	default:
		return FilterBoth
	}
}

// Validate rejects contradictory or unusable configurations before any
// traversal starts.
func (c Config) Validate() error {
	if c.FilesOnly && c.DirsOnly {
		return &ConfigError{Field: "filter", Value: "files-only+dirs-only", Err: ErrConflictingFilters}
	}
	if c.Limit <= 0 {
		return &ConfigError{Field: "limit", Value: fmt.Sprint(c.Limit), Err: ErrInvalidLimit}
	}
	if c.Threads < 0 {
		return &ConfigError{Field: "threads", Value: fmt.Sprint(c.Threads), Err: ErrInvalidThreads}
	}
	if c.Root == "" {
		return &ConfigError{Field: "root", Value: c.Root, Err: ErrRootNotFound}
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigError{Field: "root", Value: c.Root, Err: ErrRootNotFound}
		}
		return &ConfigError{Field: "root", Value: c.Root, Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Field: "root", Value: c.Root, Err: ErrRootNotDir}
	}
	return nil
}

// Candidate is one filesystem entry encountered during traversal.
type Candidate struct {
	Path  string
	Name  string
	Kind  fsutil.Kind
	dir   bool
	entry os.DirEntry
}

// NewCandidate builds a candidate that is not backed by a directory listing.
// Metadata is fetched from path on demand.
func NewCandidate(path, name string, kind fsutil.Kind, isDir bool) Candidate {
	return Candidate{Path: path, Name: name, Kind: kind, dir: isDir}
}

// IsDir reports whether the candidate is a directory or a symlink resolving to one.
func (c Candidate) IsDir() bool {
	return c.dir
}

// Metadata fetches size and modification time. It performs a syscall on every
// call, so callers only use it when details are requested.
func (c Candidate) Metadata() (fsutil.Metadata, error) {
	if c.Kind == fsutil.KindSymlink || c.entry == nil {
		info, err := os.Stat(c.Path)
		if err != nil {
			return fsutil.Metadata{}, err
		}
		return fsutil.MetadataFromInfo(info), nil
	}
	info, err := c.entry.Info()
	if err != nil {
		return fsutil.Metadata{}, err
	}
	return fsutil.MetadataFromInfo(info), nil
}

// ScoredMatch pairs a candidate with its relevance. Positions are rune indexes
// into the NFC-normalised name and are meant for highlighting.
type ScoredMatch struct {
	Candidate
	Score     int
	Positions []int
}

// ResultSet is the ordered, limit-bounded output of a search.
type ResultSet []ScoredMatch

// Paths returns the result paths in order.
func (rs ResultSet) Paths() []string {
	out := make([]string, len(rs))
	for i, m := range rs {
		out[i] = m.Path
	}
	return out
}

// Report summarises a finished search.
type Report struct {
	FilesScanned    int
	DirsScanned     int
	TraversalErrors []error
	WorkerFailures  []error
	Workers         int
	Parallel        bool
	Cancelled       bool
	Elapsed         time.Duration
}

// Scanned returns the total number of entries considered.
func (r Report) Scanned() int {
	return r.FilesScanned + r.DirsScanned
}
