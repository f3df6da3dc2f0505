// Package group finds sets of chunk files in a directory by their shared
// original name and checks that a set is complete.
package group

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sansecio/splitmerge/internal/chunkname"
	"github.com/sansecio/splitmerge/internal/fault"
)

// Member is one chunk file of a group.
type Member struct {
	Path  string
	Index int
}

// Group is the set of chunks sharing one key (the original filename).
type Group struct {
	Key     string
	Members []Member // sorted by Index
}

// Valid reports whether the group holds at least two chunks numbered
// 1..n with no gaps or duplicates.
func (g *Group) Valid() bool {
	if len(g.Members) < 2 {
		return false
	}
	for i, m := range g.Members {
		if m.Index != i+1 {
			return false
		}
	}
	return true
}

// Paths returns member paths in index order.
func (g *Group) Paths() []string {
	paths := make([]string, len(g.Members))
	for i, m := range g.Members {
		paths[i] = m.Path
	}
	return paths
}

// Detector scans directories for chunk groups. When Match is set only file
// names matching it are considered.
type Detector struct {
	Match glob.Glob
}

// CompileMatch compiles a --match pattern. An empty pattern yields nil.
func CompileMatch(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &fault.Error{Kind: fault.InvalidConfiguration, Op: "match", Msg: "invalid match pattern " + pattern, Err: err}
	}
	return g, nil
}

// Scan groups the regular files of dir whose names parse as chunk names.
func (d Detector) Scan(dir string) (map[string]*Group, error) {
	const op = "scan"

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fault.New(fault.InvalidInput, op, dir, "directory does not exist")
		}
		return nil, fault.IO(op, dir, err)
	}

	groups := make(map[string]*Group)
	for _, e := range entries {
		name := e.Name()
		if d.Match != nil && !d.Match.Match(name) {
			continue
		}
		n, ok := chunkname.Parse(name)
		if !ok {
			continue
		}
		if !isRegular(dir, e) {
			continue
		}
		key := n.Key()
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key}
			groups[key] = g
		}
		g.Members = append(g.Members, Member{Path: filepath.Join(dir, name), Index: n.Index})
	}

	for _, g := range groups {
		sort.SliceStable(g.Members, func(i, j int) bool {
			return g.Members[i].Index < g.Members[j].Index
		})
	}
	return groups, nil
}

// Target picks the single valid group in dir and returns its key and chunk
// paths in merge order. Zero or several valid groups is an AmbiguousGroup
// failure.
func (d Detector) Target(dir string) (string, []string, error) {
	const op = "detect"

	groups, err := d.Scan(dir)
	if err != nil {
		return "", nil, err
	}

	var valid []string
	for key, g := range groups {
		if g.Valid() {
			valid = append(valid, key)
		}
	}
	sort.Strings(valid)

	switch len(valid) {
	case 0:
		return "", nil, fault.New(fault.AmbiguousGroup, op, dir,
			"no valid chunk group found (need at least 2 consecutive chunks like name_01.ext, name_02.ext)")
	case 1:
		return valid[0], groups[valid[0]].Paths(), nil
	default:
		return "", nil, &fault.Error{
			Kind:       fault.AmbiguousGroup,
			Op:         op,
			Path:       dir,
			Candidates: valid,
			Msg:        "multiple chunk groups found, keep one set per directory or use --match: " + strings.Join(valid, ", "),
		}
	}
}

// isRegular reports whether e is a regular file, following symlinks.
func isRegular(dir string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.Mode().IsRegular()
}
