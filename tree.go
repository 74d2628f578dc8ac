package discogen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/sdboyer/discogen/generrors"
)

// Tree is an in-memory file tree that supports batch-writing its contents to
// the real filesystem, or batch-comparing its contents with it.
//
// The normal behavior of a generator is to write files to disk. In CI the
// same tree can instead be checked against what is already on disk, so that
// committed generated code is known to be current. Tree supports these
// through [Tree.Write] and [Tree.Verify] respectively.
//
// Tree is stateless with respect to disk: files left behind by inputs that no
// longer exist are not noticed.
//
// Artifacts cannot be removed once added. A path conflict when adding or
// merging is an error.
type Tree struct {
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	data  []byte
	owner string
}

// MissingError indicates a generated file should exist on disk, but does
// not.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: generated file should exist, but does not", e.Path)
}

// DriftError indicates the contents of a file on disk differ from those in
// the Tree.
type DriftError struct {
	Path string
	// Diff is a human-readable diff from disk contents to generated contents.
	Diff string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%s would have changed:\n\n%s", e.Path, e.Diff)
}

// NewTree creates a new, empty Tree.
func NewTree() *Tree {
	return &Tree{
		entries: make(map[string]entry),
	}
}

// Len returns the number of artifacts in the tree.
func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Get returns the contents stored at the relative path p.
func (t *Tree) Get(p string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, has := t.entries[p]
	return e.data, has
}

// Add adds one or more artifacts to the Tree. An error is returned if any of
// them would conflict with an artifact already in the Tree, or with each
// other; in that case nothing is added.
func (t *Tree) Add(owner string, al ...Artifact) error {
	t.mu.Lock()
	err := t.add(owner, al...)
	t.mu.Unlock()
	return err
}

func (t *Tree) add(owner string, al ...Artifact) error {
	if err := Artifacts(al).Validate(); err != nil {
		return err
	}

	var result *multierror.Error
	for _, a := range al {
		if prev, has := t.entries[a.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("cannot create %s for %q, already created for %q", a.RelativePath, owner, prev.owner))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for _, a := range al {
		t.entries[a.RelativePath] = entry{data: a.Data, owner: owner}
	}
	return nil
}

// Artifacts returns the contents of the tree ordered by path.
func (t *Tree) Artifacts() Artifacts {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := t.toSlice()
	al := make(Artifacts, len(items))
	for i, it := range items {
		al[i] = Artifact{RelativePath: it.path, Data: it.data}
	}
	return al
}

type item struct {
	path  string
	data  []byte
	owner string
}

func (t *Tree) toSlice() []item {
	sl := make([]item, 0, len(t.entries))
	for k, v := range t.entries {
		sl = append(sl, item{path: k, data: v.data, owner: v.owner})
	}
	sort.Slice(sl, func(i, j int) bool {
		return sl[i].path < sl[j].path
	})
	return sl
}

// Write writes every artifact beneath prefix, in path order, creating
// missing directories. prefix may be absolute.
//
// Writing stops at the first failure, which is returned as a
// [generrors.IOError]. Files written before the failure are left in place.
func (t *Tree) Write(ctx context.Context, prefix string) error {
	t.mu.Lock()
	items := t.toSlice()
	t.mu.Unlock()

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := filepath.Join(prefix, it.path)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return &generrors.IOError{Op: "mkdir", Path: filepath.Dir(p), Cause: err}
		}
		if err := os.WriteFile(p, it.data, 0o644); err != nil {
			return &generrors.IOError{Op: "write", Path: p, Cause: err}
		}
	}
	return nil
}

// Verify checks the contents of each artifact against the filesystem beneath
// prefix. Every missing or differing file is reported, as [MissingError] and
// [DriftError] values aggregated in one error.
func (t *Tree) Verify(ctx context.Context, prefix string) error {
	t.mu.Lock()
	items := t.toSlice()
	t.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(12)
	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	report := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	for _, it := range items {
		g.Go(func() error {
			p := filepath.Join(prefix, it.path)
			ob, err := os.ReadFile(p) //nolint:gosec
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					report(&MissingError{Path: p})
					return nil
				}
				return &generrors.IOError{Op: "read", Path: p, Cause: err}
			}
			if d := cmp.Diff(string(ob), string(it.data)); d != "" {
				report(&DriftError{Path: p, Diff: d})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("verifying tree: %w", err)
	}

	return result.ErrorOrNil()
}
