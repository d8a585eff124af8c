package index

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func manifestOf(entries map[string]Entry) *Manifest {
	m := NewManifest()
	for path, e := range entries {
		m.Add(path, e)
	}
	return m
}

func TestDiff(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first export is all new", func(t *testing.T) {
		current := manifestOf(map[string]Entry{
			"index.html":     {Hash: "a"},
			"notes/one.html": {Hash: "b"},
		})

		c := Diff(NewManifest(), current)

		assert.Equal(t, []string{"index.html", "notes/one.html"}, c.New)
		assert.Empty(t, c.Updated)
		assert.Empty(t, c.Unchanged)
		assert.Empty(t, c.Deleted)
	})

	t.Run("hash decides when both sides have one", func(t *testing.T) {
		prev := manifestOf(map[string]Entry{
			"a.html": {Hash: "h1", Size: 10},
			"b.html": {Hash: "h2", Size: 20},
		})
		cur := manifestOf(map[string]Entry{
			"a.html": {Hash: "h1", Size: 99}, // size differs, hash equal
			"b.html": {Hash: "h3", Size: 20},
		})

		c := Diff(prev, cur)

		assert.Equal(t, []string{"a.html"}, c.Unchanged)
		assert.Equal(t, []string{"b.html"}, c.Updated)
	})

	t.Run("size and mtime decide without hashes", func(t *testing.T) {
		prev := manifestOf(map[string]Entry{
			"img/a.png": {Size: 100, ModTime: base},
			"img/b.png": {Size: 100, ModTime: base},
			"img/c.png": {Size: 100, ModTime: base},
		})
		cur := manifestOf(map[string]Entry{
			"img/a.png": {Size: 100, ModTime: base},
			"img/b.png": {Size: 101, ModTime: base},
			"img/c.png": {Size: 100, ModTime: base.Add(time.Minute)},
		})

		c := Diff(prev, cur)

		assert.Equal(t, []string{"img/a.png"}, c.Unchanged)
		assert.Equal(t, []string{"img/b.png", "img/c.png"}, c.Updated)
	})

	t.Run("deleted excludes protected fonts", func(t *testing.T) {
		prev := manifestOf(map[string]Entry{
			"old.html":           {Hash: "x"},
			"fonts/body.woff2":   {Hash: "y"},
			"fonts/heading.TTF":  {Hash: "z"},
			"assets/diagram.png": {Hash: "w"},
		})
		cur := manifestOf(map[string]Entry{})

		c := Diff(prev, cur)

		assert.Equal(t, []string{"assets/diagram.png", "old.html"}, c.Deleted)
		assert.Equal(t, []string{"fonts/body.woff2", "fonts/heading.TTF"}, c.SkippedProtected)
	})
}

func TestIsProtected(t *testing.T) {
	t.Parallel()

	assert.True(t, IsProtected("fonts/a.woff"))
	assert.True(t, IsProtected("A.WOFF2"))
	assert.True(t, IsProtected("x.eot"))
	assert.False(t, IsProtected("page.html"))
	assert.False(t, IsProtected("fonts/readme.md"))
}

// TestDiffPartition checks the partition invariant over generated manifests:
// the three current-side sets are pairwise disjoint and cover exactly the
// current set, and deleted plus skipped-protected equals previous minus
// current.
func TestDiffPartition(t *testing.T) {
	t.Parallel()

	pathGen := rapid.SampledFrom([]string{
		"index.html", "a.html", "b.html", "notes/c.html",
		"assets/img.png", "fonts/f.woff", "fonts/g.ttf", "media/clip.mp4",
	})
	entryGen := rapid.Custom(func(t *rapid.T) Entry {
		return Entry{
			Size: rapid.Int64Range(0, 1000).Draw(t, "size"),
			Hash: rapid.SampledFrom([]string{"", "h1", "h2", "h3"}).Draw(t, "hash"),
		}
	})
	manifestGen := rapid.Custom(func(t *rapid.T) *Manifest {
		return manifestOf(rapid.MapOf(pathGen, entryGen).Draw(t, "files"))
	})

	rapid.Check(t, func(t *rapid.T) {
		previous := manifestGen.Draw(t, "previous")
		current := manifestGen.Draw(t, "current")

		c := Diff(previous, current)

		seen := map[string]string{}
		for set, paths := range map[string][]string{
			"new":       c.New,
			"updated":   c.Updated,
			"unchanged": c.Unchanged,
			"deleted":   c.Deleted,
			"protected": c.SkippedProtected,
		} {
			for _, p := range paths {
				if other, dup := seen[p]; dup {
					t.Fatalf("path %q in both %s and %s", p, other, set)
				}
				seen[p] = set
			}
		}

		if got, want := c.Total(), len(current.Files); got != want {
			t.Fatalf("current-side sets cover %d paths, current set has %d", got, want)
		}
		for p := range current.Files {
			set, ok := seen[p]
			if !ok || set == "deleted" || set == "protected" {
				t.Fatalf("current path %q landed in %q", p, set)
			}
		}

		for _, p := range c.Deleted {
			if _, inCurrent := current.Files[p]; inCurrent {
				t.Fatalf("deleted path %q is still wanted", p)
			}
			if _, inPrev := previous.Files[p]; !inPrev {
				t.Fatalf("deleted path %q was never produced", p)
			}
			if IsProtected(p) {
				t.Fatalf("protected path %q reached the deleted set", p)
			}
		}
	})
}

func TestManifestRoundTrip(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	m := NewManifest()
	m.RunID = "run-1"
	for i := range 5 {
		m.Add(fmt.Sprintf("notes/n%d.html", i), Entry{
			Size:    int64(i * 10),
			ModTime: time.Date(2026, 3, 1, 12, i, 0, 0, time.UTC),
			Hash:    fmt.Sprintf("h%d", i),
		})
	}

	require.NoError(t, m.Persist(dest))
	loaded := Load(dest, nil)

	assert.Equal(t, m.Files, loaded.Files)
	assert.Equal(t, "run-1", loaded.RunID)

	// Round-tripped manifest diffs clean against itself.
	c := Diff(loaded, m)
	assert.Len(t, c.Unchanged, 5)
	assert.Empty(t, c.New)
	assert.Empty(t, c.Updated)
	assert.Empty(t, c.Deleted)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("absent manifest means first export", func(t *testing.T) {
		m := Load(t.TempDir(), nil)
		assert.Empty(t, m.Files)
	})

	t.Run("corrupt manifest means first export", func(t *testing.T) {
		dest := t.TempDir()
		good := NewManifest()
		good.Add("a.html", Entry{Hash: "x"})
		require.NoError(t, good.Persist(dest))

		require.NoError(t, writeCorruptManifest(dest))
		m := Load(dest, nil)
		assert.Empty(t, m.Files)
	})
}
