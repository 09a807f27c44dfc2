package nbt

import (
	"testing"
)

// buildChunkTree builds root "A" containing compound "B" (with leaf "C")
// and compound "D"
func buildChunkTree() []byte {
	w := &tagWriter{}
	w.beginCompound("A").
		beginCompound("B").
		intTag("C", 42).
		endCompound().
		beginCompound("D").
		endCompound().
		endCompound()
	return w.bytes()
}

func TestParser_PreOrderWalk(t *testing.T) {
	src := newSource(buildChunkTree())

	var visited []string
	NewParser(src).Parse(VisitorFuncs{
		Compound: func(name string, compound *Tag) bool {
			visited = append(visited, name)
			return true
		},
		Error: func(err error) {
			t.Fatalf("unexpected error: %v", err)
		},
	})

	want := []string{"A", "B", "D"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}

	if !src.closed {
		t.Error("source must be closed after a successful parse")
	}
}

func TestParser_CompoundCallbackBeforeDescent(t *testing.T) {
	src := newSource(buildChunkTree())

	sawBViaParent := false
	NewParser(src).Parse(VisitorFuncs{
		Compound: func(name string, compound *Tag) bool {
			if name == "A" {
				// Immediate contents are fully materialized at callback time
				if compound.Child("B") == nil || compound.Child("D") == nil {
					t.Error("compound A delivered without materialized children")
				}
				sawBViaParent = true
			}
			return true
		},
	})

	if !sawBViaParent {
		t.Fatal("compound A was never visited")
	}
}

func TestParser_EarlyTermination(t *testing.T) {
	src := newSource(buildChunkTree())

	calls := 0
	errored := false
	NewParser(src).Parse(VisitorFuncs{
		Compound: func(name string, compound *Tag) bool {
			calls++
			return calls < 2 // stop on the second compound
		},
		Error: func(err error) { errored = true },
	})

	if calls != 2 {
		t.Errorf("compound callbacks = %d, want exactly 2", calls)
	}
	if errored {
		t.Error("early termination must not report an error")
	}
	if !src.closed {
		t.Error("source must be closed after early termination")
	}
}

func TestParser_ListCallback(t *testing.T) {
	w := &tagWriter{}
	w.beginCompound("root").
		beginIntList("Positions", []int32{1, 2}).
		beginIntList("Motion", []int32{3}).
		endCompound()

	var lists []string
	NewParser(newSource(w.bytes())).Parse(VisitorFuncs{
		List: func(name string, list *Tag) bool {
			lists = append(lists, name)
			return name != "Positions" // stop after the first list
		},
	})

	if len(lists) != 1 || lists[0] != "Positions" {
		t.Errorf("list callbacks = %v, want [Positions]", lists)
	}
}

func TestParser_TruncatedStream(t *testing.T) {
	full := buildChunkTree()
	src := newSource(full[:len(full)-6])

	errCount := 0
	NewParser(src).Parse(VisitorFuncs{
		Error: func(err error) { errCount++ },
	})

	if errCount != 1 {
		t.Errorf("error callbacks = %d, want exactly 1", errCount)
	}
	if !src.closed {
		t.Error("source must be closed after a decode fault")
	}
}

func TestParser_NonCompoundRoot(t *testing.T) {
	w := &tagWriter{}
	w.intTag("lonely", 1)

	var got error
	src := newSource(w.bytes())
	NewParser(src).Parse(VisitorFuncs{
		Error: func(err error) { got = err },
	})

	if got == nil {
		t.Fatal("expected an error for a non-compound root")
	}
	if !src.closed {
		t.Error("source must be closed")
	}
}

func TestExtractPath_Match(t *testing.T) {
	src := newSource(buildChunkTree())

	tag, ok := ExtractPath(src, "A.B")
	if !ok {
		t.Fatal("ExtractPath(A.B) = absent, want match")
	}
	if tag.Name != "B" {
		t.Errorf("matched tag = %q, want B", tag.Name)
	}
	if v, okc := tag.GetInt("C"); !okc || v != 42 {
		t.Errorf("B.C = %v,%v, want 42", v, okc)
	}
	if !src.closed {
		t.Error("source must be closed after extraction")
	}
}

func TestExtractPath_Miss(t *testing.T) {
	src := newSource(buildChunkTree())

	if _, ok := ExtractPath(src, "A.X"); ok {
		t.Error("ExtractPath(A.X) should be absent")
	}
	if !src.closed {
		t.Error("source must be closed after a miss")
	}
}

func TestExtractPath_SingleComponent(t *testing.T) {
	src := newSource(buildChunkTree())

	tag, ok := ExtractPath(src, "A")
	if !ok || tag.Name != "A" {
		t.Errorf("ExtractPath(A) = %v,%v, want root compound", tag, ok)
	}
}

func TestParser_ParseSections(t *testing.T) {
	w := &tagWriter{}
	w.beginCompound("chunk").
		beginCompound("section_0").
		intTag("Y", 0).
		endCompound().
		beginCompound("Entities").
		endCompound().
		beginCompound("sections").
		endCompound().
		endCompound()

	var names []string
	NewParser(newSource(w.bytes())).ParseSections(func(section *Tag) {
		names = append(names, section.Name)
	})

	want := []string{"section_0", "sections"}
	if len(names) != len(want) {
		t.Fatalf("sections = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
