package dom

import (
	"strings"
	"testing"
)

// activeDoc builds a rendered document with tag children a and b.
func activeDoc(t *testing.T) (*Document, *Tag, *Tag, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	d := NewDocument(b)
	a := P(WithID("a"))
	bb := P(WithID("b"))
	if err := d.AppendChild(a); err != nil {
		t.Fatalf("AppendChild(a): %v", err)
	}
	if err := d.AppendChild(bb); err != nil {
		t.Fatalf("AppendChild(b): %v", err)
	}
	if _, err := d.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return d, a, bb, b
}

func TestRenderDocumentOrder(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	markup, err := d.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	ia := strings.Index(markup, `id="a"`)
	ib := strings.Index(markup, `id="b"`)
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("markup %q should contain a before b", markup)
	}
}

func TestInsertBetweenEmitsAddedWithAnchor(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	got := collect(d)

	c := P(WithID("c"))
	if err := d.InsertChild(1, c); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	ch := (*got)[0]
	if ch.ID != "c" || ch.Kind != ChangeAdded || ch.Name != "children" {
		t.Errorf("record = %+v, want {c added children}", ch)
	}
	if ch.Before != "b" {
		t.Errorf("Before = %q, want %q", ch.Before, "b")
	}
	if !strings.Contains(ch.Value, `id="c"`) {
		t.Errorf("record value %q should carry rendered markup for c", ch.Value)
	}
}

func TestAppendEmitsAddedWithoutAnchor(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	got := collect(d)

	c := P(WithID("c"))
	if err := d.AppendChild(c); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	if before := (*got)[0].Before; before != "" {
		t.Errorf("Before = %q, want empty for append", before)
	}
}

func TestMoveToEndEmitsMovedNoAnchor(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	c := P(WithID("c"))
	if err := d.InsertChild(1, c); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	got := collect(d)

	if err := d.MoveChild(c, len(d.Children())-1); err != nil {
		t.Fatalf("MoveChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	ch := (*got)[0]
	if ch.ID != "c" || ch.Kind != ChangeMoved || ch.Name != "children" || ch.Value != "c" {
		t.Errorf("record = %+v, want {c moved children c}", ch)
	}
	if ch.Before != "" {
		t.Errorf("Before = %q, want empty for move to end", ch.Before)
	}
	kids := d.Children()
	if kids[len(kids)-1].ID() != "c" {
		t.Error("model order should end with c")
	}
}

func TestMoveEmitsAnchorAtNewPosition(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	c := P(WithID("c"))
	if err := d.AppendChild(c); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	got := collect(d)

	if err := d.MoveChild(c, 0); err != nil {
		t.Fatalf("MoveChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	if before := (*got)[0].Before; before != "a" {
		t.Errorf("Before = %q, want %q", before, "a")
	}
}

func TestFailedMoveSuppressesRecord(t *testing.T) {
	d, _, _, backend := activeDoc(t)
	c := P(WithID("c"))
	if err := d.InsertChild(1, c); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	got := collect(d)

	backend.moveOK = false
	if err := d.MoveChild(c, 2); err != nil {
		t.Fatalf("MoveChild: %v", err)
	}

	if len(*got) != 0 {
		t.Errorf("got %d records after failed move, want 0", len(*got))
	}
	if d.Children()[2].ID() != "c" {
		t.Error("model reorder should stand even when the physical move fails")
	}
}

func TestRemoveEmitsRemoved(t *testing.T) {
	d, a, _, _ := activeDoc(t)
	got := collect(d)

	if err := d.RemoveChild(a); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	ch := (*got)[0]
	if ch.ID != "a" || ch.Kind != ChangeRemoved || ch.Name != "children" || ch.Value != "a" {
		t.Errorf("record = %+v, want {a removed children a}", ch)
	}
	if ch.Before != "" {
		t.Errorf("Before = %q, want empty for removal", ch.Before)
	}
	for _, n := range d.Children() {
		if n.ID() == "a" {
			t.Error("children should no longer contain a")
		}
	}
}

func TestPatternTransparency(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	got := collect(d)

	pat := NewPattern()
	if err := d.InsertChild(1, pat); err != nil {
		t.Fatalf("InsertChild(pattern): %v", err)
	}
	if err := d.MoveChild(pat, 0); err != nil {
		t.Fatalf("MoveChild(pattern): %v", err)
	}
	if err := d.RemoveChild(pat); err != nil {
		t.Fatalf("RemoveChild(pattern): %v", err)
	}

	if len(*got) != 0 {
		t.Errorf("pattern mutations emitted %d records, want 0", len(*got))
	}
}

func TestAnchorSkipsPatternNodes(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	// Children: a, pattern, b. Inserting before the pattern must anchor on b.
	if err := d.InsertChild(1, NewPattern()); err != nil {
		t.Fatalf("InsertChild(pattern): %v", err)
	}
	got := collect(d)

	c := P(WithID("c"))
	if err := d.InsertChild(1, c); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	if before := (*got)[0].Before; before != "b" {
		t.Errorf("Before = %q, want %q (pattern nodes are never anchors)", before, "b")
	}
}

func TestAnchorTracksOperationSequence(t *testing.T) {
	d, a, bTag, _ := activeDoc(t)
	c := P(WithID("c"))
	if err := d.AppendChild(c); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	got := collect(d)

	// Remove b: children a, c. Then insert d2 before c: anchor c.
	if err := d.RemoveChild(bTag); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	d2 := P(WithID("d2"))
	if err := d.InsertChild(1, d2); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	// Move a to the end: anchor absent.
	if err := d.MoveChild(a, 2); err != nil {
		t.Fatalf("MoveChild: %v", err)
	}

	want := []struct {
		kind   ChangeKind
		id     string
		before string
	}{
		{ChangeRemoved, "b", ""},
		{ChangeAdded, "d2", "c"},
		{ChangeMoved, "a", ""},
	}
	if len(*got) != len(want) {
		t.Fatalf("got %d records, want %d", len(*got), len(want))
	}
	for i, w := range want {
		ch := (*got)[i]
		if ch.Kind != w.kind || ch.ID != w.id || ch.Before != w.before {
			t.Errorf("record %d = %+v, want kind=%v id=%s before=%q", i, ch, w.kind, w.id, w.before)
		}
	}
}

func TestNeverActivatedStaysSilentThenRenders(t *testing.T) {
	b := newFakeBackend()
	d := NewDocument(b)
	got := collect(d)

	a := P(WithID("a"), WithText("first"))
	c := P(WithID("c"))
	if err := d.AppendChild(a); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := d.AppendChild(c); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := d.MoveChild(c, 0); err != nil {
		t.Fatalf("MoveChild: %v", err)
	}
	if err := d.RemoveChild(a); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if err := c.SetText("only"); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	if len(*got) != 0 {
		t.Fatalf("inactive tree emitted %d records, want 0", len(*got))
	}

	markup, err := d.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(markup, "only") {
		t.Errorf("markup %q should reflect the accumulated state", markup)
	}
	if strings.Contains(markup, `id="a"`) {
		t.Errorf("markup %q should not contain the removed child", markup)
	}
}

func TestInsertRejectsAttachedChild(t *testing.T) {
	d, a, _, _ := activeDoc(t)
	if err := d.AppendChild(a); err == nil {
		t.Error("attaching an already attached child should fail")
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	if err := d.AppendChild(P(WithID("a"))); err == nil {
		t.Error("attaching a child with a duplicate id should fail")
	}
}

func TestRemoveRejectsNonChild(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	if err := d.RemoveChild(P(WithID("z"))); err == nil {
		t.Error("removing a non-child should fail")
	}
}

func TestInsertIndexRange(t *testing.T) {
	d, _, _, _ := activeDoc(t)
	if err := d.InsertChild(7, P(WithID("z"))); err == nil {
		t.Error("out of range insert should fail")
	}
}

func TestDetachedSubtreeStopsEmitting(t *testing.T) {
	d, a, _, _ := activeDoc(t)
	got := collect(d)

	if err := d.RemoveChild(a); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if err := a.SetText("orphan"); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	// Only the removal record itself is valid.
	if len(*got) != 1 {
		t.Fatalf("got %d records, want 1", len(*got))
	}
	if (*got)[0].Kind != ChangeRemoved {
		t.Errorf("record = %+v, want removal", (*got)[0])
	}
}

func TestReattachDetachedSubtree(t *testing.T) {
	d, a, _, _ := activeDoc(t)
	if err := d.RemoveChild(a); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	got := collect(d)

	if err := d.AppendChild(a); err != nil {
		t.Fatalf("reattach: %v", err)
	}
	if len(*got) != 1 || (*got)[0].Kind != ChangeAdded {
		t.Fatalf("reattach records = %+v, want one added", *got)
	}
}
