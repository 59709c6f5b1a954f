package cursor

import "testing"

func TestMoveClampsToList(t *testing.T) {
	c := New(2)

	c.Move(1, 10, 5)
	if c.Pos() != 1 {
		t.Errorf("pos = %d, want 1", c.Pos())
	}

	c.Move(-5, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("pos = %d, want 0 after clamping below", c.Pos())
	}

	c.Move(100, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("pos = %d, want 9 after clamping above", c.Pos())
	}
}

func TestMoveEmptyListIsNoop(t *testing.T) {
	c := New(2)
	c.Move(1, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos, offset = %d, %d; want 0, 0", c.Pos(), c.Offset())
	}
}

func TestMoveScrollsWithMargin(t *testing.T) {
	c := New(2)

	// Walk down a 20-row list through a 6-row viewport; the offset must
	// start following once the cursor gets within margin of the bottom.
	for range 10 {
		c.Move(1, 20, 6)
	}
	if c.Pos() != 10 {
		t.Fatalf("pos = %d, want 10", c.Pos())
	}
	if c.Offset() == 0 {
		t.Error("offset did not scroll")
	}
	if c.Pos()-c.Offset() >= 6 {
		t.Errorf("cursor left the viewport: pos %d offset %d", c.Pos(), c.Offset())
	}
}

func TestJump(t *testing.T) {
	c := New(2)

	c.Jump(7, 10, 5)
	if c.Pos() != 7 {
		t.Errorf("pos = %d, want 7", c.Pos())
	}

	c.Jump(50, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("pos = %d, want 9 clamped", c.Pos())
	}
}

func TestJumpEnd(t *testing.T) {
	c := New(2)
	c.JumpEnd(30, 8)
	if c.Pos() != 29 {
		t.Errorf("pos = %d, want 29", c.Pos())
	}
	start, end := c.VisibleRange(30, 8)
	if end != 30 || start != 22 {
		t.Errorf("visible range = [%d, %d), want [22, 30)", start, end)
	}
}

func TestReset(t *testing.T) {
	c := New(2)
	c.Jump(15, 20, 5)
	c.Reset()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos, offset = %d, %d; want 0, 0", c.Pos(), c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(2)
	c.Jump(9, 10, 5)

	if moved := c.ClampToBounds(4); !moved {
		t.Error("expected adjustment when list shrank")
	}
	if c.Pos() != 3 {
		t.Errorf("pos = %d, want 3", c.Pos())
	}

	if moved := c.ClampToBounds(4); moved {
		t.Error("no adjustment expected when already in bounds")
	}

	if moved := c.ClampToBounds(0); !moved {
		t.Error("expected reset on empty list")
	}
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos, offset = %d, %d; want 0, 0", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(2)

	start, end := c.VisibleRange(3, 10)
	if start != 0 || end != 3 {
		t.Errorf("short list: [%d, %d), want [0, 3)", start, end)
	}

	start, end = c.VisibleRange(0, 10)
	if start != 0 || end != 0 {
		t.Errorf("empty list: [%d, %d), want [0, 0)", start, end)
	}
}

func TestHandleKey(t *testing.T) {
	c := New(2)

	if !c.HandleKey("j", 10, 5) || c.Pos() != 1 {
		t.Errorf("j: pos = %d, want 1", c.Pos())
	}
	if !c.HandleKey("k", 10, 5) || c.Pos() != 0 {
		t.Errorf("k: pos = %d, want 0", c.Pos())
	}
	if !c.HandleKey("G", 10, 5) || c.Pos() != 9 {
		t.Errorf("G: pos = %d, want 9", c.Pos())
	}
	if !c.HandleKey("g", 10, 5) || c.Pos() != 0 {
		t.Errorf("g: pos = %d, want 0", c.Pos())
	}
	if !c.HandleKey("ctrl+d", 10, 6) || c.Pos() != 3 {
		t.Errorf("ctrl+d: pos = %d, want 3", c.Pos())
	}
	if c.HandleKey("x", 10, 5) {
		t.Error("x should not be handled")
	}
}
