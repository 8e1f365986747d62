package sim

import "github.com/san-kum/orbitsim/internal/physics"

// Editor is the body list cursor plus the pending text of a field edit.
// It holds indices, not bodies; Clamp must be called after the list changes.
// The zero value is ready to use and safe to copy.
type Editor struct {
	Selected int
	Field    int
	text     string
}

func (e *Editor) Clamp(n int) {
	if e.Selected >= n {
		e.Selected = n - 1
	}
	if e.Selected < 0 {
		e.Selected = 0
	}
}

func (e *Editor) NextBody(n int) {
	e.Selected++
	e.Clamp(n)
}

func (e *Editor) PrevBody(n int) {
	e.Selected--
	e.Clamp(n)
}

func (e *Editor) NextField() {
	e.Field = (e.Field + 1) % len(physics.Fields)
	e.text = ""
}

func (e *Editor) PrevField() {
	e.Field = (e.Field + len(physics.Fields) - 1) % len(physics.Fields)
	e.text = ""
}

func (e *Editor) FieldName() string { return physics.Fields[e.Field] }

// Type appends r if it can be part of a number and reports whether it did.
// An 'e' is only taken directly after a digit so it still reaches the
// camera otherwise.
func (e *Editor) Type(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
	case r == 'e' || r == 'E':
		if n := len(e.text); n == 0 || e.text[n-1] < '0' || e.text[n-1] > '9' {
			return false
		}
	default:
		return false
	}
	e.text += string(r)
	return true
}

func (e *Editor) Backspace() {
	if e.text != "" {
		e.text = e.text[:len(e.text)-1]
	}
}

func (e *Editor) Text() string { return e.text }

func (e *Editor) Editing() bool { return e.text != "" }

// Commit applies the pending text to the selected body and clears it. An
// empty buffer is a no-op.
func (e *Editor) Commit(st *State) error {
	if !e.Editing() {
		return nil
	}
	raw := e.text
	e.text = ""
	return st.EditBody(e.Selected, e.FieldName(), raw)
}
