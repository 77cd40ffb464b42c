package translation

import (
	"context"
	"slices"

	"github.com/uptrace/bun"
)

// Tracker records whether a row has been persisted and which columns changed
// since it was last written or loaded. Embed it in base and translation
// models tagged `bun:"-"`.
type Tracker struct {
	exists bool
	dirty  []string
}

var _ bun.AfterScanRowHook = (*Tracker)(nil)

// Exists reports whether the row is known to be stored.
func (t *Tracker) Exists() bool {
	return t != nil && t.exists
}

// IsDirty reports whether at least one column holds an unsaved value.
func (t *Tracker) IsDirty() bool {
	return t != nil && len(t.dirty) > 0
}

// DirtyColumns returns the changed columns in the order they were first touched.
func (t *Tracker) DirtyColumns() []string {
	if t == nil || len(t.dirty) == 0 {
		return nil
	}
	return slices.Clone(t.dirty)
}

// MarkDirty flags columns as holding unsaved values.
func (t *Tracker) MarkDirty(columns ...string) {
	if t == nil {
		return
	}
	for _, column := range columns {
		if column == "" || slices.Contains(t.dirty, column) {
			continue
		}
		t.dirty = append(t.dirty, column)
	}
}

// MarkPersisted records a successful write or load and clears dirty columns.
func (t *Tracker) MarkPersisted() {
	if t == nil {
		return
	}
	t.exists = true
	t.dirty = nil
}

// AfterScanRow marks rows hydrated by bun as persisted.
func (t *Tracker) AfterScanRow(context.Context) error {
	t.MarkPersisted()
	return nil
}
