package forms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
)

const (
	SavedNotice    = "Profile updated successfully!"
	NoticeDuration = 3 * time.Second
)

var (
	ErrNoChanges      = errors.New("no changes to save")
	ErrSaveInProgress = errors.New("a save is already in progress")
)

// Editor is the profile edit form. It keeps the live inputs next to a
// snapshot of the last saved values; Save and Reset are only enabled while
// the two differ.
type Editor struct {
	mu       sync.Mutex
	live     Values
	snapshot Values
	states   States
	saving   bool
	notice   string
	noticeAt time.Time
	now      func() time.Time
}

type EditorState struct {
	Values      Values `json:"values"`
	Snapshot    Values `json:"snapshot"`
	FieldStates States `json:"fieldStates"`
	HasChanges  bool   `json:"hasChanges"`
	CanSave     bool   `json:"canSave"`
	CanReset    bool   `json:"canReset"`
	Saving      bool   `json:"saving"`
	Notice      string `json:"notice,omitempty"`
}

func NewEditor(profile models.UserProfile, now func() time.Time) *Editor {
	if now == nil {
		now = time.Now
	}
	v := ValuesFromProfile(profile)
	return &Editor{
		live:     v,
		snapshot: v,
		states:   NewStates(),
		now:      now,
	}
}

// Set edits one live field and clears any notice.
func (e *Editor) Set(f Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.live.Set(f, value); err != nil {
		return err
	}
	e.states.Edit(f)
	e.notice = ""
	return nil
}

// SetAll applies several edits at once. Nothing is applied when any field is
// unknown.
func (e *Editor) SetAll(edits map[Field]string) error {
	for f := range edits {
		if !slices.Contains(Fields, f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for f, value := range edits {
		if err := e.live.Set(f, value); err != nil {
			return err
		}
		e.states.Edit(f)
	}
	if len(edits) > 0 {
		e.notice = ""
	}
	return nil
}

func (e *Editor) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasChanges()
}

func (e *Editor) hasChanges() bool {
	return e.live != e.snapshot
}

func (e *Editor) CanSave() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasChanges() && !e.saving
}

func (e *Editor) CanReset() bool {
	return e.CanSave()
}

// Reset restores the live inputs to the last saved values.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live = e.snapshot
	e.states.Reset()
	e.notice = ""
}

// Submit validates the live inputs and writes them with a partial update.
// On success the snapshot becomes the submitted values and a notice is shown
// for NoticeDuration.
func (e *Editor) Submit(ctx context.Context, store models.ProfileStore, userID string, acknowledgeOverspend bool) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}
	if !e.hasChanges() {
		e.mu.Unlock()
		return ErrNoChanges
	}

	submitted := e.live
	parsed, err := Validate(submitted)
	e.states.Apply(err)
	if err == nil {
		err = CheckOverspend(parsed, acknowledgeOverspend)
	}
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.saving = true
	e.notice = ""
	e.mu.Unlock()

	err = store.Update(ctx, userID, parsed.Fields())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	e.snapshot = submitted
	e.notice = SavedNotice
	e.noticeAt = e.now()
	return nil
}

// Notice returns the success message while it is still visible.
func (e *Editor) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentNotice()
}

func (e *Editor) currentNotice() string {
	if e.notice == "" || e.now().Sub(e.noticeAt) >= NoticeDuration {
		return ""
	}
	return e.notice
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make(States, len(e.states))
	for f, s := range e.states {
		states[f] = s
	}
	changed := e.hasChanges()
	return EditorState{
		Values:      e.live,
		Snapshot:    e.snapshot,
		FieldStates: states,
		HasChanges:  changed,
		CanSave:     changed && !e.saving,
		CanReset:    changed && !e.saving,
		Saving:      e.saving,
		Notice:      e.currentNotice(),
	}
}
