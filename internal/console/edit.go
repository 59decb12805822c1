package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/ganot/seller-console/internal/domain/lead"
)

// Field names used by SetField and FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldStatus  = "status"
)

// Draft holds the editable fields of the selected lead.
type Draft struct {
	Name    string
	Email   string
	Company string
	Status  lead.Status
}

// EditSession is the per-selection edit state machine: draft fields,
// validation errors, save/convert in-flight flags and unsaved-changes
// tracking. It is reseeded from scratch whenever the selection changes,
// including when the selection clears.
type EditSession struct {
	console *Console

	mu          sync.Mutex
	active      bool
	leadID      string
	draft       Draft
	amountText  string
	fieldErrors map[string]string
	saveError   string
	saving      bool
	converting  bool
	dirty       bool
}

// reset reseeds the session from the newly selected lead (nil for none).
// Everything resets unconditionally; there is no cross-lead carryover.
func (e *EditSession) reset(l *lead.Lead) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.amountText = ""
	e.fieldErrors = make(map[string]string)
	e.saveError = ""
	e.saving = false
	e.converting = false
	e.dirty = false

	if l == nil {
		e.active = false
		e.leadID = ""
		e.draft = Draft{}
		return
	}
	e.active = true
	e.leadID = l.ID
	e.draft = Draft{
		Name:    l.Name,
		Email:   l.Email,
		Company: l.Company,
		Status:  l.Status,
	}
}

// SetField records an edit to one draft field. Editing a field clears that
// field's error and any stale save error, and marks the session dirty.
func (e *EditSession) SetField(field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	switch field {
	case FieldName:
		e.draft.Name = value
	case FieldEmail:
		e.draft.Email = value
	case FieldCompany:
		e.draft.Company = value
	case FieldStatus:
		e.draft.Status = lead.Status(value)
	default:
		return
	}
	e.dirty = true
	delete(e.fieldErrors, field)
	e.saveError = ""
}

// SetAmountText records the optional conversion amount as typed.
func (e *EditSession) SetAmountText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.amountText = text
}

// Active reports whether the session is bound to a selection.
func (e *EditSession) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Draft returns the current draft fields.
func (e *EditSession) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// AmountText returns the conversion amount as typed.
func (e *EditSession) AmountText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.amountText
}

// FieldErrors returns a copy of the per-field validation errors.
func (e *EditSession) FieldErrors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	errs := make(map[string]string, len(e.fieldErrors))
	for field, msg := range e.fieldErrors {
		errs[field] = msg
	}
	return errs
}

// SaveError returns the message from the last failed save, cleared by the
// next edit or successful save.
func (e *EditSession) SaveError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveError
}

// Saving reports whether a save is in flight.
func (e *EditSession) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Converting reports whether a conversion is in flight.
func (e *EditSession) Converting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.converting
}

// Dirty reports whether the draft has unsaved changes.
func (e *EditSession) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Save validates the draft and pushes it through the optimistic save path.
// Validation failures populate FieldErrors and skip the remote call
// entirely; remote failures land in SaveError and keep the draft intact so
// the user can retry.
func (e *EditSession) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.active || e.saving {
		e.mu.Unlock()
		return nil
	}
	if e.draft.Name == "" || e.draft.Email == "" || e.draft.Company == "" {
		e.mu.Unlock()
		return nil
	}

	v := lead.ValidateProfile(e.draft.Name, e.draft.Email, e.draft.Company)
	if !v.Valid {
		e.fieldErrors = v.Errors
		e.mu.Unlock()
		return nil
	}

	id := e.leadID
	draft := e.draft
	e.saving = true
	e.saveError = ""
	e.mu.Unlock()

	updates := lead.Updates{
		Name:    &draft.Name,
		Email:   &draft.Email,
		Company: &draft.Company,
		Status:  &draft.Status,
	}
	_, err := e.console.SaveLead(ctx, id, updates)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active || e.leadID != id {
		// The selection changed while the save was in flight; the reset
		// already cleared all flags and this outcome has no home.
		return err
	}
	e.saving = false
	if errors.Is(err, lead.ErrSuperseded) {
		// A newer save owns the outcome; stay quiet.
		return nil
	}
	if err != nil {
		e.saveError = saveErrorMessage(err)
		return err
	}
	e.dirty = false
	return nil
}

// Convert parses the amount text and runs the conversion workflow for the
// current selection. The converting flag drops when the workflow settles no
// matter the outcome; feedback and panel state belong to the orchestrator.
func (e *EditSession) Convert(ctx context.Context) error {
	e.mu.Lock()
	if !e.active || e.converting {
		e.mu.Unlock()
		return nil
	}
	id := e.leadID
	amount := parseAmount(e.amountText)
	e.converting = true
	e.mu.Unlock()

	var err error
	if sel := e.console.Selected(); sel != nil && sel.ID == id {
		_, err = e.console.ConvertLead(ctx, *sel, amount)
	}

	e.mu.Lock()
	e.converting = false
	e.mu.Unlock()
	return err
}

// parseAmount treats empty or unparsable text, and negative values, as "no
// amount". Bad input is never surfaced as an error.
func parseAmount(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// saveErrorMessage converts repository failures into the strings the panel
// shows next to the save controls.
func saveErrorMessage(err error) string {
	if errors.Is(err, lead.ErrNotFound) {
		return "Lead not found"
	}
	return "Failed to update lead. Please try again."
}
