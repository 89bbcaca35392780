package console

import (
	"context"
	"errors"
	"fmt"

	"millgate/internal/domain"
	"millgate/internal/ratecodec"
	"millgate/internal/wire"
)

// API is the slice of the admin client the workflow drives. *Client
// satisfies it; tests substitute their own.
type API interface {
	ListSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error)
	SaveSeasonBagRates(ctx context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error)
	ResetSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode, confirm string) ([]domain.SeasonBagRate, string, error)
	ListActiveRiceTypes(ctx context.Context) ([]domain.RiceType, error)
}

// Notifier is the transient notification surface.
type Notifier interface {
	Toast(message, variant string)
}

// Phase is the workflow's busy state. Loading, saving and resetting are
// mutually exclusive; save and reset each refuse to start while the other
// is in flight.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseSaving    Phase = "saving"
	PhaseResetting Phase = "resetting"
)

// ErrBusy is returned when an operation is requested while another is in
// flight.
var ErrBusy = errors.New("another operation is in progress")

// Selection identifies the crop year and season whose matrix is on screen.
type Selection struct {
	CropYearStartYear int
	SeasonCode        domain.SeasonCode
}

// ValidationError names the first offending cell found before a save, or a
// failed precondition of a reset. It always aborts before any network call.
type ValidationError struct {
	RiceTypeCode string
	BagSize      domain.BagSize
	Reason       string
}

func (e *ValidationError) Error() string {
	if e.RiceTypeCode == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s rate for %s %s", e.RiceTypeCode, e.BagSize.Label(), e.Reason)
}

// ResetDialog models the typed-confirmation dialog guarding the bulk reset.
// The typed text is cleared whenever the dialog closes, for any reason.
type ResetDialog struct {
	open  bool
	typed string
}

// Open opens the dialog with an empty confirmation field.
func (d *ResetDialog) Open() {
	d.open = true
	d.typed = ""
}

// Close closes the dialog and clears the typed text.
func (d *ResetDialog) Close() {
	d.open = false
	d.typed = ""
}

// IsOpen reports whether the dialog is showing.
func (d *ResetDialog) IsOpen() bool { return d.open }

// SetTyped records the confirmation text as typed so far.
func (d *ResetDialog) SetTyped(text string) { d.typed = text }

// Typed returns the current confirmation text.
func (d *ResetDialog) Typed() string { return d.typed }

// Armed reports whether the typed text matches the confirmation token
// exactly — case-sensitive, no trimming leniency.
func (d *ResetDialog) Armed() bool { return d.typed == domain.ResetConfirmToken }

// Workflow owns one pricing matrix and drives its load, save and reset
// operations against the admin API. It is single-threaded by design: the
// console's event loop calls it from one goroutine.
type Workflow struct {
	api    API
	notify Notifier

	selection    Selection
	selectionSet bool
	riceTypes    []domain.RiceType
	matrix       *Matrix
	phase        Phase
	inlineErr    string

	// Dialog is the reset confirmation dialog state.
	Dialog ResetDialog
}

// NewWorkflow creates a workflow over the given API and notifier.
func NewWorkflow(api API, notify Notifier) *Workflow {
	return &Workflow{api: api, notify: notify, phase: PhaseIdle}
}

// Phase returns the current busy state.
func (w *Workflow) Phase() Phase { return w.phase }

// InlineError returns the message shown next to the action controls, empty
// when the last operation succeeded.
func (w *Workflow) InlineError() string { return w.inlineErr }

// Matrix returns the current grid, nil before the first load.
func (w *Workflow) Matrix() *Matrix { return w.matrix }

// Selection returns the current selection and whether one has been made.
func (w *Workflow) Selection() (Selection, bool) { return w.selection, w.selectionSet }

// Select switches the console to a crop year and season. The previous
// matrix is discarded immediately and the new selection's rates are loaded.
func (w *Workflow) Select(ctx context.Context, startYear int, season domain.SeasonCode) error {
	w.selection = Selection{CropYearStartYear: startYear, SeasonCode: season}
	w.selectionSet = true
	w.matrix = nil
	return w.Load(ctx)
}

// Load fetches the active rice types and the saved rates for the current
// selection and seeds a fresh matrix. A response that arrives after the
// selection has moved on is discarded rather than applied: it belongs to a
// matrix that is no longer on screen.
func (w *Workflow) Load(ctx context.Context) error {
	if !w.selectionSet {
		return &ValidationError{Reason: "select a crop year first"}
	}
	if w.phase != PhaseIdle {
		return ErrBusy
	}
	issued := w.selection
	w.phase = PhaseLoading
	defer func() { w.phase = PhaseIdle }()

	types, err := w.api.ListActiveRiceTypes(ctx)
	if err != nil {
		w.inlineErr = failureMessage(err, "Failed to load rice types.")
		return err
	}
	entries, err := w.api.ListSeasonBagRates(ctx, issued.CropYearStartYear, issued.SeasonCode)
	if err != nil {
		w.inlineErr = failureMessage(err, "Failed to load rates.")
		return err
	}
	if w.selection != issued {
		// Stale response for an abandoned selection.
		return nil
	}
	w.riceTypes = types
	w.matrix = SeedMatrix(types, entries)
	w.inlineErr = ""
	return nil
}

// EditBase forwards a 100kg cell edit to the matrix.
func (w *Workflow) EditBase(code, raw string) {
	if w.matrix != nil {
		w.matrix.EditBase(code, raw)
	}
}

// CanSave reports whether the save action is enabled.
func (w *Workflow) CanSave() bool {
	return w.phase == PhaseIdle && w.selectionSet && w.matrix != nil
}

// Save validates the full matrix, submits it, and reconciles the server's
// returned matrix into the snapshot. Validation fails fast: the first
// missing or invalid cell aborts with an error naming its rice type and bag
// size, before any network call. On failure the edited grid is kept intact.
func (w *Workflow) Save(ctx context.Context) error {
	if w.phase != PhaseIdle {
		return ErrBusy
	}
	if !w.selectionSet || w.matrix == nil {
		return &ValidationError{Reason: "select a crop year first"}
	}

	req, err := w.buildUpsert()
	if err != nil {
		w.inlineErr = err.Error()
		return err
	}

	w.phase = PhaseSaving
	defer func() { w.phase = PhaseIdle }()

	entries, message, err := w.api.SaveSeasonBagRates(ctx, req)
	if err != nil {
		msg := failureMessage(err, "Save failed.")
		w.inlineErr = msg
		w.notify.Toast(msg, "error")
		return err
	}

	w.matrix.Reconcile(entries)
	w.inlineErr = ""
	if message == "" {
		message = "Rates saved."
	}
	w.notify.Toast(message, "success")
	return nil
}

// CanReset reports whether the reset action is enabled: confirmation text
// typed exactly, a crop year selected, and at least one active rice type.
func (w *Workflow) CanReset() bool {
	return w.phase == PhaseIdle && w.selectionSet && len(w.riceTypes) > 0 && w.Dialog.Armed()
}

// Reset zeroes all rates for the current selection. The typed confirmation
// is checked client-side before any network call, independent of the
// server's own check; the literal token travels with the request. On
// success the matrix is reconciled exactly as after a save and the dialog
// closes, clearing its text.
func (w *Workflow) Reset(ctx context.Context) error {
	if w.phase != PhaseIdle {
		return ErrBusy
	}
	if !w.selectionSet {
		return &ValidationError{Reason: "select a crop year first"}
	}
	if len(w.riceTypes) == 0 {
		return &ValidationError{Reason: "no active rice types to reset"}
	}
	if !w.Dialog.Armed() {
		return &ValidationError{Reason: "type RESET to confirm"}
	}

	w.phase = PhaseResetting
	defer func() { w.phase = PhaseIdle }()

	entries, message, err := w.api.ResetSeasonBagRates(ctx, w.selection.CropYearStartYear, w.selection.SeasonCode, w.Dialog.Typed())
	if err != nil {
		msg := failureMessage(err, "Reset failed.")
		w.inlineErr = msg
		w.notify.Toast(msg, "error")
		return err
	}

	if w.matrix != nil {
		w.matrix.Reconcile(entries)
	}
	w.inlineErr = ""
	w.Dialog.Close()
	if message == "" {
		message = "Rates reset."
	}
	w.notify.Toast(message, "success")
	return nil
}

// buildUpsert validates every cell and assembles the modern write payload.
func (w *Workflow) buildUpsert() (wire.UpsertRequest, error) {
	req := wire.UpsertRequest{
		CropYearStartYear: w.selection.CropYearStartYear,
		SeasonCode:        w.selection.SeasonCode,
	}
	// KG_100 is checked first per row: it is the entered value the other
	// two derive from.
	checkOrder := []domain.BagSize{domain.Bag100, domain.Bag75, domain.Bag40}
	for _, row := range w.matrix.Rows() {
		rates := make(map[domain.BagSize]*float64, len(domain.BagSizes))
		for _, size := range checkOrder {
			v := ratecodec.ParseDecimalOrNull(row.Cells[size])
			if v == nil {
				return wire.UpsertRequest{}, &ValidationError{RiceTypeCode: row.RiceTypeCode, BagSize: size, Reason: "is required"}
			}
			if *v < 0 {
				return wire.UpsertRequest{}, &ValidationError{RiceTypeCode: row.RiceTypeCode, BagSize: size, Reason: "must not be negative"}
			}
			rates[size] = v
		}
		req.Rates = append(req.Rates, wire.RiceTypeRates{RiceTypeCode: row.RiceTypeCode, Rates: rates})
	}
	return req, nil
}

// failureMessage picks the user-facing message for a failed operation:
// the server's message when it sent one, a fixed phrase for a payload
// neither shape could parse, otherwise the per-operation fallback.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, wire.ErrMalformedResponse) {
		return "Unexpected response from server."
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
