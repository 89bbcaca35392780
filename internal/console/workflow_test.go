package console

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millgate/internal/domain"
	"millgate/internal/wire"
)

type fakeAPI struct {
	listRates     func(ctx context.Context, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error)
	save          func(ctx context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error)
	reset         func(ctx context.Context, startYear int, season domain.SeasonCode, confirm string) ([]domain.SeasonBagRate, string, error)
	listRiceTypes func(ctx context.Context) ([]domain.RiceType, error)
	resetCalls    int
}

func (f *fakeAPI) ListSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error) {
	if f.listRates == nil {
		return nil, nil
	}
	return f.listRates(ctx, startYear, season)
}

func (f *fakeAPI) SaveSeasonBagRates(ctx context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
	return f.save(ctx, req)
}

func (f *fakeAPI) ResetSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode, confirm string) ([]domain.SeasonBagRate, string, error) {
	f.resetCalls++
	return f.reset(ctx, startYear, season, confirm)
}

func (f *fakeAPI) ListActiveRiceTypes(ctx context.Context) ([]domain.RiceType, error) {
	if f.listRiceTypes == nil {
		return activeTypes(), nil
	}
	return f.listRiceTypes(ctx)
}

type recordingNotifier struct {
	messages []string
	variants []string
}

func (n *recordingNotifier) Toast(message, variant string) {
	n.messages = append(n.messages, message)
	n.variants = append(n.variants, variant)
}

func newLoadedWorkflow(t *testing.T, api *fakeAPI) (*Workflow, *recordingNotifier) {
	t.Helper()
	notify := &recordingNotifier{}
	w := NewWorkflow(api, notify)
	require.NoError(t, w.Select(context.Background(), 2024, domain.SeasonKharif))
	require.NotNil(t, w.Matrix())
	return w, notify
}

func fullEntries(base100, base75, base40 float64) []domain.SeasonBagRate {
	var items []domain.SeasonBagRate
	for _, code := range []string{"SONA", "BPT"} {
		items = append(items, domain.SeasonBagRate{
			CropYearStartYear: 2024,
			SeasonCode:        domain.SeasonKharif,
			RiceType:          domain.RiceTypeRef{Code: code},
			Rates: map[domain.BagSize]*float64{
				domain.Bag40:  ptr(base40),
				domain.Bag75:  ptr(base75),
				domain.Bag100: ptr(base100),
			},
		})
	}
	return items
}

func TestWorkflow_SaveValidation_FailsFastOnFirstRow(t *testing.T) {
	api := &fakeAPI{
		save: func(context.Context, wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
			t.Fatal("save must not reach the network on validation failure")
			return nil, "", nil
		},
	}
	w, _ := newLoadedWorkflow(t, api)

	// First row is missing only its 40kg value; second row is missing its
	// 100kg value. The surfaced error names the first row encountered.
	w.Matrix().EditBase("SONA", "2650.33")
	w.Matrix().Rows()[0].Cells[domain.Bag40] = ""

	err := w.Save(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "SONA", vErr.RiceTypeCode)
	assert.Equal(t, domain.Bag40, vErr.BagSize)
	assert.Contains(t, w.InlineError(), "SONA")
	assert.Contains(t, w.InlineError(), "40kg")
}

func TestWorkflow_SaveValidation_RejectsNegative(t *testing.T) {
	api := &fakeAPI{
		save: func(context.Context, wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
			t.Fatal("save must not reach the network on validation failure")
			return nil, "", nil
		},
	}
	w, _ := newLoadedWorkflow(t, api)

	w.EditBase("SONA", "-100")
	w.EditBase("BPT", "2000")

	err := w.Save(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "SONA", vErr.RiceTypeCode)
	assert.Equal(t, domain.Bag100, vErr.BagSize)
}

func TestWorkflow_Save_ReconcilesServerResponse(t *testing.T) {
	var submitted wire.UpsertRequest
	api := &fakeAPI{
		save: func(_ context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
			submitted = req
			return fullEntries(2700, 2025, 1080), "Rates saved for 2024-25.", nil
		},
	}
	w, notify := newLoadedWorkflow(t, api)

	w.EditBase("SONA", "2700")
	w.EditBase("BPT", "2700")
	require.True(t, w.Matrix().Dirty())

	require.NoError(t, w.Save(context.Background()))

	assert.Equal(t, 2024, submitted.CropYearStartYear)
	assert.Equal(t, domain.SeasonKharif, submitted.SeasonCode)
	require.Len(t, submitted.Rates, 2)

	// The server's values, not the typed ones, become the new snapshot.
	assert.False(t, w.Matrix().Dirty())
	assert.Equal(t, "2025.00", w.Matrix().Cell("SONA", domain.Bag75))
	assert.Empty(t, w.InlineError())
	require.Len(t, notify.messages, 1)
	assert.Equal(t, "Rates saved for 2024-25.", notify.messages[0])
	assert.Equal(t, "success", notify.variants[0])
}

func TestWorkflow_SaveFailure_KeepsEdits(t *testing.T) {
	api := &fakeAPI{
		save: func(context.Context, wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
			return nil, "", &RequestError{Status: http.StatusInternalServerError}
		},
	}
	w, notify := newLoadedWorkflow(t, api)

	w.EditBase("SONA", "2700")
	w.EditBase("BPT", "1900")

	err := w.Save(context.Background())
	require.Error(t, err)

	// The edited grid stays on screen and stays dirty.
	assert.Equal(t, "2700", w.Matrix().Cell("SONA", domain.Bag100))
	assert.True(t, w.Matrix().Dirty())
	assert.Equal(t, "Save failed.", w.InlineError())
	require.Len(t, notify.messages, 1)
	assert.Equal(t, "error", notify.variants[0])
	assert.Equal(t, PhaseIdle, w.Phase())
}

func TestWorkflow_SaveFailure_MalformedResponseMessage(t *testing.T) {
	api := &fakeAPI{
		save: func(context.Context, wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
			return nil, "", wire.ErrMalformedResponse
		},
	}
	w, _ := newLoadedWorkflow(t, api)
	w.EditBase("SONA", "2700")
	w.EditBase("BPT", "1900")

	require.Error(t, w.Save(context.Background()))
	assert.Equal(t, "Unexpected response from server.", w.InlineError())
}

func TestWorkflow_ResetGate(t *testing.T) {
	api := &fakeAPI{
		reset: func(context.Context, int, domain.SeasonCode, string) ([]domain.SeasonBagRate, string, error) {
			return fullEntries(0, 0, 0), "All rates reset.", nil
		},
	}
	w, _ := newLoadedWorkflow(t, api)

	w.Dialog.Open()
	assert.False(t, w.CanReset())

	// The match is exact: case and whitespace both matter.
	w.Dialog.SetTyped("reset")
	assert.False(t, w.CanReset())
	w.Dialog.SetTyped(" RESET")
	assert.False(t, w.CanReset())

	err := w.Reset(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, api.resetCalls, "a mistyped confirmation must never reach the network")

	w.Dialog.SetTyped("RESET")
	assert.True(t, w.CanReset())
	require.NoError(t, w.Reset(context.Background()))
	assert.Equal(t, 1, api.resetCalls)
}

func TestWorkflow_ResetGate_RequiresActiveRiceTypes(t *testing.T) {
	api := &fakeAPI{
		listRiceTypes: func(context.Context) ([]domain.RiceType, error) {
			return nil, nil
		},
		reset: func(context.Context, int, domain.SeasonCode, string) ([]domain.SeasonBagRate, string, error) {
			return nil, "", nil
		},
	}
	notify := &recordingNotifier{}
	w := NewWorkflow(api, notify)
	require.NoError(t, w.Select(context.Background(), 2024, domain.SeasonKharif))

	w.Dialog.Open()
	w.Dialog.SetTyped("RESET")
	assert.False(t, w.CanReset())
	require.Error(t, w.Reset(context.Background()))
	assert.Zero(t, api.resetCalls)
}

func TestWorkflow_ResetSuccess_ZeroesMatrixAndClosesDialog(t *testing.T) {
	api := &fakeAPI{
		listRates: func(context.Context, int, domain.SeasonCode) ([]domain.SeasonBagRate, error) {
			return fullEntries(2650.33, 1987.74, 1060.13), nil
		},
		reset: func(_ context.Context, startYear int, season domain.SeasonCode, confirm string) ([]domain.SeasonBagRate, string, error) {
			assert.Equal(t, 2024, startYear)
			assert.Equal(t, domain.SeasonKharif, season)
			assert.Equal(t, "RESET", confirm)
			return fullEntries(0, 0, 0), "All rates reset.", nil
		},
	}
	w, notify := newLoadedWorkflow(t, api)

	w.Dialog.Open()
	w.Dialog.SetTyped("RESET")
	require.NoError(t, w.Reset(context.Background()))

	assert.Equal(t, "0.00", w.Matrix().Cell("SONA", domain.Bag100))
	assert.False(t, w.Matrix().Dirty())
	assert.False(t, w.Dialog.IsOpen())
	assert.Empty(t, w.Dialog.Typed())
	require.Len(t, notify.messages, 1)
	assert.Equal(t, "All rates reset.", notify.messages[0])
}

func TestWorkflow_DialogCloseClearsTypedText(t *testing.T) {
	w := NewWorkflow(&fakeAPI{}, &recordingNotifier{})

	w.Dialog.Open()
	w.Dialog.SetTyped("RES")
	w.Dialog.Close()
	assert.Empty(t, w.Dialog.Typed())

	// Reopening starts from a blank field.
	w.Dialog.Open()
	assert.Empty(t, w.Dialog.Typed())
}

func TestWorkflow_StaleLoadIsDiscarded(t *testing.T) {
	var w *Workflow
	api := &fakeAPI{}
	api.listRates = func(_ context.Context, startYear int, _ domain.SeasonCode) ([]domain.SeasonBagRate, error) {
		if startYear == 2024 {
			// The operator switches crop year while this fetch is in
			// flight; its result must not be applied to the new selection.
			w.selection = Selection{CropYearStartYear: 2023, SeasonCode: domain.SeasonRabi}
			return fullEntries(2650.33, 1987.74, 1060.13), nil
		}
		return nil, nil
	}
	w = NewWorkflow(api, &recordingNotifier{})
	w.selection = Selection{CropYearStartYear: 2024, SeasonCode: domain.SeasonKharif}
	w.selectionSet = true

	require.NoError(t, w.Load(context.Background()))
	assert.Nil(t, w.Matrix(), "stale response for the abandoned selection must be discarded")

	// A load for the now-current selection applies normally.
	require.NoError(t, w.Load(context.Background()))
	require.NotNil(t, w.Matrix())
	assert.Equal(t, "", w.Matrix().Cell("SONA", domain.Bag100))
}

func TestWorkflow_BusyStatesAreExclusive(t *testing.T) {
	api := &fakeAPI{}
	api.save = func(ctx context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
		// While a save is in flight, reset and load refuse to start.
		w := ctx.Value(ctxWorkflow{}).(*Workflow)
		assert.Equal(t, PhaseSaving, w.Phase())
		assert.False(t, w.CanSave())
		assert.False(t, w.CanReset())
		assert.ErrorIs(t, w.Load(ctx), ErrBusy)
		assert.ErrorIs(t, w.Reset(ctx), ErrBusy)
		return fullEntries(100, 75, 40), "", nil
	}
	w, _ := newLoadedWorkflow(t, api)
	w.EditBase("SONA", "100")
	w.EditBase("BPT", "100")
	w.Dialog.Open()
	w.Dialog.SetTyped("RESET")

	ctx := context.WithValue(context.Background(), ctxWorkflow{}, w)
	require.NoError(t, w.Save(ctx))
	assert.Equal(t, PhaseIdle, w.Phase())
}

type ctxWorkflow struct{}

func TestWorkflow_SaveWithoutSelection(t *testing.T) {
	w := NewWorkflow(&fakeAPI{}, &recordingNotifier{})
	err := w.Save(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Unexpected response from server.", failureMessage(wire.ErrMalformedResponse, "Save failed."))
	assert.Equal(t, "quota exhausted", failureMessage(&RequestError{Status: 429, Message: "quota exhausted"}, "Save failed."))
	assert.Equal(t, "Reset failed.", failureMessage(errors.New("dial tcp: refused"), "Reset failed."))
}
