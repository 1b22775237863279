package dateinput

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type utcFormatter struct{}

func (utcFormatter) Location() *time.Location { return time.UTC }

func (utcFormatter) Date(t time.Time) (int, time.Month, int) { return t.In(time.UTC).Date() }

func (utcFormatter) Clock(t time.Time) (int, int, int) { return t.In(time.UTC).Clock() }

func (utcFormatter) Weekday(t time.Time) time.Weekday { return t.In(time.UTC).Weekday() }

var layoutLocalizer = LocalizerFunc[string](func(t time.Time, f Formatter, layout string) string {
	return t.In(f.Location()).Format(layout)
})

func parseISO(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type changeCall struct {
	Date *time.Time
	Raw  string
}

// recorder stands in for the owner of the value: it stores what each commit
// reports and feeds it back as the new value.
type recorder struct {
	calls []changeCall
	input *Input[string]
}

func (r *recorder) onChange(d *time.Time, raw string) {
	r.calls = append(r.calls, changeCall{Date: d, Raw: raw})
	if r.input != nil {
		r.input.SetValue(d)
	}
}

func newProps(value *time.Time) Props[string] {
	return Props[string]{
		Value:         value,
		EditFormat:    "2006-01-02",
		DisplayFormat: "Jan 2, 2006",
		Formatter:     utcFormatter{},
		Localizer:     layoutLocalizer,
		Parse:         parseISO,
	}
}

func TestDeriveText(t *testing.T) {
	tests := []struct {
		name    string
		value   *time.Time
		editing bool
		want    string
	}{
		{name: "nil value", value: nil, want: ""},
		{name: "zero time", value: &time.Time{}, want: ""},
		{name: "display format", value: date(2024, time.January, 15), want: "Jan 15, 2024"},
		{name: "edit format", value: date(2024, time.January, 15), editing: true, want: "2024-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveText(tt.value, tt.editing, "2006-01-02", "Jan 2, 2006", utcFormatter{}, layoutLocalizer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveText_InvalidValueNeverReachesLocalizer(t *testing.T) {
	called := false
	loc := LocalizerFunc[string](func(time.Time, Formatter, string) string {
		called = true
		return "x"
	})

	assert.Equal(t, "", DeriveText(&time.Time{}, true, "", "", utcFormatter{}, loc))
	assert.False(t, called)
}

func TestNew_StartsCleanWithCanonicalText(t *testing.T) {
	in := New(newProps(date(2024, time.March, 3)))

	assert.Equal(t, StateClean, in.State())
	assert.Equal(t, "Mar 3, 2024", in.Text())
	assert.Equal(t, in.Canonical(), in.Text())
}

func TestReconcile_IdempotentWhenPropsUnchanged(t *testing.T) {
	in := New(newProps(date(2024, time.March, 3)))
	first := in.Text()

	for i := 0; i < 5; i++ {
		in.SetProps(newProps(date(2024, time.March, 3)))
		in.Reconcile()
		assert.Equal(t, first, in.Text())
	}
}

func TestReconcile_CleanFollowsExternalValue(t *testing.T) {
	in := New(newProps(date(2024, time.March, 3)))

	in.SetValue(date(2025, time.July, 4))
	assert.Equal(t, "Jul 4, 2025", in.Text())

	in.SetEditing(true)
	assert.Equal(t, "2025-07-04", in.Text())

	in.SetFormats("02/01/2006", "2 Jan")
	assert.Equal(t, "04/07/2025", in.Text())

	in.SetValue(nil)
	assert.Equal(t, "", in.Text())
	assert.Equal(t, StateClean, in.State())
}

func TestHandleChange_StoresTextVerbatim(t *testing.T) {
	parsed := false
	props := newProps(nil)
	props.Parse = func(string) (*time.Time, error) {
		parsed = true
		return nil, nil
	}
	in := New(props)

	in.HandleChange("2024-0")
	assert.Equal(t, "2024-0", in.Text())
	assert.Equal(t, StateDirty, in.State())

	in.HandleChange("  2024-01-1 ")
	assert.Equal(t, "  2024-01-1 ", in.Text())
	assert.False(t, parsed, "keystrokes must not parse")
}

func TestDirtyBufferSurvivesExternalChanges(t *testing.T) {
	in := New(newProps(date(2024, time.March, 3)))
	in.HandleChange("2024-04")

	in.SetValue(date(2030, time.December, 31))
	in.SetValue(nil)
	in.SetFormats("01/02/2006", "Monday")
	in.SetFormatter(utcFormatter{})
	in.Reconcile()

	assert.Equal(t, "2024-04", in.Text())
	assert.True(t, in.Dirty())
}

func TestModeSwitchMidEditPreservesBuffer(t *testing.T) {
	props := newProps(date(2024, time.January, 1))
	props.Editing = true
	in := New(props)

	in.HandleChange("Jan")
	in.SetEditing(false)

	assert.Equal(t, "Jan", in.Text())
	assert.Equal(t, StateDirty, in.State())
}

func TestHandleBlur_CommitsValidDate(t *testing.T) {
	rec := &recorder{}
	props := newProps(nil)
	props.OnChange = rec.onChange
	in := New(props)

	in.HandleChange("2024-01-15")
	c, ok := in.HandleBlur()

	require.True(t, ok)
	assert.False(t, c.Rejected)
	assert.Equal(t, "2024-01-15", c.Raw)
	require.Len(t, rec.calls, 1)

	want := changeCall{Date: date(2024, time.January, 15), Raw: "2024-01-15"}
	if diff := cmp.Diff(want, rec.calls[0]); diff != "" {
		t.Errorf("onChange mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StateClean, in.State())
}

func TestHandleBlur_RejectsUnparsableText(t *testing.T) {
	rec := &recorder{}
	props := newProps(date(2024, time.January, 1))
	props.OnChange = rec.onChange
	props.Parse = func(string) (*time.Time, error) { return nil, nil }
	in := New(props)

	in.HandleChange("not a date")
	c, ok := in.HandleBlur()

	require.True(t, ok)
	assert.True(t, c.Rejected)
	assert.Nil(t, c.Date)
	assert.Equal(t, "", in.Text())
	require.Len(t, rec.calls, 1)
	assert.Nil(t, rec.calls[0].Date)
	assert.Equal(t, "not a date", rec.calls[0].Raw)
}

func TestHandleBlur_ParserErrorIsRejection(t *testing.T) {
	props := newProps(nil)
	parseErr := errors.New("bad month")
	props.Parse = func(string) (*time.Time, error) { return date(2024, time.January, 1), parseErr }
	in := New(props)

	in.HandleChange("2024-13-01")
	c, ok := in.HandleBlur()

	require.True(t, ok)
	assert.True(t, c.Rejected)
	assert.Nil(t, c.Date)
	assert.ErrorIs(t, c.Err, parseErr)
}

func TestHandleBlur_InvalidParsedDateIsRejection(t *testing.T) {
	props := newProps(nil)
	props.Parse = func(string) (*time.Time, error) { return &time.Time{}, nil }
	in := New(props)

	in.HandleChange("0000")
	c, _ := in.HandleBlur()

	assert.True(t, c.Rejected)
	assert.Equal(t, "", in.Text())
}

func TestHandleBlur_EmptyTextIsAClear(t *testing.T) {
	parseResults := []*time.Time{nil, date(1999, time.May, 5)}

	for _, result := range parseResults {
		rec := &recorder{}
		props := newProps(date(2024, time.January, 1))
		props.OnChange = rec.onChange
		props.Parse = func(string) (*time.Time, error) { return result, nil }
		in := New(props)

		in.HandleChange("")
		c, ok := in.HandleBlur()

		require.True(t, ok)
		assert.False(t, c.Rejected)
		assert.True(t, c.Cleared())
		require.Len(t, rec.calls, 1)
		assert.Equal(t, result, rec.calls[0].Date)
		assert.Equal(t, "", rec.calls[0].Raw)
	}
}

func TestHandleBlur_NoOpWhenClean(t *testing.T) {
	rec := &recorder{}
	blurs := 0
	props := newProps(date(2024, time.January, 1))
	props.OnChange = rec.onChange
	props.OnBlur = func() { blurs++ }
	in := New(props)

	_, ok := in.HandleBlur()
	assert.False(t, ok)
	assert.Empty(t, rec.calls)
	assert.Equal(t, 1, blurs)
}

func TestHandleBlur_OnBlurRunsBeforeCommit(t *testing.T) {
	var order []string
	props := newProps(nil)
	props.OnBlur = func() { order = append(order, "blur") }
	props.OnChange = func(*time.Time, string) { order = append(order, "change") }
	in := New(props)

	in.HandleChange("2024-02-02")
	in.HandleBlur()
	in.HandleBlur()

	assert.Equal(t, []string{"blur", "change", "blur"}, order)
}

func TestHandleBlur_OneCommitPerDirtyPeriod(t *testing.T) {
	rec := &recorder{}
	props := newProps(nil)
	props.OnChange = rec.onChange
	in := New(props)

	in.HandleChange("2024-0")
	in.HandleChange("2024-02-0")
	in.HandleChange("2024-02-03")
	in.HandleBlur()
	in.HandleBlur()

	assert.Len(t, rec.calls, 1)
}

func TestCommit_ReentrantOwnerUpdateWins(t *testing.T) {
	rec := &recorder{}
	props := newProps(nil)
	props.Editing = true
	props.OnChange = rec.onChange
	in := New(props)
	rec.input = in

	in.HandleChange("2024-1-5")
	in.SetParse(func(string) (*time.Time, error) { return date(2024, time.January, 5), nil })
	in.HandleBlur()

	assert.Equal(t, "2024-01-05", in.Text(), "owner's value is reformatted through the edit format")
	in.Reconcile()
	assert.Equal(t, "2024-01-05", in.Text())
}

func TestCommit_ResyncIsForcedAfterRejection(t *testing.T) {
	// The owner ignores the commit and keeps its old value. The rejected
	// text was cleared to "" and the owner's value derives "" too, so only
	// a forced resync re-arms the field.
	props := newProps(nil)
	props.Parse = func(string) (*time.Time, error) { return nil, nil }
	in := New(props)

	in.HandleChange("garbage")
	in.HandleBlur()
	assert.Equal(t, "", in.Text())

	in.Reconcile()
	assert.Equal(t, "", in.Text())
	assert.Equal(t, StateClean, in.State())

	in.SetValue(date(2024, time.June, 1))
	assert.Equal(t, "Jun 1, 2024", in.Text())
}

func TestCommit_IgnoredValueRestoresCanonicalText(t *testing.T) {
	in := New(newProps(date(2024, time.January, 1)))

	in.HandleChange("2024-02-02")
	in.HandleBlur()
	assert.Equal(t, "2024-02-02", in.Text(), "buffer is provisional until the value flows back")

	in.Reconcile()
	assert.Equal(t, "Jan 1, 2024", in.Text())
}

func TestCommit_ExternalChangeWhileDirtyAppliesAfterCommit(t *testing.T) {
	in := New(newProps(date(2024, time.January, 1)))

	in.HandleChange("2024-0")
	in.SetValue(date(2026, time.October, 14))
	assert.Equal(t, "2024-0", in.Text())

	in.SetParse(func(string) (*time.Time, error) { return nil, errors.New("incomplete") })
	in.HandleBlur()
	in.Reconcile()

	assert.Equal(t, "Oct 14, 2026", in.Text())
}

func TestReset_DiscardsEdits(t *testing.T) {
	rec := &recorder{}
	props := newProps(date(2024, time.January, 1))
	props.OnChange = rec.onChange
	in := New(props)

	in.HandleChange("2025-")
	in.Reset()

	assert.Equal(t, "Jan 1, 2024", in.Text())
	assert.Equal(t, StateClean, in.State())
	_, ok := in.HandleBlur()
	assert.False(t, ok)
	assert.Empty(t, rec.calls)
}

func TestRoundTrip_DateOnlyFormat(t *testing.T) {
	days := []*time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 29),
		date(1999, time.December, 31),
		date(2000, time.January, 1),
	}

	for _, d := range days {
		text := DeriveText(d, true, "2006-01-02", "", utcFormatter{}, layoutLocalizer)
		got, err := parseISO(text)
		require.NoError(t, err)
		assert.True(t, d.Equal(*got), "round trip of %s gave %s", d, got)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "dirty", StateDirty.String())
	assert.Equal(t, "unknown", State(7).String())
}
