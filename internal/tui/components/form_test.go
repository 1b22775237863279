package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/MikeBiancalana/datefield/internal/localize"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordForm(t *testing.T, dateRequired bool) *Form {
	t.Helper()
	form := NewForm("Add date", testBundle(t))
	form.SetNow(nowFunc)
	form.AddField(FormField{
		Label:    "Label",
		Key:      "label",
		Type:     FieldTypeText,
		Required: true,
	}).AddField(FormField{
		Label:       "Date",
		Key:         "date",
		Type:        FieldTypeDate,
		Required:    dateRequired,
		Placeholder: "t, tm, +3d, mon, 2026-12-31",
	})
	form.Show()
	return form
}

func TestForm_NewForm(t *testing.T) {
	form := NewForm("Test Form", nil)

	assert.NotNil(t, form)
	assert.NotNil(t, form.bundle, "nil bundle falls back to defaults")
	assert.Equal(t, "Test Form", form.title)
	assert.False(t, form.IsVisible())
	assert.Empty(t, form.fields)
}

func TestForm_ShowAndHide(t *testing.T) {
	form := newRecordForm(t, false)
	assert.True(t, form.IsVisible())
	assert.Contains(t, form.View(), "Add date")

	form.Hide()
	assert.False(t, form.IsVisible())
	assert.Empty(t, form.View())
}

func TestForm_TabCommitsDateField(t *testing.T) {
	form := newRecordForm(t, false)

	form, _ = form.Update(typeRunes("Dentist"))
	form, _ = form.Update(key(tea.KeyTab))
	assert.Equal(t, 1, form.focusIndex)

	form, _ = form.Update(typeRunes("tm"))
	assert.Contains(t, form.View(), "→ Mon, Jan 13, 2025 (tomorrow)")

	form, _ = form.Update(key(tea.KeyShiftTab))
	assert.Equal(t, 0, form.focusIndex)

	dates := form.GetDates()
	require.NotNil(t, dates["date"])
	assert.True(t, day(2025, time.January, 13).Equal(*dates["date"]))
	assert.Equal(t, "Mon, Jan 13, 2025", form.GetValues()["date"])
	assert.Equal(t, "Dentist", form.GetValues()["label"])
}

func TestForm_EnterSubmitsDates(t *testing.T) {
	form := newRecordForm(t, false)
	form.SetValues(map[string]string{"label": "Dentist", "date": "2025-02-03"})

	form, cmd := form.Update(key(tea.KeyEnter))
	msg := findMsg[FormSubmitMsg](t, cmd)

	assert.Equal(t, "Dentist", msg.Result.Values["label"])
	require.NotNil(t, msg.Result.Dates["date"])
	assert.True(t, day(2025, time.February, 3).Equal(*msg.Result.Dates["date"]))
	assert.True(t, form.submitted)
}

func TestForm_EmptyOptionalDateSubmitsNil(t *testing.T) {
	form := newRecordForm(t, false)
	form.SetValues(map[string]string{"label": "Someday"})

	_, cmd := form.Update(key(tea.KeyEnter))
	msg := findMsg[FormSubmitMsg](t, cmd)

	date, ok := msg.Result.Dates["date"]
	assert.True(t, ok)
	assert.Nil(t, date)
}

func TestForm_RejectedDateBlocksSubmit(t *testing.T) {
	form := newRecordForm(t, false)
	form.SetValues(map[string]string{"label": "Dentist", "date": "soonish"})

	form, cmd := form.Update(key(tea.KeyEnter))
	for _, msg := range collectMsgs(cmd) {
		_, submitted := msg.(FormSubmitMsg)
		assert.False(t, submitted)
	}

	assert.Contains(t, form.errors["date"], `"soonish" is not a date`)
	assert.Contains(t, form.View(), "✗")

	_, err := form.ParsedDateValue("date")
	assert.Error(t, err)
}

func TestForm_RevisitedRejectedDateNoLongerBlocks(t *testing.T) {
	form := newRecordForm(t, false)

	form, _ = form.Update(typeRunes("Dentist"))
	form, _ = form.Update(key(tea.KeyTab))
	form, _ = form.Update(typeRunes("garbage"))
	form, _ = form.Update(key(tea.KeyShiftTab))
	assert.Equal(t, "garbage", form.fields[1].rejected)

	// back on the field, which shows the stored (empty) value, and away
	// again without typing
	form, _ = form.Update(key(tea.KeyTab))
	assert.Empty(t, form.fields[1].date.Value())
	form, _ = form.Update(key(tea.KeyShiftTab))

	_, cmd := form.Update(key(tea.KeyEnter))
	msg := findMsg[FormSubmitMsg](t, cmd)
	assert.Nil(t, msg.Result.Dates["date"])
	assert.Equal(t, "Dentist", msg.Result.Values["label"])
}

func TestForm_RejectedDateWhileFocusedRejectsOnce(t *testing.T) {
	form := newRecordForm(t, false)

	form, _ = form.Update(typeRunes("Dentist"))
	form, _ = form.Update(key(tea.KeyTab))
	form, _ = form.Update(typeRunes("garbage"))

	form, cmd := form.Update(key(tea.KeyEnter))
	for _, msg := range collectMsgs(cmd) {
		_, submitted := msg.(FormSubmitMsg)
		assert.False(t, submitted)
	}
	assert.Contains(t, form.errors["date"], `"garbage" is not a date`)

	// the refocused field shows the stored value, so Enter now submits it
	_, cmd = form.Update(key(tea.KeyEnter))
	msg := findMsg[FormSubmitMsg](t, cmd)
	assert.Nil(t, msg.Result.Dates["date"])
}

func TestForm_RequiredFields(t *testing.T) {
	form := newRecordForm(t, true)

	form, _ = form.Update(key(tea.KeyEnter))

	assert.Equal(t, "Label is required", form.errors["label"])
	assert.Equal(t, "Date is required", form.errors["date"])
	assert.False(t, form.submitted)
}

func TestForm_CustomValidator(t *testing.T) {
	form := NewForm("Rename", testBundle(t))
	form.AddField(FormField{
		Label: "Label",
		Key:   "label",
		Type:  FieldTypeText,
		Validator: func(v string) error {
			if strings.Contains(v, "/") {
				return fmt.Errorf("no slashes")
			}
			return nil
		},
	})
	form.Show()
	form.SetValues(map[string]string{"label": "a/b"})

	form, _ = form.Update(key(tea.KeyEnter))
	assert.Equal(t, "no slashes", form.errors["label"])
}

func TestForm_EscapeCancels(t *testing.T) {
	form := newRecordForm(t, false)
	form.SetValues(map[string]string{"date": "t"})

	form, cmd := form.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	_, ok := cmd().(FormCancelMsg)
	assert.True(t, ok)
	assert.False(t, form.IsVisible())
	assert.Nil(t, form.GetDates()["date"], "cancel discards typed dates")
}

func TestForm_ShowClearsPreviousValues(t *testing.T) {
	form := newRecordForm(t, false)
	require.NoError(t, form.SetDate("date", day(2025, time.March, 3)))
	form.SetValues(map[string]string{"label": "old"})

	form.Show()
	assert.Equal(t, "", form.GetValues()["label"])
	assert.Nil(t, form.GetDates()["date"])
}

func TestForm_SetDate(t *testing.T) {
	form := newRecordForm(t, false)

	require.NoError(t, form.SetDate("date", day(2025, time.March, 3)))
	got, err := form.ParsedDateValue("date")
	require.NoError(t, err)
	assert.True(t, day(2025, time.March, 3).Equal(*got))
	assert.Equal(t, "Mon, Mar 3, 2025", form.GetValues()["date"])

	assert.Error(t, form.SetDate("label", nil))
	_, err = form.ParsedDateValue("missing")
	assert.Error(t, err)
}

func TestForm_SetBundleReformatsDates(t *testing.T) {
	form := newRecordForm(t, false)
	require.NoError(t, form.SetDate("date", day(2025, time.March, 3)))

	cfg := config.Default()
	cfg.Location = "UTC"
	cfg.DisplayFormat = "2 January 2006"
	bundle, err := localize.NewBundle(cfg, nowFunc)
	require.NoError(t, err)

	form.SetBundle(bundle)
	assert.Equal(t, "3 March 2025", form.GetValues()["date"])

	// the commit callback survives the swap
	form, _ = form.Update(key(tea.KeyTab))
	form.SetValues(map[string]string{"date": "t"})
	form, _ = form.Update(key(tea.KeyTab))
	assert.Equal(t, "12 January 2025", form.GetValues()["date"])
}

func TestForm_DatePlaceholderDefaultsToBundleHint(t *testing.T) {
	form := NewForm("Add date", testBundle(t))
	form.AddField(FormField{Label: "Date", Key: "date", Type: FieldTypeDate}).
		AddField(FormField{Label: "Due", Key: "due", Type: FieldTypeDate, Placeholder: "when?"})

	assert.Equal(t, "2026-12-31, t, tm, y, mon-sun, +3d, -2w", form.fields[0].date.textInput.Placeholder)
	assert.Equal(t, "when?", form.fields[1].date.textInput.Placeholder)

	cfg := config.Default()
	cfg.Location = "UTC"
	cfg.Parse.Relative = false
	bundle, err := localize.NewBundle(cfg, nowFunc)
	require.NoError(t, err)

	form.SetBundle(bundle)
	assert.Equal(t, "2026-12-31", form.fields[0].date.textInput.Placeholder)
	assert.Equal(t, "when?", form.fields[1].date.textInput.Placeholder)
}

func TestForm_UpdateNotVisibleDoesNothing(t *testing.T) {
	form := newRecordForm(t, false)
	form.Hide()

	form, cmd := form.Update(typeRunes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, "", form.GetValues()["label"])
}

func TestForm_SetWidth(t *testing.T) {
	form := newRecordForm(t, false)
	form.SetWidth(80)

	assert.Equal(t, 80, form.width)
	assert.Equal(t, 60, form.fields[0].textInput.Width)
	assert.Equal(t, 60, form.fields[1].date.textInput.Width)
}
