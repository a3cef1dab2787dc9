package analyze

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

func newTestView() *View {
	v := NewView(nil, nil, "data/cvs/student_cv.txt")
	v.SetDimensions(100, 30)
	v.Init()
	return v
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, "cv.pdf")

	require.NotNil(t, v)
	assert.Equal(t, "cv.pdf", v.CVPath())
	assert.Empty(t, v.Role())
	assert.Equal(t, domain.RolePresets, v.Suggestions())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_SubmitRequestsAnalysis(t *testing.T) {
	v := newTestView()
	typeText(v, "Data Scientist")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.AnalysisRequested{
		Role:   "Data Scientist",
		CVPath: "data/cvs/student_cv.txt",
	}, cmd())
	assert.True(t, v.Busy())
}

func TestView_SubmitWithoutRole(t *testing.T) {
	v := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "target role is required")
	assert.False(t, v.Busy())
}

func TestView_IgnoresKeysWhileBusy(t *testing.T) {
	v := newTestView()
	typeText(v, "QA")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	typeText(v, "x")
	assert.Equal(t, "QA", v.Role())

	v.Update(messages.ReportReady{Role: "QA", Report: "## Report"})
	assert.False(t, v.Busy())
	assert.NoError(t, v.Err())
}

func TestView_ReportReadyWithError(t *testing.T) {
	v := newTestView()
	typeText(v, "QA")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Update(messages.ReportReady{Role: "QA", Err: errors.New("CV not found")})

	assert.False(t, v.Busy())
	assert.EqualError(t, v.Err(), "CV not found")
}

func TestView_TabMovesFocusToCV(t *testing.T) {
	v := newTestView()

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "x")

	assert.Equal(t, "data/cvs/student_cv.txtx", v.CVPath())
	assert.Empty(t, v.Role())

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(v, "y")
	assert.Equal(t, "y", v.Role())
}

func TestView_ArrowsCycleSuggestions(t *testing.T) {
	v := newTestView()

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, domain.RolePresets[0], v.Role())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, domain.RolePresets[1], v.Role())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, domain.RolePresets[len(domain.RolePresets)-1], v.Role(), "wraps around")
}

func TestView_SetTitlesMergesWithoutDuplicates(t *testing.T) {
	v := newTestView()

	v.Update(messages.TitlesLoaded{Titles: []string{"data scientist", "QA Engineer"}})

	got := v.Suggestions()
	assert.Len(t, got, len(domain.RolePresets)+1)
	assert.Equal(t, "QA Engineer", got[len(got)-1])
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := newTestView()
	typeText(v, "QA")
	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	v.Reset()

	assert.Empty(t, v.Role())
	assert.NoError(t, v.Err())
	assert.Equal(t, "data/cvs/student_cv.txt", v.CVPath())
}

func TestView_Render(t *testing.T) {
	v := newTestView()

	view := v.View()
	assert.Contains(t, view, "Analyze CV")
	assert.Contains(t, view, "Target role")
	assert.Contains(t, view, "CV file")
	assert.Contains(t, view, domain.RolePresets[0])
}
