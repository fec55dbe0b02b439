package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

func sampleOptionSets() *OptionSets {
	o := NewOptionSets()
	o.SetUsers([]models.User{
		{ID: "u1", FullName: "أحمد علي"},
		{ID: "u2", FullName: "  "},
		{ID: "u3", FullName: "Sara Omar"},
		{ID: "u4", FullName: "سامي"},
	})
	o.SetMainCriteria([]models.MainCriteria{{ID: "m1", Name: "القيادة"}, {ID: "m2", Name: "الجودة"}, {ID: "m3", Name: "بدون فروع"}})
	o.SetSubCriteriaCatalog([]models.SubCriteria{
		{ID: "s1", Name: "التخطيط", MainCriteria: models.Ref{ID: "m1"}},
		{ID: "s2", Name: "التنفيذ", MainCriteria: models.Ref{ID: "m1", Name: "القيادة", Embedded: true}},
		{ID: "s3", Name: "التقييم", MainCriteria: models.Ref{ID: "m2"}},
	})
	return o
}

func TestSetCatalogResetsSelectionAndSearch(t *testing.T) {
	o := sampleOptionSets()
	require.NoError(t, o.Toggle(OptionUsers, "u1"))
	o.Search(OptionUsers, "sara")

	o.SetCatalog(OptionUsers, []Option{{Value: "u1", Label: "أحمد علي", Selected: true}, {Value: "u9", Label: "ليلى"}})

	view := o.View(OptionUsers)
	for _, opt := range view.Options {
		assert.False(t, opt.Selected)
	}
	assert.Equal(t, view.Options, view.Displayed)
	assert.Empty(t, view.SearchTerm)
}

func TestSetUsersSkipsBlankNames(t *testing.T) {
	o := sampleOptionSets()
	view := o.View(OptionUsers)
	require.Len(t, view.Options, 3)
	assert.Equal(t, "u1", view.Options[0].Value)
}

func TestSearchIsCaseInsensitiveAndKeepsSelection(t *testing.T) {
	o := sampleOptionSets()
	require.NoError(t, o.Toggle(OptionUsers, "u1"))
	o.Search(OptionUsers, "SARA")

	view := o.View(OptionUsers)
	require.Len(t, view.Displayed, 1)
	assert.Equal(t, "u3", view.Displayed[0].Value)
	assert.Equal(t, []string{"u1"}, o.SelectedValues(OptionUsers))
}

func TestSummaryLadder(t *testing.T) {
	o := NewOptionSets()
	assert.Equal(t, "اختر الحالة...", o.Summary(OptionStatus))

	require.NoError(t, o.Toggle(OptionStatus, "معتمد"))
	assert.Equal(t, "معتمد", o.Summary(OptionStatus))

	require.NoError(t, o.Toggle(OptionStatus, "مرفوض"))
	assert.Equal(t, "معتمد، مرفوض", o.Summary(OptionStatus))

	require.NoError(t, o.Toggle(OptionStatus, "قيد المراجعة"))
	assert.Equal(t, "معتمد، مرفوض +1", o.Summary(OptionStatus))

	assert.Equal(t, "اختر المستخدمين...", o.Summary(OptionUsers))
	assert.Equal(t, "اختر المعايير الرئيسية...", o.Summary(OptionMainCriteria))
	assert.Equal(t, "اختر المعايير الفرعية...", o.Summary(OptionSubCriteria))
}

func TestToggleMainCriteriaCascades(t *testing.T) {
	o := sampleOptionSets()
	assert.Empty(t, o.View(OptionSubCriteria).Options)

	require.NoError(t, o.Toggle(OptionMainCriteria, "m1"))
	sub := o.View(OptionSubCriteria)
	require.Len(t, sub.Options, 2)
	assert.Equal(t, []string{"s1", "s2"}, []string{sub.Options[0].Value, sub.Options[1].Value})

	require.NoError(t, o.Toggle(OptionSubCriteria, "s1"))
	require.NoError(t, o.Toggle(OptionMainCriteria, "m2"))
	assert.Empty(t, o.SelectedValues(OptionSubCriteria))
	assert.Len(t, o.View(OptionSubCriteria).Options, 3)
}

func TestToggleMainCriteriaWithoutChildrenEmptiesSubCriteria(t *testing.T) {
	o := sampleOptionSets()
	require.NoError(t, o.Toggle(OptionMainCriteria, "m3"))
	assert.Empty(t, o.View(OptionSubCriteria).Options)
	assert.Empty(t, o.View(OptionSubCriteria).Displayed)
}

func TestCascadeKeepsSubSearchTerm(t *testing.T) {
	o := sampleOptionSets()
	o.Search(OptionSubCriteria, "التن")
	require.NoError(t, o.Toggle(OptionMainCriteria, "m1"))

	view := o.View(OptionSubCriteria)
	assert.Equal(t, "التن", view.SearchTerm)
	require.Len(t, view.Displayed, 1)
	assert.Equal(t, "s2", view.Displayed[0].Value)
}

func TestSelectAllUsesDisplayedSubset(t *testing.T) {
	o := sampleOptionSets()
	o.Search(OptionUsers, "sa")
	o.SelectAll(OptionUsers)
	assert.Equal(t, []string{"u3"}, o.SelectedValues(OptionUsers))

	o.Search(OptionUsers, "")
	o.SelectAll(OptionUsers)
	assert.Len(t, o.SelectedValues(OptionUsers), 3)
}

func TestClearSelectionClearsHiddenOptions(t *testing.T) {
	o := sampleOptionSets()
	o.SelectAll(OptionUsers)
	o.Search(OptionUsers, "sara")
	o.ClearSelection(OptionUsers)
	assert.Empty(t, o.SelectedValues(OptionUsers))
}

func TestSelectAllAndClearOnMainCriteriaCascade(t *testing.T) {
	o := sampleOptionSets()
	o.SelectAll(OptionMainCriteria)
	assert.Len(t, o.View(OptionSubCriteria).Options, 3)

	o.ClearSelection(OptionMainCriteria)
	assert.Empty(t, o.View(OptionSubCriteria).Options)
}

func TestToggleUnknownValue(t *testing.T) {
	o := sampleOptionSets()
	err := o.Toggle(OptionUsers, "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestDropdownsOneOpenAtATime(t *testing.T) {
	o := sampleOptionSets()
	o.Search(OptionStatus, "مر")
	o.ToggleDropdown(OptionUsers)
	assert.Equal(t, OptionUsers, o.OpenDropdown())

	o.ToggleDropdown(OptionStatus)
	assert.Equal(t, OptionStatus, o.OpenDropdown())
	assert.False(t, o.View(OptionUsers).Open)
	status := o.View(OptionStatus)
	assert.Empty(t, status.SearchTerm)
	assert.Len(t, status.Displayed, 3)

	o.ToggleDropdown(OptionStatus)
	assert.Equal(t, OptionType(""), o.OpenDropdown())

	o.ToggleDropdown(OptionMainCriteria)
	o.CloseAllDropdowns()
	assert.Equal(t, OptionType(""), o.OpenDropdown())
}

func TestClearAll(t *testing.T) {
	o := sampleOptionSets()
	o.SelectAll(OptionMainCriteria)
	o.SelectAll(OptionSubCriteria)
	o.SelectAll(OptionStatus)
	o.ClearAll()
	for _, typ := range OptionTypes {
		assert.Empty(t, o.SelectedValues(typ), typ)
	}
	assert.Empty(t, o.View(OptionSubCriteria).Options)
}

func TestParseOptionType(t *testing.T) {
	typ, err := ParseOptionType("subCriteria")
	require.NoError(t, err)
	assert.Equal(t, OptionSubCriteria, typ)

	_, err = ParseOptionType("sectors")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
