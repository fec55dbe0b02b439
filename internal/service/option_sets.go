package service

import (
	"strconv"
	"strings"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

// OptionType names one of the four report filter selections.
type OptionType string

const (
	OptionUsers        OptionType = "users"
	OptionMainCriteria OptionType = "mainCriteria"
	OptionSubCriteria  OptionType = "subCriteria"
	OptionStatus       OptionType = "status"
)

// OptionTypes lists the sets in display order.
var OptionTypes = []OptionType{OptionUsers, OptionMainCriteria, OptionSubCriteria, OptionStatus}

var optionPlaceholders = map[OptionType]string{
	OptionUsers:        "اختر المستخدمين...",
	OptionMainCriteria: "اختر المعايير الرئيسية...",
	OptionSubCriteria:  "اختر المعايير الفرعية...",
	OptionStatus:       "اختر الحالة...",
}

// StatusCatalog is the fixed status option list.
var StatusCatalog = []string{models.ActivityStatusApproved, models.ActivityStatusRejected, models.ActivityStatusPending}

// ErrUnknownOptionType rejects a set name outside OptionTypes.
var ErrUnknownOptionType = appErrors.Clone(appErrors.ErrValidation, "unknown option set")

// ParseOptionType validates a set name from a request path.
func ParseOptionType(raw string) (OptionType, error) {
	t := OptionType(raw)
	if _, ok := optionPlaceholders[t]; !ok {
		return "", ErrUnknownOptionType
	}
	return t, nil
}

// Option is one selectable dropdown entry.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// OptionSetView is the rendered state of one set.
type OptionSetView struct {
	Type          OptionType `json:"type"`
	Options       []Option   `json:"options"`
	Displayed     []Option   `json:"displayed"`
	SearchTerm    string     `json:"searchTerm"`
	Summary       string     `json:"summary"`
	SelectedCount int        `json:"selectedCount"`
	Open          bool       `json:"open"`
}

type optionSet struct {
	options   []Option
	search    string
	displayed []int
}

func (s *optionSet) reset(options []Option) {
	s.options = options
	for i := range s.options {
		s.options[i].Selected = false
	}
	s.search = ""
	s.refilter()
}

func (s *optionSet) refilter() {
	term := strings.ToLower(s.search)
	s.displayed = s.displayed[:0]
	for i, opt := range s.options {
		if term == "" || strings.Contains(strings.ToLower(opt.Label), term) {
			s.displayed = append(s.displayed, i)
		}
	}
}

func (s *optionSet) selected() []Option {
	out := make([]Option, 0)
	for _, opt := range s.options {
		if opt.Selected {
			out = append(out, opt)
		}
	}
	return out
}

// OptionSets holds the four report filter selections and the dropdown state.
// It is not safe for concurrent use; the owning workspace serialises access.
type OptionSets struct {
	sets   map[OptionType]*optionSet
	allSub []models.SubCriteria
	open   OptionType
}

// NewOptionSets returns empty sets with the fixed status catalog loaded.
func NewOptionSets() *OptionSets {
	o := &OptionSets{sets: make(map[OptionType]*optionSet, len(OptionTypes))}
	for _, t := range OptionTypes {
		o.sets[t] = &optionSet{}
	}
	status := make([]Option, 0, len(StatusCatalog))
	for _, s := range StatusCatalog {
		status = append(status, Option{Value: s, Label: s})
	}
	o.sets[OptionStatus].reset(status)
	return o
}

// SetCatalog replaces the options of a set, clearing selection and search.
// Replacing main criteria recomputes the sub criteria candidates.
func (o *OptionSets) SetCatalog(t OptionType, options []Option) {
	copied := append([]Option(nil), options...)
	o.sets[t].reset(copied)
	if t == OptionMainCriteria {
		o.cascade()
	}
}

// SetUsers loads user options, skipping users with a blank full name.
func (o *OptionSets) SetUsers(users []models.User) {
	options := make([]Option, 0, len(users))
	for _, u := range users {
		if strings.TrimSpace(u.FullName) == "" {
			continue
		}
		options = append(options, Option{Value: u.ID, Label: u.FullName})
	}
	o.SetCatalog(OptionUsers, options)
}

// SetMainCriteria loads main criteria options.
func (o *OptionSets) SetMainCriteria(items []models.MainCriteria) {
	options := make([]Option, 0, len(items))
	for _, c := range items {
		options = append(options, Option{Value: c.ID, Label: c.Name})
	}
	o.SetCatalog(OptionMainCriteria, options)
}

// SetSubCriteriaCatalog stores the full sub criteria list and derives the
// candidates for the current main criteria selection.
func (o *OptionSets) SetSubCriteriaCatalog(items []models.SubCriteria) {
	o.allSub = append([]models.SubCriteria(nil), items...)
	o.cascade()
}

// Search filters the displayed subset of a set by label.
func (o *OptionSets) Search(t OptionType, term string) {
	s := o.sets[t]
	s.search = term
	s.refilter()
}

// Toggle flips the option with the given value.
func (o *OptionSets) Toggle(t OptionType, value string) error {
	s := o.sets[t]
	for i := range s.options {
		if s.options[i].Value == value {
			s.options[i].Selected = !s.options[i].Selected
			o.changed(t)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "option not found")
}

// SelectAll selects every currently displayed option.
func (o *OptionSets) SelectAll(t OptionType) {
	s := o.sets[t]
	for _, idx := range s.displayed {
		s.options[idx].Selected = true
	}
	o.changed(t)
}

// ClearSelection deselects every option of the set, displayed or not.
func (o *OptionSets) ClearSelection(t OptionType) {
	s := o.sets[t]
	for i := range s.options {
		s.options[i].Selected = false
	}
	o.changed(t)
}

// ClearAll deselects every option in every set.
func (o *OptionSets) ClearAll() {
	for _, t := range OptionTypes {
		s := o.sets[t]
		for i := range s.options {
			s.options[i].Selected = false
		}
	}
	o.cascade()
}

// Selected returns the selected options of a set in catalog order.
func (o *OptionSets) Selected(t OptionType) []Option {
	return o.sets[t].selected()
}

// SelectedValues returns the ids of the selected options.
func (o *OptionSets) SelectedValues(t OptionType) []string {
	selected := o.sets[t].selected()
	values := make([]string, len(selected))
	for i, opt := range selected {
		values[i] = opt.Value
	}
	return values
}

// SelectedLabels returns the labels of the selected options.
func (o *OptionSets) SelectedLabels(t OptionType) []string {
	selected := o.sets[t].selected()
	labels := make([]string, len(selected))
	for i, opt := range selected {
		labels[i] = opt.Label
	}
	return labels
}

// Summary renders the closed-dropdown caption for a set.
func (o *OptionSets) Summary(t OptionType) string {
	labels := o.SelectedLabels(t)
	switch n := len(labels); {
	case n == 0:
		return optionPlaceholders[t]
	case n == 1:
		return labels[0]
	case n == 2:
		return labels[0] + "، " + labels[1]
	default:
		return labels[0] + "، " + labels[1] + " +" + strconv.Itoa(n-2)
	}
}

// ToggleDropdown closes every dropdown and, when t was closed, opens it with
// a cleared search term.
func (o *OptionSets) ToggleDropdown(t OptionType) {
	wasOpen := o.open == t
	o.open = ""
	if !wasOpen {
		o.open = t
		o.Search(t, "")
	}
}

// CloseAllDropdowns closes whichever dropdown is open.
func (o *OptionSets) CloseAllDropdowns() {
	o.open = ""
}

// OpenDropdown returns the open dropdown or "" when all are closed.
func (o *OptionSets) OpenDropdown() OptionType {
	return o.open
}

// View renders one set.
func (o *OptionSets) View(t OptionType) OptionSetView {
	s := o.sets[t]
	displayed := make([]Option, 0, len(s.displayed))
	for _, idx := range s.displayed {
		displayed = append(displayed, s.options[idx])
	}
	return OptionSetView{
		Type:          t,
		Options:       append([]Option{}, s.options...),
		Displayed:     displayed,
		SearchTerm:    s.search,
		Summary:       o.Summary(t),
		SelectedCount: len(s.selected()),
		Open:          o.open == t,
	}
}

// Views renders every set in display order.
func (o *OptionSets) Views() []OptionSetView {
	views := make([]OptionSetView, 0, len(OptionTypes))
	for _, t := range OptionTypes {
		views = append(views, o.View(t))
	}
	return views
}

func (o *OptionSets) changed(t OptionType) {
	if t == OptionMainCriteria {
		o.cascade()
	}
}

// cascade rebuilds sub criteria candidates from the selected main criteria.
// Sub criteria selection is reset; the current sub search term is kept.
func (o *OptionSets) cascade() {
	parents := make(map[string]struct{})
	for _, v := range o.SelectedValues(OptionMainCriteria) {
		parents[v] = struct{}{}
	}
	options := make([]Option, 0)
	if len(parents) > 0 {
		for _, sub := range o.allSub {
			if _, ok := parents[sub.MainCriteria.ID]; ok {
				options = append(options, Option{Value: sub.ID, Label: sub.Name})
			}
		}
	}
	s := o.sets[OptionSubCriteria]
	s.options = options
	s.refilter()
}
