package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgqview/internal/domain"
	"rgqview/internal/logic"
)

type recorder struct {
	names []string
}

func (r *recorder) record(name string) { r.names = append(r.names, name) }

func newFixture(sections ...*domain.Section) (*Service, *logic.MemorySectionStore, *recorder) {
	store := logic.NewMemorySectionStore(sections...)
	svc := NewService(store, nil)
	rec := &recorder{}
	svc.OnLoadSection(rec.record)
	return svc, store, rec
}

func expandedState(store *logic.MemorySectionStore) map[string]bool {
	state := make(map[string]bool)
	for _, s := range store.GetAllSections() {
		state[s.Name] = s.IsTabExpanded
	}
	return state
}

func TestToggleSection(t *testing.T) {
	tests := []struct {
		name         string
		initial      bool
		wantExpanded bool
		wantEmitted  []string
	}{
		{name: "collapsed section expands and notifies", initial: false, wantExpanded: true, wantEmitted: []string{"Tutorial 1"}},
		{name: "expanded section collapses silently", initial: true, wantExpanded: false, wantEmitted: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := &domain.Section{Name: "Tutorial 1", IsTabExpanded: tt.initial}
			svc, _, rec := newFixture(section)

			svc.ToggleSection("Tutorial 1", section)

			assert.Equal(t, tt.wantExpanded, section.IsTabExpanded)
			assert.Equal(t, tt.wantEmitted, rec.names)
		})
	}
}

func TestToggleSectionTwiceRestoresState(t *testing.T) {
	for _, initial := range []bool{false, true} {
		section := &domain.Section{Name: "s", IsTabExpanded: initial}
		svc, _, _ := newFixture(section)

		svc.ToggleSection("s", section)
		svc.ToggleSection("s", section)

		assert.Equal(t, initial, section.IsTabExpanded)
	}
}

func TestToggleSectionUsesGivenStateNotLookup(t *testing.T) {
	stored := &domain.Section{Name: "a"}
	detached := &domain.Section{Name: "a"}
	svc, _, rec := newFixture(stored)

	svc.ToggleSection("a", detached)

	assert.True(t, detached.IsTabExpanded)
	assert.False(t, stored.IsTabExpanded)
	assert.Equal(t, []string{"a"}, rec.names)
}

func TestToggleSectionNilIsNoop(t *testing.T) {
	svc, _, rec := newFixture()
	svc.ToggleSection("ghost", nil)
	assert.Empty(t, rec.names)
}

func TestExpandAllSectionsNotifiesEveryKeyOnce(t *testing.T) {
	svc, store, rec := newFixture(
		&domain.Section{Name: "A"},
		&domain.Section{Name: "B", IsTabExpanded: true},
		&domain.Section{Name: "C"},
	)

	svc.ExpandAllSections()

	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, expandedState(store))
	assert.Equal(t, []string{"A", "B", "C"}, rec.names)
}

func TestExpandAllSectionsReNotifies(t *testing.T) {
	svc, _, rec := newFixture(&domain.Section{Name: "A"}, &domain.Section{Name: "B"})

	svc.ExpandAllSections()
	svc.ExpandAllSections()

	assert.Equal(t, []string{"A", "B", "A", "B"}, rec.names)
}

func TestCollapseAllSectionsIsSilent(t *testing.T) {
	svc, store, rec := newFixture(
		&domain.Section{Name: "A", IsTabExpanded: true},
		&domain.Section{Name: "B"},
		&domain.Section{Name: "C", IsTabExpanded: true},
	)

	svc.CollapseAllSections()

	assert.Equal(t, map[string]bool{"A": false, "B": false, "C": false}, expandedState(store))
	assert.Empty(t, rec.names)
}

func TestResultsPageScenario(t *testing.T) {
	responses := &domain.Section{Name: "responses"}
	comments := &domain.Section{Name: "comments"}
	svc, store, rec := newFixture(responses, comments)

	svc.ToggleSection("responses", store.GetSection("responses"))
	assert.Equal(t, map[string]bool{"responses": true, "comments": false}, expandedState(store))
	assert.Equal(t, []string{"responses"}, rec.names)

	rec.names = nil
	svc.ExpandAllSections()
	assert.Equal(t, map[string]bool{"responses": true, "comments": true}, expandedState(store))
	assert.Equal(t, []string{"responses", "comments"}, rec.names)

	rec.names = nil
	svc.CollapseAllSections()
	assert.Equal(t, map[string]bool{"responses": false, "comments": false}, expandedState(store))
	assert.Empty(t, rec.names)
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	section := &domain.Section{Name: "s"}
	svc := NewService(logic.NewMemorySectionStore(section), nil)

	var calls []string
	svc.OnLoadSection(func(n string) { calls = append(calls, "first:"+n) })
	svc.OnLoadSection(func(n string) { calls = append(calls, "second:"+n) })

	svc.ToggleSection("s", section)

	assert.Equal(t, []string{"first:s", "second:s"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	section := &domain.Section{Name: "s"}
	svc := NewService(logic.NewMemorySectionStore(section), nil)

	calls := 0
	unsubscribe := svc.OnLoadSection(func(string) { calls++ })
	unsubscribe()
	unsubscribe()

	svc.ToggleSection("s", section)
	assert.Zero(t, calls)
}

func TestReentrantToggleRunsInCallOrder(t *testing.T) {
	a := &domain.Section{Name: "a"}
	b := &domain.Section{Name: "b"}
	svc := NewService(logic.NewMemorySectionStore(a, b), nil)

	var calls []string
	svc.OnLoadSection(func(n string) {
		calls = append(calls, n)
		if n == "a" {
			svc.ToggleSection("b", b)
		}
	})

	svc.ToggleSection("a", a)

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.True(t, b.IsTabExpanded)
}

func TestExpandAllUsesSnapshotOfKeys(t *testing.T) {
	store := logic.NewMemorySectionStore(&domain.Section{Name: "a"}, &domain.Section{Name: "b"})
	svc := NewService(store, nil)

	var calls []string
	svc.OnLoadSection(func(n string) {
		calls = append(calls, n)
		if n == "a" {
			store.AddSection(&domain.Section{Name: "late"})
		}
	})

	svc.ExpandAllSections()

	assert.Equal(t, []string{"a", "b"}, calls)
	require.NotNil(t, store.GetSection("late"))
	assert.False(t, store.GetSection("late").IsTabExpanded)
}

func TestExpandedNames(t *testing.T) {
	svc, _, _ := newFixture(
		&domain.Section{Name: "a", IsTabExpanded: true},
		&domain.Section{Name: "b"},
		&domain.Section{Name: "c", IsTabExpanded: true},
	)

	assert.Equal(t, []string{"a", "c"}, svc.ExpandedNames())
	assert.True(t, svc.IsExpanded("a"))
	assert.False(t, svc.IsExpanded("b"))
	assert.False(t, svc.IsExpanded("missing"))
}
