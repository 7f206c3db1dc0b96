package view

import (
	"reflect"
	"testing"

	"github.com/hammamikhairi/forager/internal/domain"
)

func windowOf(candidates, revealed, fetched int) domain.ResultWindow {
	w := domain.ResultWindow{Revealed: revealed}
	for i := 0; i < candidates; i++ {
		w.Candidates = append(w.Candidates, domain.RecipeSummary{Slug: "r"})
	}
	for i := 0; i < fetched; i++ {
		w.Fetched = append(w.Fetched, &domain.Recipe{Slug: "r"})
	}
	return w
}

func TestProject(t *testing.T) {
	single := &domain.Recipe{Slug: "spicy-tofu-bowl"}

	tests := []struct {
		name    string
		session domain.SearchSession
		want    ViewModel
	}{
		{
			name:    "idle empty session",
			session: domain.SearchSession{},
			want:    ViewModel{},
		},
		{
			name:    "busy shows spinner",
			session: domain.SearchSession{Busy: true},
			want:    ViewModel{ShowSpinner: true},
		},
		{
			name:    "error surfaces as text",
			session: domain.SearchSession{ErrMsg: "no recipe found"},
			want:    ViewModel{ErrorText: "no recipe found"},
		},
		{
			name:    "single recipe view",
			session: domain.SearchSession{Single: single},
			want:    ViewModel{Single: single},
		},
		{
			name:    "partially revealed window can load more",
			session: domain.SearchSession{Window: windowOf(14, 6, 6)},
			want:    ViewModel{Recipes: windowOf(14, 6, 6).Fetched, CanLoadMore: true},
		},
		{
			name:    "exhausted window cannot load more",
			session: domain.SearchSession{Window: windowOf(14, 14, 14)},
			want:    ViewModel{Recipes: windowOf(14, 14, 14).Fetched},
		},
		{
			name:    "load more in flight disables the control",
			session: domain.SearchSession{Window: windowOf(14, 6, 6), LoadingMore: true},
			want:    ViewModel{Recipes: windowOf(14, 6, 6).Fetched, LoadingMore: true},
		},
		{
			name:    "busy session disables load more",
			session: domain.SearchSession{Window: windowOf(14, 6, 6), Busy: true},
			want:    ViewModel{Recipes: windowOf(14, 6, 6).Fetched, ShowSpinner: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.session)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Project() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	s := domain.SearchSession{Window: windowOf(10, 6, 5), ErrMsg: ""}
	if !reflect.DeepEqual(Project(s), Project(s)) {
		t.Fatal("same session projected to different view models")
	}
}
