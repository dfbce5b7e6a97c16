package navservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		selected []string
		crumbs   []string
	}{
		{path: "/", selected: []string{"dashboard"}, crumbs: []string{"Accueil"}},
		{path: "", selected: []string{"dashboard"}, crumbs: []string{"Accueil"}},
		{path: "/stock/categories", selected: []string{"stock"}, crumbs: []string{"Accueil", "Stock", "Categories"}},
		{path: "/alertes/retours-non-recuperes", selected: []string{"alertes"}, crumbs: []string{"Accueil", "Alertes", "Retours non recuperes"}},
		{path: "//colis//suivi/?tab=1", selected: []string{"colis"}, crumbs: []string{"Accueil", "Colis", "Suivi"}},
		{path: "/état", selected: []string{"état"}, crumbs: []string{"Accueil", "État"}},
	}

	svc := NewNavService()
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			l := svc.Layout(tc.path)
			assert.Equal(t, tc.selected, l.SelectedKeys)

			titles := make([]string, 0, len(l.Breadcrumbs))
			for _, b := range l.Breadcrumbs {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tc.crumbs, titles)
		})
	}
}

func TestMenuIsCopied(t *testing.T) {
	t.Parallel()

	m := Menu()
	m[0].Label = "changed"
	m[1].Children[0] = model.MenuItem{}

	fresh := Menu()
	assert.Equal(t, "Dashboard", fresh[0].Label)
	assert.Equal(t, "/stock/produits", fresh[1].Children[0].Path)
	assert.Equal(t, "utilisateurs", fresh[7].Key)
}
