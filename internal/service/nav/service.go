package navservice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

const (
	defaultSection = "dashboard"
	homeTitle      = "Accueil"
)

var menu = []model.MenuItem{
	section("dashboard", "Dashboard",
		leaf("performance", "Vue globale des performances", "/dashboard/performance"),
		leaf("livraison", "Taux de livraison", "/dashboard/livraison"),
		leaf("retour", "Taux de retour", "/dashboard/retour"),
		leaf("produits", "Meilleurs produits", "/dashboard/produits"),
		leaf("statistiques", "Statistiques par période", "/dashboard/statistiques"),
	),
	section("stock", "Stock & Produits",
		leaf("produits", "Liste des produits", "/stock/produits"),
		leaf("mouvements", "Entrées / Sorties", "/stock/mouvements"),
		leaf("categories", "Catégories de produits", "/stock/categories"),
		leaf("etat", "État du stock", "/stock/etat"),
	),
	section("colis", "Gestion des Colis",
		leaf("suivi", "Suivi des colis", "/colis/suivi"),
		leaf("scans", "Scans & statuts", "/colis/scans"),
		leaf("historique", "Historique des livraisons", "/colis/historique"),
		leaf("retours", "Retours & récupération", "/colis/retours"),
	),
	section("financier", "Financier",
		leaf("depenses", "Dépenses publicitaires", "/financier/depenses"),
		leaf("couts", "Coût des stocks", "/financier/couts"),
		leaf("marge", "Calcul de marge", "/financier/marge"),
		leaf("export-stats", "Export des statistiques", "/financier/export"),
	),
	section("whatsapp", "WhatsApp Client",
		leaf("messages-auto", "Messages automatisés", "/whatsapp/messages-auto"),
		leaf("modeles", "Modèles de messages", "/whatsapp/modeles"),
		leaf("conversations", "Historique des conversations", "/whatsapp/conversations"),
	),
	section("alertes", "Alertes",
		leaf("retours-non-recuperes", "Retours non récupérés", "/alertes/retours"),
		leaf("alertes-client", "Alertes par client", "/alertes/client"),
		leaf("historique-alertes", "Historique des alertes", "/alertes/historique"),
	),
	section("exports", "Exports & Rapports",
		leaf("export-pdf", "Export PDF / Excel", "/exports/pdf-excel"),
		leaf("rapport-mensuel", "Rapport mensuel", "/exports/mensuel"),
		leaf("rapport-personnalise", "Rapport personnalisé", "/exports/personnalise"),
	),
	section("utilisateurs", "Utilisateurs",
		leaf("liste", "Liste des utilisateurs", "/utilisateurs/liste"),
		leaf("roles", "Rôles & permissions", "/utilisateurs/roles"),
		leaf("actions", "Suivi des actions", "/utilisateurs/actions"),
	),
	section("parametres", "Paramètres",
		leaf("apis", "Intégration APIs", "/parametres/apis"),
		leaf("messages", "Personnalisation messages", "/parametres/messages"),
		leaf("securite", "Authentification / Sécurité", "/parametres/securite"),
	),
}

func section(key, label string, children ...model.MenuItem) model.MenuItem {
	return model.MenuItem{Key: key, Label: label, Children: children}
}

func leaf(key, label, path string) model.MenuItem {
	return model.MenuItem{Key: key, Label: label, Path: path}
}

type service struct{}

func NewNavService() *service { return &service{} }

// Layout derives the shell for a path: the menu, the highlighted section and the breadcrumbs.
func (s *service) Layout(path string) model.Layout {
	return model.Layout{
		Menu:         Menu(),
		SelectedKeys: SelectedKeys(path),
		Breadcrumbs:  Breadcrumbs(path),
	}
}

func Menu() []model.MenuItem {
	out := make([]model.MenuItem, len(menu))
	for i, m := range menu {
		m.Children = append([]model.MenuItem(nil), m.Children...)
		out[i] = m
	}
	return out
}

// SelectedKeys is the first path segment, or the dashboard at the root.
func SelectedKeys(path string) []string {
	parts := segments(path)
	if len(parts) == 0 {
		return []string{defaultSection}
	}
	return []string{parts[0]}
}

func Breadcrumbs(path string) []model.Breadcrumb {
	parts := segments(path)
	crumbs := make([]model.Breadcrumb, 0, len(parts)+1)
	crumbs = append(crumbs, model.Breadcrumb{Title: homeTitle})
	for _, p := range parts {
		crumbs = append(crumbs, model.Breadcrumb{Title: title(p)})
	}
	return crumbs
}

func segments(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

func title(segment string) string {
	r, size := utf8.DecodeRuneInString(segment)
	if r == utf8.RuneError {
		return strings.ReplaceAll(segment, "-", " ")
	}
	return strings.ReplaceAll(string(unicode.ToUpper(r))+segment[size:], "-", " ")
}
