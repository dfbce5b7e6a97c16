package model

type MenuItem struct {
	Key      string
	Label    string
	Path     string
	Children []MenuItem
}

type Breadcrumb struct {
	Title string
}

type Layout struct {
	Menu         []MenuItem
	SelectedKeys []string
	Breadcrumbs  []Breadcrumb
}
