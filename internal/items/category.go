package items

import "strings"

// CategoryAll is the catalog sentinel that disables category filtering.
const CategoryAll = "todas"

// UndefinedCategoryLabel is shown for items without a known category.
const UndefinedCategoryLabel = "não foi definida"

// Category is one of the fixed item categories.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories lists the item categories in display order.
var Categories = []Category{
	{Value: "eletronicos_e_acessorios", Label: "Eletrônicos e Acessórios"},
	{Value: "ferramentas_e_equipamentos", Label: "Ferramentas e Equipamentos"},
	{Value: "esportes_e_lazer", Label: "Esportes e Lazer"},
	{Value: "festas_e_eventos", Label: "Festas e Eventos"},
	{Value: "moda_e_acessorios", Label: "Moda e Acessórios"},
	{Value: "casa_e_jardim", Label: "Casa e Jardim"},
	{Value: "brinquedos_e_jogos", Label: "Brinquedos e Jogos"},
	{Value: "instrumentos_musicais", Label: "Instrumentos Musicais"},
	{Value: "transporte_e_mobilidade", Label: "Transporte e Mobilidade"},
	{Value: "outro", Label: "Outro"},
}

var categoryLabels = func() map[string]string {
	m := make(map[string]string, len(Categories))
	for _, c := range Categories {
		m[c.Value] = c.Label
	}
	return m
}()

// CategoryLabel returns the display label for value.
func CategoryLabel(value string) string {
	if label, ok := categoryLabels[value]; ok {
		return label
	}
	return UndefinedCategoryLabel
}

// ValidCategory reports whether value is one of Categories.
func ValidCategory(value string) bool {
	_, ok := categoryLabels[value]
	return ok
}

// IsAllCategories reports whether value disables category filtering.
func IsAllCategories(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == CategoryAll
}
