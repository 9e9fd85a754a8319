package catalog

import (
	"strings"

	"cantinho-algarvio/internal/domain"
)

// sampleDishes is the built-in dataset served when the catalog database is
// unreachable on a first page load, so the storefront is never empty.
var sampleDishes = []domain.Dish{
	{ID: "sample-1", Name: "Muamba de Galinha", Description: "Galinha, quiabos e óleo de palma, servida com funje", Price: 4500, Category: "pratos", Popular: true},
	{ID: "sample-2", Name: "Calulu de Peixe", Description: "Peixe seco com quiabos e batata doce", Price: 5000, Category: "pratos", Popular: true},
	{ID: "sample-3", Name: "Cataplana de Marisco", Description: "Mariscos frescos à moda do Algarve", Price: 8500, Category: "pratos", Featured: true},
	{ID: "sample-4", Name: "Frango Piri-Piri", Description: "Meio frango grelhado com molho piri-piri", Price: 3500, Category: "grelhados"},
	{ID: "sample-5", Name: "Mufete", Description: "Peixe grelhado, feijão de óleo de palma e banana pão", Price: 6000, Category: "grelhados", Featured: true},
	{ID: "sample-6", Name: "Doce de Ginguba", Description: "Sobremesa tradicional de amendoim", Price: 1500, Category: "sobremesas"},
}

func filterSample(q Query) []domain.Dish {
	var out []domain.Dish
	search := strings.ToLower(q.Search)
	for _, d := range sampleDishes {
		if q.Category != "" && d.Category != q.Category {
			continue
		}
		if q.Featured && !d.Featured {
			continue
		}
		if q.Popular && !d.Popular {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.Description), search) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func pageOf(dishes []domain.Dish, q Query) []domain.Dish {
	start := q.Offset()
	if start >= len(dishes) {
		return nil
	}
	end := start + q.PageSize
	if end > len(dishes) {
		end = len(dishes)
	}
	return dishes[start:end]
}
