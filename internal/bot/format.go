package bot

import (
	"fmt"
	"strings"

	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/pricing"
	"github.com/Spok95/decor-catalog/internal/domain/products"
)

const maxMessageLen = 4000

func typeLabel(name string) string {
	if name == "" {
		return "тип не указан"
	}
	return name
}

func formatProducts(list []products.Product) string {
	if len(list) == 0 {
		return "Товаров нет."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Товары (%d):\n", len(list))
	for _, p := range list {
		fmt.Fprintf(&sb, "#%d %s [%s], арт. %s — %s ₽\n",
			p.ID, p.Name, typeLabel(p.TypeName), p.Articul, p.MinCost.StringFixed(2))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatProduct(p products.Product) string {
	return fmt.Sprintf("Товар #%d\nНаименование: %s\nАртикул: %s\nТип: %s\nШирина: %s м\nМин. стоимость для партнёра: %s ₽",
		p.ID, p.Name, p.Articul, typeLabel(p.TypeName), p.Width.StringFixed(2), p.MinCost.StringFixed(2))
}

func formatMaterials(list []materials.Material) string {
	if len(list) == 0 {
		return "Материалов нет."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Материалы (%d):\n", len(list))
	for _, m := range list {
		low := ""
		if m.StockQuantity < m.MinQuantity {
			low = " ⚠️"
		}
		fmt.Fprintf(&sb, "#%d %s [%s] — %s ₽/%s, остаток %d %s%s\n",
			m.ID, m.Name, typeLabel(m.TypeName), m.UnitPrice.StringFixed(2), m.Unit.Label(),
			m.StockQuantity, m.Unit.Label(), low)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatMaterial(m materials.Material) string {
	return fmt.Sprintf("Материал #%d\nНаименование: %s\nТип: %s\nЦена: %s ₽ за %s\nНа складе: %d\nМин. количество: %d\nВ упаковке: %d",
		m.ID, m.Name, typeLabel(m.TypeName), m.UnitPrice.StringFixed(2), m.Unit.Label(),
		m.StockQuantity, m.MinQuantity, m.PackageQuantity)
}

func formatRecalc(r pricing.Result) string {
	s := fmt.Sprintf("Пересчёт выполнен.\nОбновлено: %d", r.Updated)
	if r.Skipped > 0 {
		s += fmt.Sprintf("\nПропущено (нет типа или коэффициента): %d", r.Skipped)
	}
	return s
}

type importReport struct {
	updated   int
	unchanged int
	problems  []string
}

func (r importReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Импорт цен завершён.\nОбновлено: %d\nБез изменений: %d", r.updated, r.unchanged)
	if len(r.problems) > 0 {
		fmt.Fprintf(&sb, "\nПропущено: %d", len(r.problems))
		for _, p := range r.problems {
			sb.WriteString("\n• ")
			sb.WriteString(p)
		}
	}
	return sb.String()
}

// splitMessage cuts text on line boundaries into parts of at most limit runes.
// A single line longer than limit is cut as is.
func splitMessage(text string, limit int) []string {
	var (
		parts []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, string(cur))
			cur = cur[:0]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		r := []rune(line)
		for len(r) > limit {
			flush()
			parts = append(parts, string(r[:limit]))
			r = r[limit:]
		}
		need := len(r)
		if len(cur) > 0 {
			need++
		}
		if len(cur)+need > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, '\n')
		}
		cur = append(cur, r...)
	}
	flush()
	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}
