package scatter

import (
	"html"
	"strings"
)

// TooltipHTML describes r using the columns of the active pair.
func TooltipHTML(r *Record, id PairID) string {
	p := id.Pair()
	b := strings.Builder{}
	b.WriteString(html.EscapeString(r.Geography))
	b.WriteString("<br>")
	b.WriteString(p.XTooltip)
	b.WriteString(": ")
	b.WriteString(FormatValue(r.Value(p.X)))
	b.WriteString("<br>")
	b.WriteString(p.YTooltip)
	b.WriteString(": ")
	b.WriteString(FormatValue(r.Value(p.Y)))
	return b.String()
}
