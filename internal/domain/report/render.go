package report

// KindGrand строка общего итога, всегда первая.
const KindGrand Kind = "grand"

const (
	GrandTitle       = "Итог"
	PricePlaceholder = "-"
	DefaultSwatch    = "#6c757d"
)

// Row одна видимая строка отчёта.
type Row struct {
	Kind  Kind
	ID    NodeID
	Depth int

	Name   string
	Unit   string
	Code   string
	Swatch string
	// у агрегатов цена не суммируется, всегда PricePlaceholder
	LastPrice string

	HasChildren bool
	Collapsed   bool

	Totals Totals
	Cells  [8]string
}

// Renderer обходит дерево в глубину (pre-order) с учётом свёрнутых узлов.
type Renderer struct {
	nf *NumberFormatter
}

func NewRenderer(nf *NumberFormatter) *Renderer {
	if nf == nil {
		nf = NewNumberFormatter(DefaultLocale)
	}
	return &Renderer{nf: nf}
}

func (r *Renderer) Render(tree Tree, collapse *CollapseState) []Row {
	rows := []Row{r.row(KindGrand, "", GrandTitle, 0, tree.Grand)}
	for _, p := range tree.Parents {
		rows = r.walk(rows, p, 0, collapse)
	}
	return rows
}

func (r *Renderer) walk(rows []Row, n GroupNode, depth int, collapse *CollapseState) []Row {
	children := n.Children()

	row := r.row(n.Kind(), n.ID(), n.Title(), depth, n.Sum())
	row.Swatch = DefaultSwatch
	row.HasChildren = len(children) > 0
	row.Collapsed = row.HasChildren && collapse.IsCollapsed(row.ID)
	rows = append(rows, row)

	if row.Collapsed {
		return rows
	}
	for _, c := range children {
		rows = r.walk(rows, c, depth+1, collapse)
	}
	return rows
}

func (r *Renderer) row(kind Kind, id NodeID, name string, depth int, t Totals) Row {
	row := Row{
		Kind:      kind,
		ID:        id,
		Depth:     depth,
		Name:      name,
		Unit:      DefaultUnit,
		Code:      DefaultCode,
		LastPrice: PricePlaceholder,
		Totals:    t,
	}
	for i, v := range t.Fields() {
		row.Cells[i] = r.nf.Format(v)
	}
	return row
}
