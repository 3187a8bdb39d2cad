package report

import "strings"

type Kind string

const (
	KindParent   Kind = "parent"
	KindCategory Kind = "category"
)

// NodeID идентификатор узла для сворачивания: вид + путь от корня.
// Индекс среди соседей в него не входит, поэтому после перезагрузки данных
// состояние остаётся за тем же именованным узлом.
type NodeID string

func ParentID(parent string) NodeID {
	return NodeID(string(KindParent) + "/" + escapeSegment(parent))
}

func CategoryID(parent, category string) NodeID {
	return NodeID(string(KindCategory) + "/" + escapeSegment(parent) + "/" + escapeSegment(category))
}

// "/" внутри имени не должен склеивать разные пути
var segmentEscaper = strings.NewReplacer(`\`, `\\`, "/", `\/`)

func escapeSegment(s string) string { return segmentEscaper.Replace(s) }

// GroupNode узел дерева: *ParentNode или *CategoryNode.
type GroupNode interface {
	ID() NodeID
	Kind() Kind
	Title() string
	Sum() Totals
	Children() []GroupNode

	groupNode()
}

type ParentNode struct {
	Name       string
	Categories []*CategoryNode
	Totals     Totals
}

type CategoryNode struct {
	Name       string
	ParentName string
	Items      []MaterialRecord
	Totals     Totals
}

func (p *ParentNode) ID() NodeID    { return ParentID(p.Name) }
func (p *ParentNode) Kind() Kind    { return KindParent }
func (p *ParentNode) Title() string { return p.Name }
func (p *ParentNode) Sum() Totals   { return p.Totals }
func (p *ParentNode) groupNode()    {}

func (p *ParentNode) Children() []GroupNode {
	out := make([]GroupNode, len(p.Categories))
	for i, c := range p.Categories {
		out[i] = c
	}
	return out
}

func (c *CategoryNode) ID() NodeID    { return CategoryID(c.ParentName, c.Name) }
func (c *CategoryNode) Kind() Kind    { return KindCategory }
func (c *CategoryNode) Title() string { return c.Name }
func (c *CategoryNode) Sum() Totals   { return c.Totals }
func (c *CategoryNode) groupNode()    {}

// Children материалы строками не выводятся, поэтому у категории детей нет.
func (c *CategoryNode) Children() []GroupNode { return nil }

// Tree результат агрегации.
type Tree struct {
	Parents []*ParentNode
	// Grand считается по плоскому списку, независимо от дерева.
	Grand Totals
}

// Find узел по идентификатору.
func (t Tree) Find(id NodeID) (GroupNode, bool) {
	for _, p := range t.Parents {
		if p.ID() == id {
			return p, true
		}
		for _, c := range p.Categories {
			if c.ID() == id {
				return c, true
			}
		}
	}
	return nil, false
}

// Empty нет ни одной группы.
func (t Tree) Empty() bool { return len(t.Parents) == 0 }
