package report

// CollapseState множество свёрнутых узлов. Отсутствие id — узел развёрнут.
// Не зависит от формы дерева и переживает перезагрузку данных.
type CollapseState struct {
	collapsed map[NodeID]struct{}
}

func NewCollapseState() *CollapseState {
	return &CollapseState{collapsed: make(map[NodeID]struct{})}
}

func (s *CollapseState) IsCollapsed(id NodeID) bool {
	if s == nil {
		return false
	}
	_, ok := s.collapsed[id]
	return ok
}

// Toggle переключает узел и возвращает новое состояние.
func (s *CollapseState) Toggle(id NodeID) bool {
	if s.collapsed == nil {
		s.collapsed = make(map[NodeID]struct{})
	}
	if _, ok := s.collapsed[id]; ok {
		delete(s.collapsed, id)
		return false
	}
	s.collapsed[id] = struct{}{}
	return true
}

func (s *CollapseState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.collapsed)
}

func (s *CollapseState) Reset() {
	s.collapsed = make(map[NodeID]struct{})
}
