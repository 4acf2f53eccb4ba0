package pages

import (
	"fmt"
	"reflect"
)

// Edge is a navigation from one page kind to another through a method
type Edge struct {
	From   Kind
	Action string
	To     Kind
}

func (e Edge) String() string {
	return fmt.Sprintf("%s --%s--> %s", e.From, e.Action, e.To)
}

// EntryKinds - returns the pages a session starts from
func EntryKinds() []Kind {
	return []Kind{HomeKind, AdminLoginKind}
}

var pageInterface = reflect.TypeOf((*Page)(nil)).Elem()

// Graph derives the navigation edges from the method sets of the page
// types: every exported method whose first result is a concrete page is
// an edge. Edges are ordered by source kind, then method name.
func Graph() []Edge {
	f := &Factory{}
	types := make(map[reflect.Type]Kind)
	for _, k := range Kinds() {
		p, err := f.Open(k)
		if err != nil {
			panic(err)
		}
		types[reflect.TypeOf(p)] = k
	}

	var edges []Edge
	for _, from := range Kinds() {
		p, _ := f.Open(from)
		t := reflect.TypeOf(p)
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			if m.Type.NumOut() == 0 {
				continue
			}
			out := m.Type.Out(0)
			if out.Kind() == reflect.Interface || !out.Implements(pageInterface) {
				continue
			}
			if to, ok := types[out]; ok {
				edges = append(edges, Edge{From: from, Action: m.Name, To: to})
			}
		}
	}
	return edges
}

// Reachable - returns every kind reachable from start, start included
func Reachable(edges []Edge, start Kind) map[Kind]bool {
	seen := map[Kind]bool{start: true}
	queue := []Kind{start}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for _, e := range edges {
			if e.From == k && !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return seen
}
