package domain

import "container/heap"

// FindPath ищет кратчайший путь A* (4 направления, шаг = 1, эвристика - манхэттен).
//
// Клетка назначения считается проходимой даже если занята (чтобы можно было
// строить путь к цели и останавливаться на клетку раньше). Все остальные
// занятые клетки и препятствия непроходимы.
//
// Возвращает путь от start до end включительно; [start], если start == end;
// nil, если пути нет или одна из точек вне сетки.
//
// При равных f выигрывает узел с меньшей h, затем узел, добавленный раньше,
// поэтому для фиксированного состояния сетки результат всегда один и тот же.
func (g *Grid) FindPath(start, end Position) []Position {
	if !g.IsValidPosition(start) || !g.IsValidPosition(end) {
		return nil
	}
	if start == end {
		return []Position{start}
	}

	open := &pathQueue{}
	heap.Init(open)

	seq := 0
	push := func(p Position, cost int) {
		h := p.ManhattanTo(end)
		heap.Push(open, &pathNode{pos: p, g: cost, h: h, f: cost + h, seq: seq})
		seq++
	}

	gScore := map[Position]int{start: 0}
	cameFrom := make(map[Position]Position)
	closed := make(map[Position]bool)

	push(start, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if closed[current.pos] {
			continue
		}
		if current.pos == end {
			return reconstructPath(cameFrom, start, end)
		}
		closed[current.pos] = true

		for _, next := range current.pos.Neighbors() {
			if !g.IsValidPosition(next) || closed[next] {
				continue
			}
			if next != end && g.IsOccupied(next) {
				continue
			}

			tentative := current.g + 1
			if best, seen := gScore[next]; seen && tentative >= best {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.pos
			push(next, tentative)
		}
	}

	return nil // Пути нет
}

func reconstructPath(cameFrom map[Position]Position, start, end Position) []Position {
	path := []Position{end}
	for cur := end; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	// Разворачиваем: путь собирался от конца к началу
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode - элемент открытого списка A*.
type pathNode struct {
	pos Position
	g   int
	h   int
	f   int
	seq int
}

// pathQueue реализует heap.Interface (min-heap по f, h, seq).
type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq pathQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pathNode))
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	*pq = old[0 : n-1]
	return item
}
