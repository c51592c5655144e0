package search

import (
	"time"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/graphbuild"
)

// Run searches for the best path from startPiece to endPiece over graph.
func Run(
	graph map[domain.GraphKey]domain.GraphValue,
	segmentsByPiece map[domain.PieceID]*domain.Segment,
	stopsByPiece map[domain.PieceID][]domain.SortedStopEntry,
	startPiece, endPiece domain.PieceID,
	opts ...Option,
) BestPath {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var totalLength float64
	for _, seg := range segmentsByPiece {
		totalLength += seg.LengthM
	}
	maxLength := o.MaxPathLengthFactor * totalLength

	stack := []frontier{
		initFrontier(domain.GraphKey{Piece: startPiece, AtEnd: false}, graph, segmentsByPiece, stopsByPiece),
		initFrontier(domain.GraphKey{Piece: startPiece, AtEnd: true}, graph, segmentsByPiece, stopsByPiece),
	}

	best := bestPathPair{invalid: zeroBestPath(), valid: zeroBestPath()}

	e := &engine{
		graph:           graph,
		segmentsByPiece: segmentsByPiece,
		stopsByPiece:    stopsByPiece,
		endPiece:        endPiece,
		maxLength:       maxLength,
		opts:            o,
	}

	stack, best = e.processBatch(stack, best, o.SyncIterations)

	for len(stack) > 0 {
		if o.UseDeadline && time.Now().After(o.Deadline) {
			break
		}
		if o.Ctx != nil && o.Ctx.Err() != nil {
			break
		}
		stack, best = e.dispatchRound(stack, best)
	}

	if best.valid.Path != nil {
		return best.valid
	}
	return best.invalid
}

// engine holds immutable search configuration shared across worker rounds,
// mirroring the teacher's dedicated-struct-over-closures convention.
type engine struct {
	graph           map[domain.GraphKey]domain.GraphValue
	segmentsByPiece map[domain.PieceID]*domain.Segment
	stopsByPiece    map[domain.PieceID][]domain.SortedStopEntry
	endPiece        domain.PieceID
	maxLength       float64
	opts            Options
}

type roundResult struct {
	stack []frontier
	best  bestPathPair
}

// dispatchRound splits stack evenly across o.Workers goroutines, runs one
// bounded batch of iterations on each slice, and merges the results. This
// trades the original's asyncio first-completed scheduling for a simpler
// round-based barrier, which is easier to reason about in Go and preserves
// the same eventual termination and pruning behavior.
func (e *engine) dispatchRound(stack []frontier, best bestPathPair) ([]frontier, bestPathPair) {
	workers := e.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(stack) {
		workers = len(stack)
	}

	slices := splitEvenly(stack, workers)
	results := make(chan roundResult, len(slices))

	for _, slice := range slices {
		go func(s []frontier) {
			newStack, newBest := e.processBatch(s, best, e.opts.WorkerIterations)
			results <- roundResult{stack: newStack, best: newBest}
		}(slice)
	}

	var mergedStack []frontier
	merged := best
	for range slices {
		r := <-results
		mergedStack = append(mergedStack, r.stack...)
		merged = merged.merge(r.best, e.opts.MaxExtraDistanceToConvertM)
	}

	return mergedStack, merged
}

func splitEvenly(stack []frontier, n int) [][]frontier {
	if n <= 0 {
		return [][]frontier{stack}
	}

	size, remainder := len(stack)/n, len(stack)%n
	out := make([][]frontier, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		chunk := size
		if i < remainder {
			chunk++
		}
		if chunk == 0 {
			continue
		}
		out = append(out, stack[start:start+chunk])
		start += chunk
	}

	return out
}

// processBatch pops frontiers off the end of stack (LIFO, depth-first) and
// expands each, up to maxIter iterations or until the stack runs dry,
// returning the expanded stack and the best paths seen.
func (e *engine) processBatch(stack []frontier, best bestPathPair, maxIter int) ([]frontier, bestPathPair) {
	steps := 0

	for iter := 0; iter < maxIter && len(stack) > 0; iter++ {
		steps++
		if (steps & 4095) == 0 {
			if e.opts.UseDeadline && time.Now().After(e.opts.Deadline) {
				break
			}
			if e.opts.Ctx != nil && e.opts.Ctx.Err() != nil {
				break
			}
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		currentKey := s.path[len(s.path)-1]
		exitKey := domain.GraphKey{Piece: currentKey.Piece, AtEnd: !currentKey.AtEnd}

		currentBest := BestPath{
			Path:                s.path,
			VisitedStops:        mergeStopMaps(s.visitedStops, s.almostVisitedStops),
			BusStopsCount:       len(s.visitedStops),
			AlmostBusStopsCount: len(s.almostVisitedStops),
			Length:              s.length,
			CompletePath:        s.completePath,
			CompleteLength:      s.completeLength,
			AngleSum:            s.angleSum,
		}

		if currentKey.Piece == e.endPiece {
			best.valid = best.valid.selectBest(currentBest, e.opts.MaxExtraDistanceToConvertM)
		} else {
			best.invalid = best.invalid.selectBest(currentBest, e.opts.MaxExtraDistanceToConvertM)
		}

		gv, ok := e.graph[exitKey]
		if !ok {
			continue
		}

		currentSeg := e.segmentsByPiece[currentKey.Piece]
		choices := graphbuild.SelectNeighbors(currentSeg, currentKey.AtEnd, gv.Successors, e.segmentsByPiece)

		intersectionID := gv.IntersectionID
		snap, hasSnap := s.intersectionSnapshot[intersectionID]
		coverage := len(s.visitedStops) + len(s.almostVisitedStops)

		var newSnapshot map[int]intersectionSnapshot
		var newVisitCount int

		switch {
		case !hasSnap || snap.busStopsCount < coverage:
			newVisitCount = 1
			newSnapshot = copySnapshot(s.intersectionSnapshot)
			newSnapshot[intersectionID] = intersectionSnapshot{busStopsCount: coverage, visitCount: newVisitCount}
		case snap.visitCount < e.opts.VisitedLimit:
			newVisitCount = snap.visitCount + 1
			newSnapshot = copySnapshot(s.intersectionSnapshot)
			newSnapshot[intersectionID] = intersectionSnapshot{busStopsCount: snap.busStopsCount, visitCount: newVisitCount}
		default:
			continue // intersection re-entry limit reached; drop this frontier
		}

		for _, choice := range choices {
			next := e.expand(s, choice, newSnapshot, newVisitCount)
			if next != nil {
				stack = append(stack, *next)
			}
		}
	}

	return stack, best
}

// expand builds the frontier that results from stepping from s onto
// choice.Key, applying every pruning rule, or returns nil if the step is
// disallowed.
func (e *engine) expand(s frontier, choice graphbuild.NeighborChoice, snapshot map[int]intersectionSnapshot, visitCount int) *frontier {
	neighbor := choice.Key
	neighborSeg := e.segmentsByPiece[neighbor.Piece]
	if neighborSeg == nil {
		return nil
	}

	newPath := append(append([]domain.GraphKey{}, s.path...), neighbor)

	visited, almost := stopsAt(neighbor, e.stopsByPiece)

	var newVisited, newAlmost map[domain.NativeID]int
	if len(visited) > 0 || len(almost) > 0 {
		newVisited = copyStopMap(s.visitedStops)
		newAlmost = copyStopMap(s.almostVisitedStops)

		for _, b := range visited {
			id := b.Collection.Best().ID
			if _, ok := newVisited[id]; !ok {
				newVisited[id] = len(newPath)
			}
		}
		for _, b := range almost {
			id := b.Collection.Best().ID
			if _, ok := newAlmost[id]; !ok {
				newAlmost[id] = len(newPath)
			}
		}
		for id := range newVisited {
			delete(newAlmost, id)
		}
	} else {
		newVisited = s.visitedStops
		newAlmost = s.almostVisitedStops
	}

	newLength := s.length + neighborSeg.LengthM
	if newLength > e.maxLength {
		return nil
	}

	var newCompletePath map[domain.PieceID]struct{}
	newCompleteLength := s.completeLength
	if _, ok := s.completePath[neighbor.Piece]; !ok {
		newCompletePath = copyPieceSet(s.completePath)
		newCompletePath[neighbor.Piece] = struct{}{}
		newCompleteLength += neighborSeg.LengthM
	} else {
		newCompletePath = s.completePath
	}

	currentSeg := e.segmentsByPiece[s.path[len(s.path)-1].Piece]
	newAngleSum := s.angleSum
	if !currentSeg.Roundabout {
		newAngleSum += choice.AngleDeviation
	}

	var newLoopLength float64
	if visitCount > 1 {
		newLoopLength = s.loopLength + neighborSeg.LengthM
	}
	if newLoopLength > e.opts.MaxLoopLengthM {
		return nil
	}

	var newAfterFinishLength float64
	if s.afterFinishLength > 0 || neighbor.Piece == e.endPiece {
		newAfterFinishLength = s.afterFinishLength + neighborSeg.LengthM
	}
	if newAfterFinishLength > e.opts.MaxAfterFinishLengthM {
		return nil
	}

	newRoundaboutEnter := s.roundaboutEnter
	if neighborSeg.Roundabout {
		if s.roundaboutEnter != nil {
			if *s.roundaboutEnter == neighbor {
				return nil // looping back to the same roundabout entry
			}
		} else {
			k := neighbor
			newRoundaboutEnter = &k
		}
	} else {
		newRoundaboutEnter = nil
	}

	return &frontier{
		path:                 newPath,
		visitedStops:         newVisited,
		almostVisitedStops:   newAlmost,
		intersectionSnapshot: snapshot,
		length:               newLength,
		completePath:         newCompletePath,
		completeLength:       newCompleteLength,
		angleSum:             newAngleSum,
		loopLength:           newLoopLength,
		afterFinishLength:    newAfterFinishLength,
		roundaboutEnter:      newRoundaboutEnter,
	}
}
