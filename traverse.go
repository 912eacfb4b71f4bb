// SPDX-License-Identifier: MIT
package mission

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/mission/types"
)

type (
	// TraverseComm defines a channel to communicate info between [Element] operations & it's callers.
	TraverseComm struct {
		node     *Element
		newPeers bool
	}
)

const (
	traverseBufferSize = 10
)

// Node retrieves the visited [Element].
func (t TraverseComm) Node() *Element { return t.node }

// NewPeers reports whether the visited [Element] starts a new level.
func (t TraverseComm) NewPeers() bool { return t.newPeers }

// Walk performs breadth-first traversal on an [Element], pushing its nodes to its channel
// argument.
//
// This operation uses channels to minimize resource wastage.
// A context.Context is used to terminate the walk operation.
func (e *Element) Walk(ctx context.Context, traverseChan chan TraverseComm) {
	List{e}.Walk(ctx, traverseChan)
}

// Walk performs breadth-first traversal on every [Element] of a [List], the List forming the
// first level.
func (l List) Walk(ctx context.Context, traverseChan chan TraverseComm) {
	defer close(traverseChan)

	// Level order traversal.
	queue := append(List{}, l...)

	// Use a var for front to ensure the outer scope queue is modified.
	var front *Element

	for {
		queueLen := len(queue)
		if queueLen < 1 {
			break
		}

		// Iterate over the level's nodes.
		newPeers := true
		for queueLen > 0 {
			// Pop from queue.
			front, queue = queue[0], queue[1:]
			queueLen--

			if front == nil {
				continue
			}

			// Send node to caller via the channel.
			select {
			case <-ctx.Done():
				// Received context cancellation.
				return
			case traverseChan <- TraverseComm{node: front, newPeers: newPeers}:
			}
			newPeers = false

			// Add children to the queue.
			queue = append(queue, front.children...)
		}
	}
}

// AllChildren lists immediate and children-of children for an [Element].
func (e *Element) AllChildren(ctx context.Context) (children List, err error) {
	children = make(List, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	walkCtx, walkCancel := context.WithCancel(ctx)
	defer walkCancel()

	go e.Walk(walkCtx, traverseChan)

	for resl := range traverseChan {
		children = append(children, resl.node)
	}
	if err = ctx.Err(); err != nil {
		return
	}

	if e.cfg.Debug {
		e.cfg.Logger.Debugf("walked: %d elements from %s", len(children), e.tag)
	}

	if len(children) > 0 {
		// Omit self from the list.
		children = children[1:]
	}

	if len(children) < 1 {
		err = fmt.Errorf("(%s) %w", e.tag, ErrNoChildren)
	}

	return
}

// AllChildrenByLevel lists immediate and children-of children for an [Element] by level.
func (e *Element) AllChildrenByLevel(ctx context.Context) (children LevelList, err error) {
	children = make(LevelList, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	walkCtx, walkCancel := context.WithCancel(ctx)
	defer walkCancel()

	go e.Walk(walkCtx, traverseChan)

	var peers List
	for resl := range traverseChan {
		if !resl.newPeers {
			peers = append(peers, resl.node)
			continue
		}

		if len(peers) > 0 {
			children = append(children, peers)
		}
		peers = List{resl.node}
	}
	if err = ctx.Err(); err != nil {
		return
	}

	if len(peers) > 0 {
		children = append(children, peers)
	}

	if len(children) > 0 {
		// Omit self from the list.
		children = children[1:]
	}

	if len(children) < 1 {
		err = fmt.Errorf("(%s) %w", e.tag, ErrNoChildren)
	}

	return
}

// Locate searches the [Element] & its descendants for an object name, matching it
// case-insensitively as the engine does.
func (e *Element) Locate(ctx context.Context, name string) (node *Element, err error) {
	return List{e}.Locate(ctx, name)
}

// Locate searches a [List] breadth-first for an object name.
func (l List) Locate(ctx context.Context, name string) (node *Element, err error) {
	if name == "" {
		err = fmt.Errorf("anonymous element %w", ErrNotFound)
		return
	}

	traverseChan := make(chan TraverseComm, traverseBufferSize)

	locateCtx, locateCancel := context.WithCancel(ctx)
	defer locateCancel()

	go l.Walk(locateCtx, traverseChan)

	for resl := range traverseChan {
		if strings.EqualFold(resl.node.name, name) {
			node = resl.node
			return
		}
	}
	if err = ctx.Err(); err != nil {
		return
	}
	err = fmt.Errorf("element (%s) %w", name, ErrNotFound)

	return
}

// Visit calls fn for the [Element] & its descendants in source order, stopping once fn returns
// false.
func (e *Element) Visit(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}

	for _, child := range e.children {
		if !child.Visit(fn) {
			return false
		}
	}

	return true
}

// Visit calls fn for every [Element] of a [List] & their descendants in source order.
func (l List) Visit(fn func(*Element) bool) {
	for _, e := range l {
		if !e.Visit(fn) {
			return
		}
	}
}

// FilterByTag lists the Elements of a class in source order, matching the tag
// case-insensitively.
func (l List) FilterByTag(tag string) (filtered List) {
	l.Visit(func(e *Element) bool {
		if strings.EqualFold(e.tag, tag) {
			filtered = append(filtered, e)
		}
		return true
	})

	return
}

// Count obtains the number of Elements in a [List] including descendants.
func (l List) Count() (count int) {
	l.Visit(func(*Element) bool {
		count++
		return true
	})

	return
}

// Tags lists the distinct element classes of a [List] in sorted order, the first spelling of a
// tag is kept.
func (l List) Tags() (tags types.StringSlice) {
	l.Visit(func(e *Element) bool {
		if tags.LocateFold(e.tag) < 0 {
			tags = append(tags, e.tag)
		}
		return true
	})
	tags.Sort()

	return
}

// Len is the number of elements in the collection.
func (l List) Len() int { return len(l) }

// tagsInOrder lists the element classes of a [List] without recursing.
func (l List) tagsInOrder() (values []string) {
	values = make([]string, len(l))
	for index := range l {
		values[index] = l[index].tag
	}

	return
}

// Tags returns an array-of array of element classes for a [LevelList].
func (l LevelList) Tags() (values [][]string) {
	values = make([][]string, len(l))
	for index := range l {
		values[index] = l[index].tagsInOrder()
	}

	return
}
