// Package service contains business logic for the application.
package service

import "ripple/internal/models"

// CommentNode is a comment with its nested replies. Replies is always
// non-nil so leaves serialize as "replies": [].
type CommentNode struct {
	*models.Comment
	Replies []*CommentNode `json:"replies"`
}

// CommentPage is one page of a post's comment tree. Count is the number of
// top-level comments on this page, Total and Pages describe the full set of
// top-level comments. Replies ride along with their root and are not counted.
type CommentPage struct {
	Comments []*CommentNode
	Count    int
	Total    int64
	Pages    int
}

// BuildCommentTree assembles the reply tree from a flat comment list and
// returns the requested page of top-level comments, each carrying its full
// reply subtree. Input order is preserved: with a newest-first input the
// roots and every reply list come out newest-first.
//
// Pagination applies to top-level comments only. page is 1-based; page/limit
// must already be normalized by the caller. A comment whose parent is absent
// from the input is dropped.
func BuildCommentTree(comments []*models.Comment, page, limit int) ([]*CommentNode, int64) {
	nodes := make(map[uint]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, nodes[c.ID])
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, nodes[c.ID])
		}
	}

	total := int64(len(roots))

	start := (page - 1) * limit
	if start >= len(roots) {
		return []*CommentNode{}, total
	}
	end := start + limit
	if end > len(roots) {
		end = len(roots)
	}
	return roots[start:end], total
}

// collectThread walks the reply adjacency rooted at rootID and returns the
// IDs of the root plus every transitive descendant present in the flat list.
func collectThread(comments []*models.Comment, rootID uint) []uint {
	children := make(map[uint][]uint, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := make([]uint, 0, len(comments))
	stack := []uint{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)
		stack = append(stack, children[id]...)
	}
	return ids
}
