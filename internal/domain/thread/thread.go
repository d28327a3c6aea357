// Package thread turns the flat comment list of one article into a reply forest.
//
// Build is a pure in-memory transform. It never fails: a comment whose parent
// is missing, is itself, or closes a parent cycle is placed at the root level.
package thread

import "github.com/oksasatya/go-ddd-blog/internal/domain/entity"

// Node is a comment with its direct replies. Responses is never nil.
type Node struct {
	*entity.Comment
	Responses []*Node `json:"responses"`
}

const (
	unvisited = iota
	onPath
	done
)

// Build returns the root nodes in input order; replies keep input order under
// their parent. Nil records are skipped and for a repeated id only the first
// record is kept.
func Build(comments []*entity.Comment) []*Node {
	nodes := make([]*Node, 0, len(comments))
	byID := make(map[string]*Node, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		if c.ID != "" {
			if _, dup := byID[c.ID]; dup {
				continue
			}
		}
		n := &Node{Comment: c, Responses: []*Node{}}
		nodes = append(nodes, n)
		if c.ID != "" {
			byID[c.ID] = n
		}
	}

	parent := make(map[*Node]*Node, len(nodes))
	for _, n := range nodes {
		pid := n.Parent()
		if pid == "" || pid == n.ID {
			continue
		}
		if p, ok := byID[pid]; ok {
			parent[n] = p
		}
	}

	// Walk each parent chain once. Reaching a node already on the current
	// path means a cycle; that node is cut loose and becomes a root.
	state := make(map[*Node]int, len(nodes))
	for _, n := range nodes {
		var path []*Node
		cur := n
		for cur != nil && state[cur] == unvisited {
			state[cur] = onPath
			path = append(path, cur)
			cur = parent[cur]
		}
		if cur != nil && state[cur] == onPath {
			delete(parent, cur)
		}
		for _, p := range path {
			state[p] = done
		}
	}

	roots := make([]*Node, 0)
	for _, n := range nodes {
		if p, ok := parent[n]; ok {
			p.Responses = append(p.Responses, n)
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

// Count returns the number of nodes reachable from roots, each counted once.
func Count(roots []*Node) int {
	seen := make(map[*Node]struct{})
	stack := append([]*Node(nil), roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, n.Responses...)
	}
	return len(seen)
}

// Approved keeps the comments whose moderation flag is set.
func Approved(comments []*entity.Comment) []*entity.Comment {
	out := make([]*entity.Comment, 0, len(comments))
	for _, c := range comments {
		if c != nil && c.Approved {
			out = append(out, c)
		}
	}
	return out
}

// CountByAuthor counts the comments written by authorID.
func CountByAuthor(comments []*entity.Comment, authorID string) int {
	n := 0
	for _, c := range comments {
		if c != nil && c.AuthorID == authorID {
			n++
		}
	}
	return n
}
