package schema

// ResolveAlternateContent replaces every mc:AlternateContent block under n
// with the content of its first Choice, or of its Fallback when there is no
// Choice. The tree is modified in place and returned.
func ResolveAlternateContent(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := n.Children[:0:0]
	for _, c := range n.Children {
		if !isMarkupCompat(c, "AlternateContent") {
			out = append(out, ResolveAlternateContent(c))
			continue
		}
		var pick *Node
		for _, branch := range c.Children {
			if isMarkupCompat(branch, "Choice") {
				pick = branch
				break
			}
			if isMarkupCompat(branch, "Fallback") && pick == nil {
				pick = branch
			}
		}
		if pick == nil {
			continue
		}
		for _, gc := range pick.Children {
			out = append(out, ResolveAlternateContent(gc))
		}
	}
	n.Children = out
	return n
}

func isMarkupCompat(n *Node, local string) bool {
	return n.Name.Local == local && (n.Name.Space == NSMarkupCompat || n.Name.Space == "mc")
}
