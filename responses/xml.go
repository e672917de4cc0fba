package responses

import "github.com/beevik/etree"

// The AEAT endpoints are not consistent about prefixes (tikR vs tikLRRC),
// so lookups resolve elements by namespace URI and local name instead of
// by qualified path.

// child returns the first direct child with the given namespace URI and
// local name, or nil
func child(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == local && c.NamespaceURI() == ns {
			return c
		}
	}
	return nil
}

// children returns every direct child with the given namespace URI and
// local name
func children(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == local && c.NamespaceURI() == ns {
			out = append(out, c)
		}
	}
	return out
}

// childText returns the text of a direct child, or "" when absent
func childText(el *etree.Element, ns, local string) string {
	if c := child(el, ns, local); c != nil {
		return c.Text()
	}
	return ""
}

// childTextAny returns the text of a direct child matched in any of the
// given namespaces, for elements the endpoints qualify inconsistently
func childTextAny(el *etree.Element, local string, namespaces ...string) string {
	for _, ns := range namespaces {
		if c := child(el, ns, local); c != nil {
			return c.Text()
		}
	}
	return ""
}

// descend walks a chain of (namespace, local) pairs from el
func descend(el *etree.Element, steps ...[2]string) *etree.Element {
	for _, step := range steps {
		el = child(el, step[0], step[1])
		if el == nil {
			return nil
		}
	}
	return el
}

// findDeep searches the subtree for the first element with the given
// namespace URI and local name
func findDeep(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == local && el.NamespaceURI() == ns {
		return el
	}
	for _, c := range el.ChildElements() {
		if found := findDeep(c, ns, local); found != nil {
			return found
		}
	}
	return nil
}
