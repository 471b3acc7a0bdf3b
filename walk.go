package tmd

// WalkResult tells a walk how to proceed after visiting an element.
type WalkResult int

const (
	// Go on with the children of the current element.
	WalkContinue WalkResult = iota
	// Replace the current element with the elements returned by the
	// function. The replacement is not walked.
	WalkReplace
	// Leave out the children of the current element.
	WalkSkip
	// Stop the walk immediately.
	WalkStop
)

// Filter applies fun to every descendant of elt whose type is P and returns
// the updated elt. fun is never applied to elt itself.
//
// The returned WalkResult controls the walk:
//
//   - WalkContinue: keep the element and walk its children.
//   - WalkSkip: keep the element, skip its children.
//   - WalkReplace: replace the element with the returned elements; an empty
//     slice removes it.
//   - WalkStop: stop immediately.
//
// Elements are never modified in place; every container on the path to a
// replaced element is copied, so trees shared with other owners stay intact.
// A replacement whose type does not fit the enclosing list (e.g. a Block
// returned for an element of List.Items) is ignored.
//
// P may also be a slice type ([]Inline, []Block): fun then sees every such
// list bottom-up, after its elements have been walked.
//
// Example:
//
//	doc = tmd.Filter(doc, func(ref *tmd.IncludeRef) ([]tmd.Block, tmd.WalkResult) {
//	    return load(ref.Path).Blocks, tmd.WalkReplace
//	})
func Filter[P any, E Element, R Element](elt E, fun func(P) ([]R, WalkResult)) E {
	elt, _, _ = walkChildren(elt, fun)
	return elt
}

type queryResult struct{}

func (queryResult) element()      {}
func (queryResult) dump(*dumper) {}

// Query applies fun to every descendant of elt whose type is P, without
// changing anything. WalkReplace is treated as WalkContinue.
//
// Example:
//
//	var tasks int
//	tmd.Query(doc, func(item *tmd.ListItem) tmd.WalkResult {
//	    if item.Check != tmd.NoCheck {
//	        tasks++
//	    }
//	    return tmd.WalkContinue
//	})
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	walkChildren(elt, func(e P) ([]queryResult, WalkResult) {
		return nil, fun(e)
	})
}

// Includes returns the paths of all include references in the tree, in
// document order.
func Includes(root *Root) []string {
	var paths []string
	Query(root, func(ref *IncludeRef) WalkResult {
		paths = append(paths, ref.Path)
		return WalkContinue
	})
	return paths
}

func walkChildren[P any, E Element, R Element](e E, fun func(P) ([]R, WalkResult)) (E, bool, WalkResult) {
	switch e := any(e).(type) {
	case *Root:
		lst, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &Root{Meta: e.Meta, Blocks: lst}
		}
		return any(e).(E), updated, result
	case *Para:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Para{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Header:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Header{Level: e.Level, Inlines: lst}
		}
		return any(e).(E), updated, result
	case *List:
		lst, updated, result := walkList(e.Items, fun)
		if updated {
			e = &List{Kind: e.Kind, Items: lst}
		}
		return any(e).(E), updated, result
	case *ListItem:
		lst, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &ListItem{Check: e.Check, Blocks: lst}
		}
		return any(e).(E), updated, result
	case *Span:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Span{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Mod:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Mod{Kind: e.Kind, Inlines: lst}
		}
		return any(e).(E), updated, result

	// leaves
	case *Str:
	case *Link:
	case *LineBreak:
	case *CodeBlock:
	case *HorizontalRule:
	case *Blank:
	case *IncludeRef:
	}
	return e, false, WalkContinue
}

// walkList walks the elements of source. The returned slice is a copy as
// soon as anything in it changed.
func walkList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	if _, ok := any(source).(P); ok {
		return walkWholeList(source, fun)
	}
	var (
		replace []R
		result  WalkResult
		updated bool
	)
	copied := func() {
		if !updated {
			updated = true
			source = append([]S(nil), source...)
		}
	}
	_, same := any(replace).([]S)
	fits := same
	if !fits {
		var r R
		_, fits = any(r).(S)
	}
	for i := 0; i < len(source); {
		if v, ok := any(source[i]).(P); ok {
			replace, result = fun(v)
			switch result {
			case WalkStop:
				return source, updated, WalkStop
			case WalkSkip:
				i++
				continue
			case WalkReplace:
				if !fits {
					i++
					continue
				}
				copied()
				tail := append([]S(nil), source[i+1:]...)
				source = source[:i]
				for _, r := range replace {
					source = append(source, any(r).(S))
				}
				source = append(source, tail...)
				i += len(replace)
				continue
			}
		}
		item, changed, result := walkChildren(source[i], fun)
		if changed {
			copied()
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
		i++
	}
	return source, updated, WalkContinue
}

// walkWholeList handles functions taking a whole list: children first, then
// the list itself.
func walkWholeList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	updated := false
	for i := range source {
		item, changed, result := walkChildren(source[i], fun)
		if changed {
			if !updated {
				updated = true
				source = append([]S(nil), source...)
			}
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
	}
	replace, result := fun(any(source).(P))
	switch result {
	case WalkReplace:
		if lst, ok := any(replace).([]S); ok {
			return lst, true, WalkContinue
		}
	case WalkStop:
		return source, updated, WalkStop
	}
	return source, updated, WalkContinue
}
