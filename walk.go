package wikitext

// WalkResult is the result of a walk operation.
type WalkResult int

// WalkContinue indicates that the walk operation should continue.
const WalkContinue = 0

// WalkReplace indicates that the current element should be replaced with
// the elements returned by the function.
const WalkReplace = 1

// WalkSkip indicates that the current element's children should not be
// processed.
const WalkSkip = 2

// WalkStop indicates that the walk operation should stop immediately.
const WalkStop = 3

// Filter applies 'fun' to each descendant of 'elt' whose type matches the
// parameter type P. The function is not applied to 'elt' itself. On
// WalkReplace the matched element is replaced by the returned slice; an
// empty slice removes it. The original tree is never mutated; modified
// branches are copied on write.
//
// Example:
//
//	elt = wikitext.Filter(elt, func(t *wikitext.Text) ([]wikitext.Element, wikitext.WalkResult) {
//	    return []wikitext.Element{&wikitext.Text{Text: strings.ToUpper(t.Text)}}, wikitext.WalkReplace
//	})
func Filter[P any, E Element](elt E, fun func(P) ([]Element, WalkResult)) E {
	elt, _, _ = walkChildren(elt, fun)
	return elt
}

// FilterList is Filter over an element sequence, applying 'fun' to the
// sequence members themselves as well as their descendants.
func FilterList[P any](list []Element, fun func(P) ([]Element, WalkResult)) []Element {
	list, _, _ = walkList(list, fun)
	return list
}

// Query applies 'fun' to each descendant of 'elt' whose type matches the
// parameter type P, without modifying anything. WalkReplace returned
// from 'fun' is treated as WalkContinue.
//
// Example:
//
//	var containers int
//	wikitext.Query(elt, func(*wikitext.Container) wikitext.WalkResult {
//	    containers++
//	    return wikitext.WalkContinue
//	})
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	walkChildren(elt, func(e P) ([]Element, WalkResult) {
		r := fun(e)
		if r == WalkReplace {
			r = WalkContinue
		}
		return nil, r
	})
}

// QueryList is Query over an element sequence.
func QueryList[P any](list []Element, fun func(P) WalkResult) {
	walkList(list, func(e P) ([]Element, WalkResult) {
		r := fun(e)
		if r == WalkReplace {
			r = WalkContinue
		}
		return nil, r
	})
}

func walkChildren[P any, E Element](e E, fun func(P) ([]Element, WalkResult)) (E, bool, WalkResult) {
	switch v := any(e).(type) {
	case *Container:
		lst, updated, result := walkList(v.Elements, fun)
		if updated {
			v = &Container{Type: v.Type, Elements: lst, Attributes: v.Attributes}
		}
		return any(v).(E), updated, result
	case *Footnote:
		lst, updated, result := walkList(v.Elements, fun)
		if updated {
			v = &Footnote{Elements: lst}
		}
		return any(v).(E), updated, result
	}
	// remaining variants have no children
	return e, false, WalkContinue
}

func walkList[P any](source []Element, fun func(P) ([]Element, WalkResult)) ([]Element, bool, WalkResult) {
	var updated bool
	for i := 0; i < len(source); {
		if v, ok := any(source[i]).(P); ok {
			replace, result := fun(v)
			switch result {
			case WalkStop:
				return source, updated, WalkStop
			case WalkSkip:
				i++
				continue
			case WalkReplace:
				if !updated {
					updated = true
					source = append([]Element(nil), source...)
				}
				if len(replace) == 0 {
					source = append(source[:i], source[i+1:]...)
				} else {
					source = append(source[:i], append(append([]Element(nil), replace...), source[i+1:]...)...)
					i += len(replace)
				}
				continue
			case WalkContinue:
			}
		}
		item, update, result := walkChildren(source[i], fun)
		if update {
			if !updated {
				updated = true
				source = append([]Element(nil), source...)
			}
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
		i++
	}
	return source, updated, WalkContinue
}
