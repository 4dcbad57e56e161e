package cps

// UsedSymbols collects every variable occurrence in use position. Binder
// names are not added by themselves; they count only when referenced.
func UsedSymbols(t Term) map[string]bool {
	used := map[string]bool{}
	markUsed(t, used)
	return used
}

func markUsed(t Term, used map[string]bool) {
	switch t := t.(type) {
	case *LetV:
		if tuple, ok := t.Val.(*Tuple); ok {
			for _, field := range tuple.Fields {
				used[field] = true
			}
		}
		markUsed(t.In, used)
	case *LetT:
		used[t.Tuple] = true
		markUsed(t.In, used)
	case *LetP:
		for _, arg := range t.Args {
			used[arg] = true
		}
		markUsed(t.In, used)
	case *LetC:
		markUsed(t.Body, used)
		markUsed(t.In, used)
	case *LetF:
		markUsed(t.Body, used)
		markUsed(t.In, used)
	case *AppC:
		used[t.Cont] = true
		used[t.Arg] = true
	case *AppF:
		used[t.Fun] = true
		used[t.Cont] = true
		for _, arg := range t.Args {
			used[arg] = true
		}
	case *Halt:
		used[t.Name] = true
	}
}
