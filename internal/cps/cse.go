package cps

import "strings"

// PrimCSE value-numbers primitive applications. The first binding of an
// (op, args) combination survives; later bindings of the same combination
// are renamed to it and then swept by dead-let. Argument names are resolved
// through the pending renames, so chains of duplicates collapse in one pass
// and the pass is idempotent.
func PrimCSE(t Term) Term {
	c := &primCSE{table: map[string]string{}, subst: map[string]string{}}
	c.walk(t)
	return DeadLet(Substitute(t, c.subst))
}

type primCSE struct {
	table map[string]string // canonical key -> first binder
	subst map[string]string // duplicate binder -> first binder
}

func (c *primCSE) resolve(name string) string {
	for {
		to, ok := c.subst[name]
		if !ok {
			return name
		}
		name = to
	}
}

func (c *primCSE) walk(t Term) {
	switch t := t.(type) {
	case *LetV:
		c.walk(t.In)
	case *LetT:
		c.walk(t.In)
	case *LetP:
		resolved := make([]string, len(t.Args))
		for i, arg := range t.Args {
			resolved[i] = c.resolve(arg)
		}
		key := t.Op + ":" + strings.Join(resolved, ":")
		if first, ok := c.table[key]; ok {
			c.subst[t.Name] = first
		} else {
			c.table[key] = t.Name
		}
		c.walk(t.In)
	case *LetC:
		c.walk(t.Body)
		c.walk(t.In)
	case *LetF:
		c.walk(t.Body)
		c.walk(t.In)
	}
}
