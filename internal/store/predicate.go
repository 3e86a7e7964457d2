// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Cond is a composable boolean filter over entity columns. Conditions are
// pure values: they hold an expression with `?` placeholders plus its
// arguments and never touch a database handle. Stores render them into
// positional `$n` SQL at query time.
type Cond struct {
	expr string
	args []any
}

// Eq matches a column against a value.
func Eq(column string, value any) Cond {
	return Cond{expr: column + " = ?", args: []any{value}}
}

// Raw wraps a hand-written expression using `?` placeholders.
func Raw(expr string, args ...any) Cond {
	return Cond{expr: expr, args: args}
}

// And combines conditions with logical AND. Empty conditions are skipped,
// so an unrestricted filter composes away cleanly.
func And(conds ...Cond) Cond {
	return combine(" AND ", conds)
}

// Or combines conditions with logical OR.
func Or(conds ...Cond) Cond {
	return combine(" OR ", conds)
}

func combine(op string, conds []Cond) Cond {
	var exprs []string
	var args []any
	for _, c := range conds {
		if c.IsEmpty() {
			continue
		}
		exprs = append(exprs, c.expr)
		args = append(args, c.args...)
	}
	switch len(exprs) {
	case 0:
		return Cond{}
	case 1:
		return Cond{expr: exprs[0], args: args}
	}
	return Cond{expr: "(" + strings.Join(exprs, op) + ")", args: args}
}

// IsEmpty reports whether the condition imposes no restriction.
func (c Cond) IsEmpty() bool {
	return c.expr == ""
}

// SQL renders the condition with positional placeholders starting at $start
// and returns the expression together with its arguments. An empty
// condition renders as TRUE so it can be spliced into any WHERE clause.
func (c Cond) SQL(start int) (string, []any) {
	if c.IsEmpty() {
		return "TRUE", nil
	}
	var b strings.Builder
	n := start
	for _, r := range c.expr {
		if r == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), c.args
}

// PostVisible is the default filter for anonymous reads:
// published AND NOT deleted.
func PostVisible() Cond {
	return And(Eq("published", true), Eq("deleted", false))
}

// PostVisibleOrOwnedBy extends PostVisible so an author still sees their
// own drafts and soft-deleted posts.
func PostVisibleOrOwnedBy(userID uuid.UUID) Cond {
	return Or(PostVisible(), Eq("author_id", userID))
}

// PostInEditedCategory matches posts whose category the user has been
// granted editorship over.
func PostInEditedCategory(userID uuid.UUID) Cond {
	return Raw("category_id IN (SELECT category_id FROM category_editors WHERE editor_id = ?)", userID)
}
