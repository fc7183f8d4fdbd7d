// Package expr evaluates the row filter conditions of a job definition.
//
// A condition is a small boolean expression over literals: strings, numbers,
// True/False/None, comparisons, membership tests with in / not in, and the
// logical operators and, or, not. Row cells are referenced as $N (0-based
// column). A placeholder inside a quoted string is replaced by the cell text;
// a bare placeholder evaluates to a number when the cell is numeric and to a
// string otherwise. Cell content is never parsed as expression source, so a
// catalog cannot inject operators into a condition.
//
// An empty condition is true.
package expr
