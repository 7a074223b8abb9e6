package project

import (
	"github.com/goex-lang/goex/internal/syntax"
)

// UsesExceptions reports whether any unit touches the exception
// facility: a try, a throw, or a construction of an exception value.
// The mark is computed once over all units, before any generation, so
// the shared module is emitted exactly once per project no matter how
// many units or type tags are involved.
func UsesExceptions(units []*Unit) bool {
	for _, u := range units {
		if unitUsesExceptions(u.File) {
			return true
		}
	}
	return false
}

func unitUsesExceptions(file *syntax.File) bool {
	found := false
	syntax.Inspect(file, func(n syntax.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *syntax.TryStmt, *syntax.ThrowStmt:
			found = true
		case *syntax.NewExpr:
			if n.Class == "Exception" {
				found = true
			}
		case *syntax.CallExpr:
			if name, ok := n.Fun.(*syntax.Name); ok && name.Value == "NewException" {
				found = true
			}
		}
		return !found
	})
	return found
}

// ExceptionsFile is the path of the shared exception module inside the
// output tree.
const ExceptionsFile = "exceptions/exceptions.go"

// exceptionsSource is the shared exception module emitted once per
// project when the usage mark is set.
const exceptionsSource = `package exceptions

// Exception types
type Exception interface {
    Error() string
    Type() string
}

type BaseException struct {
    message string
    exType string
}

func (e *BaseException) Error() string {
    return e.message
}

func (e *BaseException) Type() string {
    return e.exType
}

func NewException(exType, message string) Exception {
    return &BaseException{message: message, exType: exType}
}
`
