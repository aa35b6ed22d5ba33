package operators

// Precedence is the binding priority of an infix or prefix operator.
// Higher binds tighter.
type Precedence int

const (
	PrecedenceSequence       Precedence = 1
	PrecedenceDefinition     Precedence = 2
	PrecedenceAssign         Precedence = 3
	PrecedenceOr             Precedence = 4
	PrecedenceAnd            Precedence = 5
	PrecedenceEqual          Precedence = 7
	PrecedenceCompare        Precedence = 10
	PrecedenceAddition       Precedence = 20
	PrecedenceMultiplication Precedence = 30
	PrecedenceExponent       Precedence = 40
	PrecedenceUnary          Precedence = 60
	PrecedenceAttribute      Precedence = 80
)

// precedenceClasses names each class by its operator family.
var precedenceClasses = map[string]Precedence{
	"attribute~:":       PrecedenceAttribute,
	"unary+-!...":       PrecedenceUnary,
	"exponent^":         PrecedenceExponent,
	"multiplication*/%": PrecedenceMultiplication,
	"addition+-":        PrecedenceAddition,
	"compare>=><=<":     PrecedenceCompare,
	"equal==!=":         PrecedenceEqual,
	"and&&":             PrecedenceAnd,
	"or||":              PrecedenceOr,
	"assign=<>":         PrecedenceAssign,
	"def->":             PrecedenceDefinition,
	"nextop;":           PrecedenceSequence,
}

// PrecedenceTable returns a copy of the precedence classes for use by a parser.
func PrecedenceTable() map[string]Precedence {
	out := make(map[string]Precedence, len(precedenceClasses))
	for k, v := range precedenceClasses {
		out[k] = v
	}
	return out
}
