package lamb

const (
	PrecedenceInfix          = 5
	PrecedenceAdditive       = 10
	PrecedenceMultiplicative = 20

	// Juxtaposition binds tighter than any operator.
	PrecedenceApplication = 100
)

func defineBuiltins(t *FixityTable) {
	defineBuiltinOperator(t, "+", PrecedenceAdditive, AssocLeft)
	defineBuiltinOperator(t, "*", PrecedenceMultiplicative, AssocLeft)
}

func defineBuiltinOperator(t *FixityTable, name string, precedence int, assoc Associativity) {
	t.ops[name] = NewOperatorInfo(precedence, assoc)
}
