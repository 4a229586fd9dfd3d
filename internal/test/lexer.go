package test

import (
	"math/rand"
	"strings"
)

const validTokens = "let;in;if;then;else;fun;ifx;(;);{;};|;::;:;=;->;x;foo_bar;Baz9;+;*;-;<$>;<<;0;42;2147483647;\"a string\";\"\";\"esc \\\" \\n\";'c';'\\n';true;false"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomSum returns `1 + 2 * 3 + ...` with size operands, a valid
// expression for parser benchmarks.
func GetRandomSum(size int) string {
	ops := []string{" + ", " * "}

	var b strings.Builder
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteString(ops[rand.Intn(len(ops))])
		}
		b.WriteString("1")
	}

	return b.String()
}
