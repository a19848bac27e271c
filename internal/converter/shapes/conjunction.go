package shapes

import (
	"fmt"
	"strings"

	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

// BuildConjunctions synthesizes one self-contained Turtle statement per
// file path that has at least one variable: the file shape must satisfy a
// logical AND of one hasParameter constraint per variable. A path with
// zero variables gets no statement; an empty AND is never emitted.
//
// All IRIs are written in full angle-bracket form so the statements stay
// valid when appended to a prefix-free document. Variables are enumerated
// in sorted order, satisfying the every-variable-exactly-once contract
// with a stable order.
func BuildConjunctions(index *FileVariableIndex, dataNS, schemaNS string) []string {
	var statements []string
	for _, path := range index.Files() {
		names := index.Variables(path)
		if len(names) == 0 {
			continue
		}

		fileIRI := dataNS + EncodePath(path)
		var terms strings.Builder
		for _, name := range names {
			fmt.Fprintf(&terms, " [<%s> <%s%s> ; <%s> <%s%s>]",
				vocab.ShPath, schemaNS, vocab.HasParameter,
				vocab.ShHasValue, dataNS, name)
		}

		statements = append(statements,
			fmt.Sprintf("<%s> <%s> (%s ) .", fileIRI, vocab.ShAnd, terms.String()))
	}
	return statements
}
