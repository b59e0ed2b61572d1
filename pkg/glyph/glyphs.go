package glyph

import "fmt"

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	strikeCode    = 9
	underlineCode = 4
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Glyph is the one-character marker shown next to a task row.
type Glyph struct {
	Symbol  string
	Meaning string
}

var (
	Pending   = Glyph{Symbol: "●", Meaning: "task pending"}
	Completed = Glyph{Symbol: "✘", Meaning: "task completed"}
	Overdue   = Glyph{Symbol: "!", Meaning: "past due"}
)

func (g Glyph) String() string {
	return g.Symbol
}

// Legend lists the markers in the order they are explained to the user.
func Legend() []Glyph {
	return []Glyph{Pending, Completed, Overdue}
}
