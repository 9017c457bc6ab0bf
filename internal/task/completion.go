package task

// Completion is the token returned by operations whose effect is issuing
// filesystem writes. A returned Completion guarantees that every write
// transitively triggered by the operation has been handed to the filesystem
// (durability is the filesystem's concern). Writes counts the writes issued,
// which callers use for reporting and tests use for assertions.
type Completion struct {
	Writes int
}

// Done is the completion of an operation that issued no writes of its own.
func Done() Completion {
	return Completion{}
}

// Join combines child completions into one covering all of them. Joining is
// commutative and associative, so concurrently produced children may be
// combined in any arrival order.
func Join(completions ...Completion) Completion {
	total := Completion{}
	for _, c := range completions {
		total.Writes += c.Writes
	}
	return total
}
