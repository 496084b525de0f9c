package compose

import "fmt"

// MismatchError reports a routing step that expected the interface
// propagation phase to have registered a variable on a scope it must
// cross, and found it absent. This means the flat input violates the
// path-algebra contract the two passes share. Always fatal.
type MismatchError struct {
	VarName string
	// Scope whose declared interface is missing the variable.
	Scope string
	// Want is "input" or "output".
	Want string
	// Producer and Consumer are the scope paths of the link endpoints.
	Producer string
	Consumer string
	// Step names the routing decision that detected the inconsistency.
	Step string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"scope interface mismatch: variable %q is not a declared %s of scope %q (producer scope %q, consumer scope %q, detected at %s)",
		e.VarName, e.Want, e.Scope, e.Producer, e.Consumer, e.Step)
}
