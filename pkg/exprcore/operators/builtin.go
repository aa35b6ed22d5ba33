package operators

// Apply registers every built-in operator and function into r.
func Apply(r *Registry) error {
	for _, register := range []func(*Registry) error{
		registerArithmetic,
		registerBitwise,
		registerLogic,
		registerComparison,
		registerAssignment,
		registerUnpack,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}

// NewDefault creates a registry holding the built-in operators and functions.
func NewDefault() *Registry {
	r := New()
	if err := Apply(r); err != nil {
		// only reachable if a built-in registration is malformed
		panic(err)
	}
	return r
}
