package mixin

// Wrap builds a Func value that invokes prev then next, preserving call
// order when a dynamic provider layers behavior over an earlier binding.
// The wrapped call returns next's result; a non-Func prev (including a
// missing binding) is skipped rather than treated as an error, so providers
// can wrap unconditionally. An error from prev short-circuits next.
func Wrap(name string, prev, next Value) Value {
	return NewFunc(name, func(t *Target, args []Value) (Value, error) {
		if fn := prev.Func(); fn != nil {
			if _, err := fn.Fn(t, args); err != nil {
				return NewNil(), err
			}
		}
		if fn := next.Func(); fn != nil {
			return fn.Fn(t, args)
		}
		return NewNil(), nil
	})
}
