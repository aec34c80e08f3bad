package planner

// EngineError wraps a failure raised by the routing engine during point resolution or search.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
