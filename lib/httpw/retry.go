package httpw

// Policy retries a call a fixed number of times with no delay between
// attempts. A nil Retryable predicate retries any error. The last error is
// returned once attempts are exhausted.
type Policy struct {
	Attempts  int
	Retryable func(error) bool
}

// The policy applied to remote calls by default: 3 attempts, any error.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3}
}

func (p Policy) Do(call func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = call()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
	}

	return err
}
