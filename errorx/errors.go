package errorx

// OutcomeErrsMatchBatchLength verifies that a batch submission yielded one outcome per
// submitted document. On mismatch the slice is padded up to batchLength with the returned
// error so per-document attribution stays aligned with submission order. When fallbackErr
// is non-nil it is returned instead of the generated mismatch error.
func OutcomeErrsMatchBatchLength(errs []error, batchLength int, fallbackErr error) ([]error, error) {
	var err error
	if fallbackErr != nil {
		err = fallbackErr
	} else if len(errs) != batchLength {
		err = EngineErrorf(0, "a different number of outcomes (%d) than the batch length (%d) was returned", len(errs), batchLength)
	}

	if len(errs) != batchLength {
		padded := make([]error, batchLength)
		n := copy(padded, errs)
		for i := n; i < batchLength; i++ {
			padded[i] = err
		}
		errs = padded
	}

	return errs, err
}
