package async

// Result is the settled outcome of a single Future.
type Result[U any] struct {
	Value U
	Err   error
}

// Settle waits for every future and returns their outcomes in input order.
// A failing future does not affect the others.
func Settle[U any](futures ...*Future[U]) []Result[U] {
	results := make([]Result[U], len(futures))
	for i, f := range futures {
		results[i].Value, results[i].Err = f.Await()
	}
	return results
}

// All waits for every future and returns their results in input order.
// It returns as soon as any future fails, with that error and no results;
// the remaining futures keep running.
func All[U any](futures ...*Future[U]) ([]U, error) {
	done := make(chan *Future[U], len(futures))
	for _, f := range futures {
		go func() {
			<-f.Done()
			done <- f
		}()
	}

	for range futures {
		if _, err := (<-done).Await(); err != nil {
			return nil, err
		}
	}

	results := make([]U, len(futures))
	for i, f := range futures {
		results[i], _ = f.Await()
	}
	return results, nil
}
