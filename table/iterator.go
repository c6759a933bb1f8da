package table

// Iterator yields one record per call. It returns a nil Iterator once it
// is exhausted or has failed.
type Iterator func() (*Record, error, Iterator)

// Do runs the iterator made by run and calls do for every record. The
// first error from either stops the walk.
func Do(run func() (Iterator, error), do func(*Record) error) error {
	it, err := run()
	if err != nil {
		return err
	}
	var r *Record
	for r, err, it = it(); it != nil; r, err, it = it() {
		e := do(r)
		if e != nil {
			return e
		}
	}
	return err
}

// EachWithDeleted walks every row, deleted ones included. The count is
// read once, when the walk starts.
func (t *Table) EachWithDeleted() (it Iterator, err error) {
	count := t.Count()
	i := 0
	it = func() (r *Record, err error, _it Iterator) {
		if i >= count {
			return nil, nil, nil
		}
		r, err = t.Load(i)
		if err != nil {
			return nil, err, nil
		}
		i++
		return r, nil, it
	}
	return it, nil
}

// Each walks the rows that are not marked deleted.
func (t *Table) Each() (it Iterator, err error) {
	all, err := t.EachWithDeleted()
	if err != nil {
		return nil, err
	}
	it = func() (r *Record, err error, _it Iterator) {
		for r, err, all = all(); all != nil; r, err, all = all() {
			if !r.IsDeleted() {
				return r, nil, it
			}
		}
		return nil, err, nil
	}
	return it, nil
}
