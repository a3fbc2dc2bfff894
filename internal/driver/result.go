package driver

// Outcome is the result of processing one input.
type Outcome struct {
	Name    string
	Lines   int   // lines read
	Emitted int   // records written
	Err     error // open or read failure, nil on success
}

// OK reports whether the input was read to the end.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Result collects one Outcome per processed input, in input order.
type Result struct {
	Outcomes []Outcome
}

// Failed returns the number of inputs that could not be fully read.
func (r Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Lines returns the total number of lines read.
func (r Result) Lines() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Lines
	}
	return n
}
