package weaver

// Status classifies the outcome of weaving one type.
type Status string

const (
	// StatusWoven means the type was fully transformed.
	StatusWoven Status = "woven"
	// StatusSkipped means the type was left untouched, with a recorded
	// reason (no hash method, no reachable constructor).
	StatusSkipped Status = "skipped"
	// StatusFailed means transformation aborted partway; the type may be
	// partially mutated and its module output must not be trusted.
	StatusFailed Status = "failed"
)

// Outcome records what happened to one candidate type.
type Outcome struct {
	Err          error  // reason for StatusSkipped and StatusFailed
	Type         string // type name
	Status       Status
	Constructors int // constructors instrumented
	Injections   int // cache-store sequences injected across all constructors
}

// Report aggregates per-type outcomes for one pass over a module.
type Report struct {
	Module   string
	Outcomes []Outcome
}

// Woven returns the number of fully transformed types.
func (r *Report) Woven() int { return r.count(StatusWoven) }

// Skipped returns the number of types left untouched.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of types whose transformation aborted.
func (r *Report) Failed() int { return r.count(StatusFailed) }

func (r *Report) count(s Status) int {
	n := 0
	for _, out := range r.Outcomes {
		if out.Status == s {
			n++
		}
	}
	return n
}

// Errs returns the errors of all failed types in table order.
func (r *Report) Errs() []error {
	var errs []error
	for _, out := range r.Outcomes {
		if out.Status == StatusFailed && out.Err != nil {
			errs = append(errs, out.Err)
		}
	}
	return errs
}
