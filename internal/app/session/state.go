package session

// Kind is the phase a session is in
type Kind int

const (
	Idle Kind = iota
	Capturing
	Ready
	Cleaning
	Error
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Ready:
		return "ready"
	case Cleaning:
		return "cleaning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a session. Which fields are meaningful
// depends on Kind:
//
//	Idle       nothing captured yet
//	Capturing  Transcript is the previous one, kept for display
//	Ready      Transcript, and Cleaned when a cleaning succeeded
//	Cleaning   Transcript being cleaned
//	Error      Err, with Transcript retained
type State struct {
	Kind       Kind
	Transcript string
	Cleaned    string
	Err        string
	Generation uint64
}

// Status is the flag view of a State
type Status struct {
	Capturing bool
	Cleaning  bool
	HasError  bool
}

// Status derives the session flags from the state
func (s State) Status() Status {
	return Status{
		Capturing: s.Kind == Capturing,
		Cleaning:  s.Kind == Cleaning,
		HasError:  s.Kind == Error,
	}
}

// HasTranscript reports whether there is text to clean or show
func (s State) HasTranscript() bool {
	return s.Transcript != ""
}

// HasCleaned reports whether a cleaned version exists
func (s State) HasCleaned() bool {
	return s.Cleaned != ""
}
