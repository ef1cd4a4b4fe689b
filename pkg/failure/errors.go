package failure

// Severity tells the scheduler whether a classified error ends the whole
// crawl or only the unit of work that produced it.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}
