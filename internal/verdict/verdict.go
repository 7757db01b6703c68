package verdict

import "strings"

// Report is an aggregated failure across one or more entities. It
// implements error; errors.Is matches the kind passed to Collect.
type Report struct {
	kind     error
	stage    string
	messages []string
}

// Collect drops empty messages and returns a Report holding the rest, or
// nil when nothing is left. kind may be nil.
func Collect(kind error, stage string, msgs ...string) *Report {
	var kept []string
	for _, m := range msgs {
		if m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &Report{kind: kind, stage: stage, messages: kept}
}

// Primary returns the first failure message.
func (r *Report) Primary() string {
	return r.messages[0]
}

// Messages returns a copy of every failure message in order.
func (r *Report) Messages() []string {
	return append([]string(nil), r.messages...)
}

// Stage returns the stage label the report was collected under.
func (r *Report) Stage() string {
	return r.stage
}

// Error renders the stage and primary message, followed by the full list
// when more than one entity failed.
func (r *Report) Error() string {
	var b strings.Builder
	if r.stage != "" {
		b.WriteString(r.stage)
		b.WriteString(". ")
	}
	b.WriteString(r.messages[0])
	if len(r.messages) > 1 {
		b.WriteString("\nFull list of errors:\n - ")
		b.WriteString(strings.Join(r.messages, "\n - "))
	}
	return b.String()
}

// Unwrap returns the report kind.
func (r *Report) Unwrap() error {
	return r.kind
}

// AsError returns r as an error, keeping a nil *Report a nil error.
func (r *Report) AsError() error {
	if r == nil {
		return nil
	}
	return r
}
