package converter

import "time"

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// toResponses applies convert to every element, always returning a non-nil slice.
func toResponses[E any, R any](items []E, convert func(*E) *R) []R {
	responses := make([]R, 0, len(items))
	for i := range items {
		responses = append(responses, *convert(&items[i]))
	}
	return responses
}
