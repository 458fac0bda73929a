package responses

import (
	"context"
	"fmt"
	"time"
)

const mockCount = 5

var mockSources = []string{"Social Media", "Friend", "Advertisement", "Other"}

// MockFetcher serves five demo submissions, one day apart and newest first,
// so the responses view has something to show before real traffic arrives.
type MockFetcher struct {
	// QuestionIDs key the demo answers; the first four receive a name, an
	// email, a comment and a referral source. Empty means "1".."4".
	QuestionIDs []string
	// Now anchors the timestamps. Defaults to time.Now.
	Now func() time.Time
}

var _ Fetcher = MockFetcher{}

func (m MockFetcher) List(ctx context.Context, formID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	keys := m.QuestionIDs
	if len(keys) == 0 {
		keys = []string{"1", "2", "3", "4"}
	}
	anchor := now().UTC()

	records := make([]Record, 0, mockCount)
	for idx := 0; idx < mockCount; idx++ {
		answers := []any{
			fmt.Sprintf("Respondent %d", idx+1),
			fmt.Sprintf("response%d@example.com", idx+1),
			mockComment(idx),
			mockSources[idx%len(mockSources)],
		}
		data := make(map[string]any, len(answers))
		for pos, answer := range answers {
			if pos < len(keys) {
				data[keys[pos]] = answer
			}
		}
		records = append(records, Record{
			ID:          fmt.Sprintf("response-%d", idx+1),
			FormID:      formID,
			SubmittedAt: anchor.Add(-time.Duration(idx) * 24 * time.Hour),
			Data:        data,
		})
	}
	return records, nil
}

func mockComment(idx int) string {
	if idx%2 == 0 {
		return "Great form!"
	}
	return "Very useful survey, thanks!"
}
