package checkpoint

import "github.com/abhisek/masteryloop/internal/review"

// attemptStartedMsg is sent when the question batch has been generated.
type attemptStartedMsg struct {
	Attempt *review.Attempt
	Err     error
}
