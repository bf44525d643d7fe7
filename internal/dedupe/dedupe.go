package dedupe

// Package dedupe provides the shared singleflight group used to collapse
// identical concurrent action submissions. Only one resolution runs for a
// given battle/version/action key while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// SubmitGroup is keyed by keys.SubmissionKey.
var SubmitGroup singleflight.Group
