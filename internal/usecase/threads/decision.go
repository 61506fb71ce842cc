package threads

// DecisionKind enumerates the outcomes of the thread-reuse decision.
type DecisionKind string

const (
	// DecisionReply continues an existing thread.
	DecisionReply DecisionKind = "reply"

	// DecisionNewThread opens a new top-level thread at the target.
	DecisionNewThread DecisionKind = "new_thread"

	// DecisionAbort cancels the write entirely.
	DecisionAbort DecisionKind = "abort"
)

// Decision is the tri-state outcome gating a comment write when
// discussion already exists at the target. Abort is a first-class
// outcome, distinct from creating a new thread.
type Decision struct {
	Kind DecisionKind

	// ThreadID is the root comment ID of the thread being continued.
	// Only set when Kind is DecisionReply.
	ThreadID int64
}

// ReplyTo continues the thread rooted at the given comment ID.
func ReplyTo(threadID int64) Decision {
	return Decision{Kind: DecisionReply, ThreadID: threadID}
}

// NewThread opens a new thread at the target.
func NewThread() Decision {
	return Decision{Kind: DecisionNewThread}
}

// Abort cancels the write.
func Abort() Decision {
	return Decision{Kind: DecisionAbort}
}
