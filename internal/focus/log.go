package focus

// SessionLog is the append-only history of phase outcomes, oldest first.
type SessionLog struct {
	entries []LogEntry
}

func NewSessionLog(entries []LogEntry) *SessionLog {
	l := &SessionLog{}
	if len(entries) > 0 {
		l.entries = append([]LogEntry(nil), entries...)
	}
	return l
}

func (l *SessionLog) Append(e LogEntry) {
	l.entries = append(l.entries, e)
}

func (l *SessionLog) Len() int { return len(l.entries) }

// Entries returns a copy; callers cannot reach the log through it.
func (l *SessionLog) Entries() []LogEntry {
	if len(l.entries) == 0 {
		return nil
	}
	return append([]LogEntry(nil), l.entries...)
}

// Recent returns up to n of the newest entries, newest first.
func (l *SessionLog) Recent(n int) []LogEntry {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]LogEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// clear is reserved for the full data reset.
func (l *SessionLog) clear() {
	l.entries = nil
}
