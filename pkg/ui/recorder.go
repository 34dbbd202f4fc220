package ui

import "sync"

// DialogRecord is one dialog captured by Recorder.
type DialogRecord struct {
	Kind    string
	Title   string
	Message string
}

// Recorder is a headless Dialogs and Display that records every dialog.
// Confirmations are answered with Answer.
type Recorder struct {
	mu          sync.Mutex
	Answer      bool
	Records     []DialogRecord
	Invalidated int
}

var (
	_ Dialogs = (*Recorder)(nil)
	_ Display = (*Recorder)(nil)
)

func (r *Recorder) add(kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, DialogRecord{Kind: kind, Title: title, Message: message})
}

func (r *Recorder) Error(title, message string)   { r.add("error", title, message) }
func (r *Recorder) Warning(title, message string) { r.add("warning", title, message) }
func (r *Recorder) Info(title, message string)    { r.add("info", title, message) }

func (r *Recorder) Confirm(title, message string, onYes func()) {
	r.add("confirm", title, message)
	r.mu.Lock()
	answer := r.Answer
	r.mu.Unlock()
	if answer && onYes != nil {
		onYes()
	}
}

func (r *Recorder) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Invalidated++
}

// Kinds returns the recorded dialog kinds in order.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Records))
	for i, record := range r.Records {
		out[i] = record.Kind
	}
	return out
}

// Last returns the most recent dialog.
func (r *Recorder) Last() (DialogRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Records) == 0 {
		return DialogRecord{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// Reset drops recorded dialogs.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = nil
	r.Invalidated = 0
}
