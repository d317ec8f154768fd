package worker

import (
	"log"
	"time"

	"societydesk/service"
)

// EscalationWorker is a background worker that periodically raises the
// priority of submitted complaints nobody has picked up.
type EscalationWorker struct {
	complaints service.ComplaintStore
	interval   time.Duration
	maxAge     time.Duration
	stopChan   chan struct{}
	running    bool
}

// NewEscalationWorker creates a new escalation worker
func NewEscalationWorker(
	complaints service.ComplaintStore,
	interval time.Duration,
	maxAge time.Duration,
) *EscalationWorker {
	return &EscalationWorker{
		complaints: complaints,
		interval:   interval,
		maxAge:     maxAge,
		stopChan:   make(chan struct{}),
		running:    false,
	}
}

// Start starts the escalation worker
// The worker runs in a separate goroutine and processes escalations periodically
func (w *EscalationWorker) Start() {
	if w.running {
		log.Println("Escalation worker is already running")
		return
	}

	w.running = true
	log.Printf("Escalation worker started (interval: %v, max age: %v)", w.interval, w.maxAge)

	go w.run()
}

// Stop stops the escalation worker
func (w *EscalationWorker) Stop() {
	if !w.running {
		return
	}

	log.Println("Stopping escalation worker...")
	close(w.stopChan)
	w.running = false
	log.Println("Escalation worker stopped")
}

// run is the main worker loop
func (w *EscalationWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Process immediately on start
	w.processEscalations()

	for {
		select {
		case <-ticker.C:
			w.processEscalations()
		case <-w.stopChan:
			return
		}
	}
}

// processEscalations bumps stale submitted complaints one priority step.
// Safe to call multiple times: complaints already at high stay at high.
func (w *EscalationWorker) processEscalations() {
	startTime := time.Now()

	bumped, err := w.complaints.RaisePriorityOfStaleSubmitted(w.maxAge)
	if err != nil {
		log.Printf("Error processing escalations: %v", err)
		return
	}

	if bumped > 0 {
		log.Printf("Escalation processing completed in %v: raised priority on %d complaints",
			time.Since(startTime), bumped)
	}
}
