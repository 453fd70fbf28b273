package serial

// Start spawns the background worker and begins dispatching readable
// and writable events for the device. It requires Configure to have
// run. Calling Start on an already-running Port is a no-op that
// returns nil.
func (p *Port) Start(cb Callbacks) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if p.rx.Load() == nil || p.tx.Load() == nil {
		return ErrPipe
	}
	if !p.running.CompareAndSwap(false, true) {
		return nil
	}

	p.cb.Store(&cb)

	if err := p.setupPoll(); err != nil {
		p.running.Store(false)
		return err
	}

	p.workerWG.Add(1)
	go func() {
		defer p.workerWG.Done()
		for p.running.Load() {
			if err := p.Poll(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Stop signals the worker to exit, joins it, and releases the
// readiness facility. Calling Stop on an already-stopped Port is a
// no-op that returns nil.
func (p *Port) Stop() error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	p.wake()
	p.workerWG.Wait()
	p.teardownPoll()
	return nil
}
