package serial

// SetFlowControl changes the line's flow-control mode without a full
// Configure, so it can be called while Configured or Running. It
// fails with ErrPipe if Configure has not run yet, mirroring Write's
// precondition.
func (p *Port) SetFlowControl(flow FlowControl) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if p.tx.Load() == nil {
		return ErrPipe
	}
	p.cfgMu.Lock()
	defer p.cfgMu.Unlock()
	if err := applyFlowControl(p.fd, flow); err != nil {
		return err
	}
	p.cfg.FlowControl = flow
	return nil
}
