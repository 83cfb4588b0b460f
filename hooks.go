package chippers

// Hook observes the machine at a fixed point of the run loop.
type Hook func(m *Machine)

// ErrorHook observes the error that stopped the run loop.
type ErrorHook func(m *Machine, err error)

// AddBeforeStepHook adds a hook that runs before every step.
func (r *Runner) AddBeforeStepHook(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeStepHooks = append(r.beforeStepHooks, h)
}

// AddAfterStepHook adds a hook that runs after every step.
func (r *Runner) AddAfterStepHook(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterStepHooks = append(r.afterStepHooks, h)
}

// AddErrorHook adds a hook that runs when a step fails.
func (r *Runner) AddErrorHook(h ErrorHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorHooks = append(r.errorHooks, h)
}

func (r *Runner) runHooks(hooks []Hook) {
	for _, h := range hooks {
		h(r.machine)
	}
}

func (r *Runner) runErrorHooks(err error) {
	for _, h := range r.errorHooks {
		h(r.machine, err)
	}
}
