// Package gate decides which top-level UI tree is visible: the
// unauthenticated tree (login/register) or the authenticated application.
// The decision keys on token presence in the session store, pushed by the
// change signal and backstopped by a polling interval.
package gate

import (
	"context"
	"sync"
	"time"

	"github.com/finmate-app/finmate/internal/client/session"
	"github.com/finmate-app/finmate/internal/logging"
)

// State is the controller's render decision. Exactly one holds at any
// instant.
type State string

const (
	// StateIndeterminate holds only before Start has hydrated the store;
	// render a neutral loading affordance, never either tree.
	StateIndeterminate   State = "indeterminate"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// DefaultPollInterval is the backstop cadence. The signal is the primary
// mechanism; polling exists to bound the latency of changes made by other
// processes sharing the token storage, where no signal can reach us.
const DefaultPollInterval = 250 * time.Millisecond

// Controller observes the session store and publishes tree transitions.
// Consumers read Transitions and must fully tear down the previous tree
// on every switch.
type Controller struct {
	store        *session.Store
	signal       *session.Signal
	logger       logging.Logger
	pollInterval time.Duration

	mu    sync.Mutex
	state State

	transitions chan State
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewController(store *session.Store, signal *session.Signal, logger logging.Logger, pollInterval time.Duration) *Controller {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Controller{
		store:        store,
		signal:       signal,
		logger:       logger,
		pollInterval: pollInterval,
		state:        StateIndeterminate,
		transitions:  make(chan State, 8),
		done:         make(chan struct{}),
	}
}

// Start hydrates the store and returns the initial decision; neither tree
// may be rendered before it returns. A storage failure during hydration is
// treated as "no session", not as a fatal error — the user can still log
// in. Start then subscribes to the change signal and launches the poll.
func (c *Controller) Start(ctx context.Context) State {
	if err := c.store.Hydrate(ctx); err != nil {
		c.logger.Warn(ctx, "session storage unavailable, assuming no session", "error", err.Error())
	}

	initial := c.evaluate()
	c.mu.Lock()
	c.state = initial
	c.mu.Unlock()
	c.logger.Info(ctx, "session gate mounted", "state", string(initial))

	c.unsubscribe = c.signal.Subscribe(c.refresh)

	pollCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.poll(pollCtx)

	return initial
}

// State returns the current decision.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transitions delivers state switches after Start. When the consumer lags,
// older transitions are dropped in favor of newer ones; the channel always
// ends on the latest decision.
func (c *Controller) Transitions() <-chan State {
	return c.transitions
}

// Stop cancels the poll and detaches from the signal. Idempotent.
func (c *Controller) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		<-c.done
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) evaluate() State {
	if c.store.Token() != "" {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// refresh re-reads token presence and transitions when it changed. It is
// idempotent against redundant signals and tolerates emissions arriving in
// any order: the store is re-read every time, never trusted from a payload.
func (c *Controller) refresh() {
	next := c.evaluate()

	c.mu.Lock()
	if c.state == next || c.state == StateIndeterminate {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.state = next
	c.mu.Unlock()

	c.logger.Info(context.Background(), "session gate switched", "from", string(prev), "to", string(next))
	c.push(next)
}

func (c *Controller) push(s State) {
	for {
		select {
		case c.transitions <- s:
			return
		default:
			// full: drop the oldest pending transition
			select {
			case <-c.transitions:
			default:
			}
		}
	}
}

func (c *Controller) poll(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(context.Background(), c.pollInterval)
			if err := c.store.Reload(rctx); err != nil {
				c.logger.Debug(ctx, "session reload failed", "error", err.Error())
			}
			cancel()
			c.refresh()

		case <-ctx.Done():
			return
		}
	}
}
