package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eliezer-r/storefront-platform/internal/models"
)

// State is the canonical in-memory cart: the line list plus totals derived
// from it.
type State struct {
	Lines []models.CartLine
	Totals
}

// Action is the closed set of cart transitions.
type Action interface {
	isAction()
}

type AddItem struct{ Line models.CartLine }

type RemoveItem struct{ ProductID int64 }

type UpdateQuantity struct {
	ProductID int64
	Quantity  int
}

type Clear struct{}

type Replace struct{ Lines []models.CartLine }

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (Clear) isAction()          {}
func (Replace) isAction()        {}

// Apply is the pure transition function. Invalid actions are no-ops, never
// errors. Totals are recomputed on every transition; the returned state is
// settled.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		// Adding an already-present product is intentionally ignored;
		// quantity changes go through UpdateQuantity.
		for _, line := range s.Lines {
			if line.ProductID == a.Line.ProductID {
				return s
			}
		}

		lines := make([]models.CartLine, 0, len(s.Lines)+1)
		lines = append(lines, s.Lines...)
		lines = append(lines, a.Line)

		return settle(lines)

	case RemoveItem:
		lines := make([]models.CartLine, 0, len(s.Lines))

		for _, line := range s.Lines {
			if line.ProductID != a.ProductID {
				lines = append(lines, line)
			}
		}

		return settle(lines)

	case UpdateQuantity:
		lines := make([]models.CartLine, 0, len(s.Lines))

		for _, line := range s.Lines {
			if line.ProductID == a.ProductID {
				line.Quantity = max(0, a.Quantity)
			}
			// A zero-quantity line is removed, never stored.
			if line.Quantity > 0 {
				lines = append(lines, line)
			}
		}

		return settle(lines)

	case Clear:
		return settle(nil)

	case Replace:
		lines := make([]models.CartLine, len(a.Lines))
		copy(lines, a.Lines)

		return settle(lines)
	}

	return s
}

func settle(lines []models.CartLine) State {
	return State{Lines: lines, Totals: Compute(lines)}
}

// RemoteCart is the client side of the cart persistence API.
type RemoteCart interface {
	List(ctx context.Context) ([]models.CartRow, error)
	Add(ctx context.Context, row models.CartRow) error
	UpdateQuantity(ctx context.Context, productID int64, quantity int) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	ReplaceAll(ctx context.Context, rows []models.CartRow) error
}

// Pusher decides how a local mutation's remote side effect is executed.
// The default is optimistic: local state commits first and remote failures
// are logged, not rolled back. A pessimistic implementation can await the
// ack instead.
type Pusher interface {
	Push(ctx context.Context, op string, fn func(context.Context) error)
}

type asyncPusher struct {
	logger *slog.Logger
}

// NewAsyncPusher returns the fire-and-forget pusher used in production.
func NewAsyncPusher(logger *slog.Logger) Pusher {
	return &asyncPusher{logger: logger}
}

func (p *asyncPusher) Push(ctx context.Context, op string, fn func(context.Context) error) {
	go func() {
		if err := fn(context.WithoutCancel(ctx)); err != nil {
			p.logger.Error("cart sync with server failed", slog.String("op", op), slog.String("error", err.Error()))
		}
	}()
}

type syncPusher struct {
	logger *slog.Logger
}

// NewSyncPusher awaits every remote ack before returning. Failures are still
// swallowed after logging so the optimistic contract holds either way.
func NewSyncPusher(logger *slog.Logger) Pusher {
	return &syncPusher{logger: logger}
}

func (p *syncPusher) Push(ctx context.Context, op string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		p.logger.Error("cart sync with server failed", slog.String("op", op), slog.String("error", err.Error()))
	}
}

// Machine owns the canonical cart state and runs the side-effect policy
// around the pure reducer: while authenticated every mutation fires a remote
// call, while a guest every mutation snapshots the full list to the local
// store.
type Machine struct {
	mu            sync.Mutex
	state         State
	authenticated bool
	generation    uint64

	remote RemoteCart
	store  LocalStore
	pusher Pusher
	logger *slog.Logger
}

func NewMachine(remote RemoteCart, store LocalStore, pusher Pusher, logger *slog.Logger) *Machine {
	return &Machine{
		remote: remote,
		store:  store,
		pusher: pusher,
		logger: logger,
	}
}

// State returns a copy of the settled state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]models.CartLine, len(m.state.Lines))
	copy(lines, m.state.Lines)

	return State{Lines: lines, Totals: m.state.Totals}
}

func (m *Machine) IsInCart(productID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range m.state.Lines {
		if line.ProductID == productID {
			return true
		}
	}

	return false
}

func (m *Machine) ItemQuantity(productID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range m.state.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}

	return 0
}

// AddItem appends the line unless the product is already present, in which
// case nothing happens at all: no state change, no remote call, no snapshot.
func (m *Machine) AddItem(ctx context.Context, line models.CartLine) {
	m.mu.Lock()

	before := len(m.state.Lines)
	m.state = Apply(m.state, AddItem{Line: line})

	if len(m.state.Lines) == before {
		m.mu.Unlock()
		return
	}

	m.afterMutation(ctx, "add", func(ctx context.Context) error {
		return m.remote.Add(ctx, models.CartRow{ProductID: line.ProductID, Quantity: line.Quantity, Price: line.Price})
	})
}

func (m *Machine) RemoveItem(ctx context.Context, productID int64) {
	m.mu.Lock()
	m.state = Apply(m.state, RemoveItem{ProductID: productID})

	m.afterMutation(ctx, "remove", func(ctx context.Context) error {
		return m.remote.Remove(ctx, productID)
	})
}

func (m *Machine) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	m.mu.Lock()
	m.state = Apply(m.state, UpdateQuantity{ProductID: productID, Quantity: quantity})

	m.afterMutation(ctx, "update quantity", func(ctx context.Context) error {
		return m.remote.UpdateQuantity(ctx, productID, quantity)
	})
}

func (m *Machine) Clear(ctx context.Context) {
	m.mu.Lock()
	m.state = Apply(m.state, Clear{})

	m.afterMutation(ctx, "clear", func(ctx context.Context) error {
		return m.remote.Clear(ctx)
	})
}

// afterMutation runs the side-effect policy and releases the lock taken by
// the caller.
func (m *Machine) afterMutation(ctx context.Context, op string, remote func(context.Context) error) {
	authenticated := m.authenticated
	lines := make([]models.CartLine, len(m.state.Lines))
	copy(lines, m.state.Lines)
	m.mu.Unlock()

	if authenticated {
		m.pusher.Push(ctx, op, remote)
		return
	}

	if err := m.store.Save(lines); err != nil {
		m.logger.Error("saving guest cart failed", slog.String("error", err.Error()))
	}
}

// SetAuthenticated records an auth transition and bumps the sync generation
// so an orchestrator started before the transition cannot land a stale
// replace.
func (m *Machine) SetAuthenticated(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.authenticated != v {
		m.generation++
	}

	m.authenticated = v
}

func (m *Machine) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.authenticated
}

// Generation returns the current sync generation. See ReplaceIfCurrent.
func (m *Machine) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generation
}

// ReplaceIfCurrent applies a wholesale substitution only if no auth
// transition happened since gen was observed. Returns whether it applied.
func (m *Machine) ReplaceIfCurrent(gen uint64, lines []models.CartLine) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		return false
	}

	m.state = Apply(m.state, Replace{Lines: lines})

	return true
}

// Logout empties the in-memory cart and the guest snapshot without touching
// the server cart.
func (m *Machine) Logout() {
	m.mu.Lock()
	m.state = Apply(m.state, Clear{})
	m.generation++
	m.authenticated = false
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Error("clearing guest cart failed", slog.String("error", err.Error()))
	}
}

// Restore loads the guest snapshot into memory, typically at startup while
// unauthenticated.
func (m *Machine) Restore() error {
	lines, err := m.store.Load()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.state = Apply(m.state, Replace{Lines: lines})
	m.mu.Unlock()

	return nil
}
