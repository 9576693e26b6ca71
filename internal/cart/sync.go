package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eliezer-r/storefront-platform/internal/models"
)

// Catalog is the read-only external product catalog, used only to enrich
// server cart rows with display fields.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Orchestrator reconciles the guest cart with the server cart once per
// login. Every step is logged and, except for the initial server fetch,
// best-effort: a later failure never rolls back already-applied state.
type Orchestrator struct {
	remote  RemoteCart
	catalog Catalog
	store   LocalStore
	machine *Machine
	logger  *slog.Logger

	wasLoggedIn bool
}

func NewOrchestrator(remote RemoteCart, catalog Catalog, store LocalStore, machine *Machine, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		remote:  remote,
		catalog: catalog,
		store:   store,
		machine: machine,
		logger:  logger,
	}
}

// Observe tracks the session and fires the sync exactly once per
// guest-to-authenticated edge. The authenticated-to-guest edge clears
// instead of merging.
func (o *Orchestrator) Observe(ctx context.Context, loggedIn bool) error {
	defer func() { o.wasLoggedIn = loggedIn }()

	if loggedIn && !o.wasLoggedIn {
		o.machine.SetAuthenticated(true)

		return o.Sync(ctx)
	}

	if !loggedIn && o.wasLoggedIn {
		o.machine.Logout()
	}

	return nil
}

// Sync folds the guest cart into the server cart:
//
//  1. fetch the server cart; failure aborts everything and keeps the guest
//     snapshot, so no local data is lost
//  2. fetch the catalog to enrich the bare server rows
//  3. merge the guest lines on top (quantities sum, server fields win)
//  4. replace the in-memory cart in a single transition
//  5. push the merged list back as a replace-all and drop the guest snapshot
//
// The push is not retried; if it fails the next login sync reconciles from
// whatever the server then holds.
func (o *Orchestrator) Sync(ctx context.Context) error {
	gen := o.machine.Generation()

	rows, err := o.remote.List(ctx)
	if err != nil {
		o.logger.Error("fetching server cart failed, aborting sync", slog.String("error", err.Error()))

		return fmt.Errorf("fetching server cart: %w", err)
	}

	server := o.enrich(ctx, rows)

	local, err := o.store.Load()
	if err != nil {
		o.logger.Warn("reading guest cart failed, merging server cart only", slog.String("error", err.Error()))

		local = nil
	}

	merged := server
	if len(local) > 0 {
		merged = Merge(local, server)
	}

	if !o.machine.ReplaceIfCurrent(gen, merged) {
		o.logger.Warn("auth state changed mid-sync, discarding merge result")

		return nil
	}

	if len(merged) > 0 {
		if err := o.pushMerged(ctx, merged); err != nil {
			o.logger.Error("pushing merged cart failed", slog.String("error", err.Error()))
		}
	}

	// The guest snapshot is folded into memory now; keeping it around would
	// re-add the same delta on a future sync.
	if err := o.store.Clear(); err != nil {
		o.logger.Error("clearing guest cart after sync failed", slog.String("error", err.Error()))
	}

	o.logger.Info("cart sync completed",
		slog.Int("server_lines", len(rows)),
		slog.Int("guest_lines", len(local)),
		slog.Int("merged_lines", len(merged)))

	return nil
}

// enrich joins server rows against the catalog. The cart-stored price wins
// over the catalog's current price, quantity defaults to 1 and a row whose
// product is gone from the catalog keeps zero-value display fields rather
// than failing.
func (o *Orchestrator) enrich(ctx context.Context, rows []models.CartRow) []models.CartLine {
	products, err := o.catalog.Products(ctx)
	if err != nil {
		o.logger.Warn("fetching catalog failed, server lines stay unenriched", slog.String("error", err.Error()))
	}

	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]models.CartLine, 0, len(rows))

	for _, row := range rows {
		product := byID[row.ProductID]

		price := row.Price
		if price == 0 {
			price = product.Price
		}

		quantity := row.Quantity
		if quantity == 0 {
			quantity = 1
		}

		lines = append(lines, models.CartLine{
			ProductID:   row.ProductID,
			Title:       product.Title,
			Image:       product.Image,
			Description: product.Description,
			Category:    product.Category,
			Price:       price,
			Quantity:    quantity,
		})
	}

	return lines
}

func (o *Orchestrator) pushMerged(ctx context.Context, merged []models.CartLine) error {
	rows := make([]models.CartRow, 0, len(merged))
	for _, line := range merged {
		rows = append(rows, models.CartRow{ProductID: line.ProductID, Quantity: line.Quantity, Price: line.Price})
	}

	return o.remote.ReplaceAll(ctx, rows)
}
