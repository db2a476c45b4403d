package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catalog/internal/models"

	"github.com/rs/zerolog/log"
)

// State is a step of the admin editing flow.
type State int

const (
	StateIdle State = iota
	StateFormOpen
	StateSubmitting
	StateDeleteConfirming
	StateDeleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormOpen:
		return "form open"
	case StateSubmitting:
		return "submitting"
	case StateDeleteConfirming:
		return "confirming delete"
	case StateDeleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// FormMode tells whether the open form creates or edits a product.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

var (
	// ErrBusy is returned while a submit or delete is in flight.
	ErrBusy = errors.New("storefront: a request is already in flight")
	// ErrInvalidState is returned for actions the current state does not allow.
	ErrInvalidState = errors.New("storefront: action not allowed in the current state")
	// ErrInvalidForm is returned when the draft fails local validation.
	ErrInvalidForm = errors.New("storefront: product form has errors")
)

const msgLoadFailed = "Failed to load products"

// Admin drives the product administration screen:
//
//	Idle -> FormOpen -> Submitting -> Idle        (save succeeded)
//	                              \-> FormOpen    (save failed, input kept)
//	Idle -> DeleteConfirming -> Deleting -> Idle  (delete succeeded)
//	                                    \-> DeleteConfirming (delete failed)
//
// Submit and ConfirmDelete release the lock during the network call, so a
// second call made meanwhile fails with ErrBusy instead of sending a
// duplicate request.
type Admin struct {
	api CatalogAPI

	mu            sync.Mutex
	state         State
	mode          FormMode
	editing       *models.Product
	draft         *Draft
	pendingDelete *models.Product
	products      []models.Product
	notification  *Notification
}

// NewAdmin creates an idle Admin. Call Refresh to load the product table.
func NewAdmin(api CatalogAPI) *Admin {
	return &Admin{api: api}
}

// Refresh reloads the product table.
func (a *Admin) Refresh(ctx context.Context) error {
	products, err := a.api.GetProducts(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Admin").Msg("Error fetching products")
		a.notify(failure(msgLoadFailed))
		return err
	}
	a.products = products
	return nil
}

// OpenCreate opens an empty form.
func (a *Admin) OpenCreate() error {
	return a.openForm(FormCreate, nil)
}

// OpenEdit opens the form prefilled with product.
func (a *Admin) OpenEdit(product models.Product) error {
	return a.openForm(FormEdit, &product)
}

func (a *Admin) openForm(mode FormMode, product *models.Product) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkIdle("open the form"); err != nil {
		return err
	}
	a.state = StateFormOpen
	a.mode = mode
	a.editing = product
	a.draft = NewDraft(product)
	return nil
}

// SetField edits the open form.
func (a *Admin) SetField(field, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateFormOpen {
		return a.stateError("edit the form")
	}
	a.draft.Set(field, value)
	return nil
}

// Submit validates the form and, when it is valid, creates or updates the
// product. Local validation failures never reach the network.
func (a *Admin) Submit(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateFormOpen {
		err := a.stateError("submit")
		a.mu.Unlock()
		return err
	}
	if !a.draft.Validate() {
		a.mu.Unlock()
		return ErrInvalidForm
	}
	a.state = StateSubmitting
	input := a.draft.Input()
	mode, editing := a.mode, a.editing
	a.mu.Unlock()

	var err error
	if mode == FormEdit {
		_, err = a.api.UpdateProduct(ctx, editing.ID, input)
	} else {
		_, err = a.api.CreateProduct(ctx, input)
	}

	a.mu.Lock()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Admin").Msg("Error saving product")
		a.state = StateFormOpen
		a.notify(failure("Failed to save product: " + errorMessage(err)))
		a.mu.Unlock()
		return err
	}
	verb := "added"
	if mode == FormEdit {
		verb = "updated"
	}
	a.notify(success(fmt.Sprintf("Product \"%s\" %s successfully", input.Name, verb)))
	a.closeForm()
	a.mu.Unlock()

	_ = a.Refresh(ctx)
	return nil
}

// RequestDelete asks for confirmation before deleting product.
func (a *Admin) RequestDelete(product models.Product) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkIdle("request a delete"); err != nil {
		return err
	}
	a.closeForm()
	a.state = StateDeleteConfirming
	a.pendingDelete = &product
	return nil
}

// ConfirmDelete deletes the product awaiting confirmation. On failure the
// confirmation stays open so the user can retry or cancel.
func (a *Admin) ConfirmDelete(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateDeleteConfirming {
		err := a.stateError("confirm a delete")
		a.mu.Unlock()
		return err
	}
	a.state = StateDeleting
	product := *a.pendingDelete
	a.mu.Unlock()

	_, err := a.api.DeleteProduct(ctx, product.ID)

	a.mu.Lock()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Admin").Msg("Error deleting product")
		a.state = StateDeleteConfirming
		a.notify(failure("Failed to delete product: " + errorMessage(err)))
		a.mu.Unlock()
		return err
	}
	a.notify(success(fmt.Sprintf("Product \"%s\" deleted successfully", product.Name)))
	a.state = StateIdle
	a.pendingDelete = nil
	a.mu.Unlock()

	_ = a.Refresh(ctx)
	return nil
}

// Cancel closes the form or the delete confirmation without any call.
func (a *Admin) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateFormOpen:
		a.closeForm()
	case StateDeleteConfirming:
		a.state = StateIdle
		a.pendingDelete = nil
	case StateSubmitting, StateDeleting:
		return ErrBusy
	}
	return nil
}

// State returns the current step of the flow.
func (a *Admin) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Mode returns whether the open form creates or edits.
func (a *Admin) Mode() FormMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Draft returns a copy of the open form, or nil when no form is open.
func (a *Admin) Draft() *Draft {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.draft == nil {
		return nil
	}
	draft := *a.draft
	draft.Errors = make(map[string]string, len(a.draft.Errors))
	for field, message := range a.draft.Errors {
		draft.Errors[field] = message
	}
	return &draft
}

// Products returns the last loaded product table.
func (a *Admin) Products() []models.Product {
	a.mu.Lock()
	defer a.mu.Unlock()

	products := make([]models.Product, len(a.products))
	copy(products, a.products)
	return products
}

// Notification returns the visible notification, if any.
func (a *Admin) Notification() *Notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.notification == nil {
		return nil
	}
	note := *a.notification
	return &note
}

// DismissNotification hides the visible notification.
func (a *Admin) DismissNotification() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notification = nil
}

func (a *Admin) notify(note Notification) {
	a.notification = &note
}

func (a *Admin) closeForm() {
	a.state = StateIdle
	a.editing = nil
	a.draft = nil
}

// checkIdle allows actions from Idle and from an open form, which they
// replace.
func (a *Admin) checkIdle(action string) error {
	if a.state == StateIdle || a.state == StateFormOpen {
		return nil
	}
	return a.stateError(action)
}

func (a *Admin) stateError(action string) error {
	if a.state == StateSubmitting || a.state == StateDeleting {
		return ErrBusy
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, action, a.state)
}
