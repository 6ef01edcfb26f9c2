package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glamstore/internal/identity"
	"glamstore/internal/model"
)

// ErrInvalidIdentifier is returned when an id does not belong to the
// identifier space an operation requires.
var ErrInvalidIdentifier = errors.New("identifier is not valid for this operation")

// Reconciler locates users and their orders when an id may come from either
// the local store or the external auth provider. Orders were historically
// written under either id, so lookups chase the cross-reference stored on
// the user record.
type Reconciler struct {
	users  UserRepository
	orders OrderRepository
	log    logrus.FieldLogger
}

func NewReconciler(users UserRepository, orders OrderRepository, log logrus.FieldLogger) *Reconciler {
	return &Reconciler{users: users, orders: orders, log: log}
}

// OrdersForUser returns the order history of userID. An id that matches no
// orders, directly or through the linked id of the other space, yields an
// empty list. Only store failures are errors.
func (r *Reconciler) OrdersForUser(ctx context.Context, userID string) ([]model.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []model.Order{}, nil
	}

	orders, err := r.findOrders(ctx, userID)
	if err != nil || len(orders) > 0 {
		return orders, err
	}

	log := r.log.WithField("user_id", userID)

	switch identity.Classify(userID, r.users.IsLocalID) {
	case identity.SpaceLocal:
		user, err := r.users.FindByID(ctx, userID)
		if errors.Is(err, ErrNotFound) {
			return []model.Order{}, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "find user by local id")
		}
		if user.ExternalID == "" {
			return []model.Order{}, nil
		}
		log.WithField("external_id", user.ExternalID).Debug("no orders under local id, retrying with external id")
		return r.findOrders(ctx, user.ExternalID)

	case identity.SpaceExternal:
		user, err := r.userByExternalID(ctx, userID)
		if errors.Is(err, ErrNotFound) {
			return []model.Order{}, nil
		}
		if err != nil {
			return nil, err
		}
		log.WithField("local_id", user.ID).Debug("no orders under external id, retrying with local id")
		return r.findOrders(ctx, user.ID)
	}

	return []model.Order{}, nil
}

// ResolveUser finds the user behind id in either identifier space.
func (r *Reconciler) ResolveUser(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	switch identity.Classify(id, r.users.IsLocalID) {
	case identity.SpaceExternal:
		return r.userByExternalID(ctx, id)
	case identity.SpaceLocal:
		user, err := r.users.FindByID(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "find user by local id")
		}
		return user, nil
	default:
		return nil, ErrNotFound
	}
}

// AttachUsers sets the User of each order, loading owners with one query per
// identifier space. Owners that cannot be loaded are left nil; the orders
// are still returned.
func (r *Reconciler) AttachUsers(ctx context.Context, orders []model.Order) []model.Order {
	var localIDs, externalIDs []string
	seen := make(map[string]bool)
	for _, o := range orders {
		if o.UserID == "" || seen[o.UserID] {
			continue
		}
		seen[o.UserID] = true
		switch identity.Classify(o.UserID, r.users.IsLocalID) {
		case identity.SpaceLocal:
			localIDs = append(localIDs, o.UserID)
		case identity.SpaceExternal:
			externalIDs = append(externalIDs, o.UserID)
		}
	}

	owners := make(map[string]*model.User, len(seen))

	if len(localIDs) > 0 {
		users, err := r.users.FindByIDs(ctx, localIDs)
		if err != nil {
			r.log.WithError(err).Warn("failed to load order owners by local id")
		}
		for i := range users {
			owners[users[i].ID] = &users[i]
		}
	}

	if len(externalIDs) > 0 {
		users, err := r.users.FindAllByExternalIDs(ctx, externalIDs)
		if err != nil {
			r.log.WithError(err).Warn("failed to load order owners by external id")
		}
		claimed := make(map[string]int, len(users))
		for _, u := range users {
			claimed[u.ExternalID]++
		}
		for i := range users {
			ext := users[i].ExternalID
			if claimed[ext] > 1 {
				r.log.WithField("external_id", ext).Warn("external id held by several users, owner left unresolved")
				continue
			}
			owners[ext] = &users[i]
		}
	}

	for i := range orders {
		if owner, ok := owners[orders[i].UserID]; ok {
			orders[i].User = owner
		}
	}
	return orders
}

// LinkExternalID records externalID on the local user localID so both ids
// resolve to the same account. An external id already held by another user
// is a conflict.
func (r *Reconciler) LinkExternalID(ctx context.Context, localID, externalID string) (*model.User, error) {
	if !identity.IsExternal(externalID) {
		return nil, ErrInvalidIdentifier
	}
	if identity.Classify(localID, r.users.IsLocalID) != identity.SpaceLocal {
		return nil, ErrInvalidIdentifier
	}

	user, err := r.users.FindByID(ctx, localID)
	if err != nil {
		return nil, errors.Wrap(err, "find user by local id")
	}
	if user.ExternalID == externalID {
		return user, nil
	}

	holders, err := r.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, errors.Wrap(err, "find users by external id")
	}
	for _, h := range holders {
		if h.ID != user.ID {
			return nil, errors.Wrapf(ErrConflict, "external id held by user %s", h.ID)
		}
	}

	user.ExternalID = externalID
	if err := r.users.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return user, nil
}

func (r *Reconciler) findOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := r.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find orders by user id")
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (r *Reconciler) userByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	users, err := r.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, errors.Wrap(err, "find users by external id")
	}
	switch len(users) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, errors.Wrapf(ErrAmbiguousIdentity, "external id %s", externalID)
	}
}
