package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/model"
)

func (r *Resolver) resolveHello(p graphql.ResolveParams) (interface{}, error) {
	return "Hello world!", nil
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	users, err := r.userService.GetUsers(p.Context)
	if err != nil {
		return nil, r.handleError("users", err)
	}
	return users, nil
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}

	user, err := r.userService.GetUser(p.Context, id)
	if err != nil {
		return nil, r.handleError("user", err)
	}
	return user, nil
}

func (r *Resolver) resolveItems(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	filter := model.ItemFilter{
		Type:       argString(p, "type"),
		SearchTerm: argString(p, "searchTerm"),
	}

	items, err := r.itemService.GetItems(p.Context, subject, filter)
	if err != nil {
		return nil, r.handleError("items", err)
	}
	return items, nil
}

func (r *Resolver) resolveItem(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}

	item, err := r.itemService.GetItem(p.Context, subject, id)
	if err != nil {
		return nil, r.handleError("item", err)
	}
	return item, nil
}

func (r *Resolver) resolveItemsByUser(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	// The userId argument is part of the schema contract but never trusted:
	// the service scopes by the verified subject.
	requested, _ := argUUID(p, "userId")

	items, err := r.itemService.GetItemsByUser(p.Context, subject, requested)
	if err != nil {
		return nil, r.handleError("itemsByUser", err)
	}
	return items, nil
}

func (r *Resolver) resolveCategories(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	categories, err := r.categoryService.GetCategories(p.Context)
	if err != nil {
		return nil, r.handleError("categories", err)
	}
	return categories, nil
}

func (r *Resolver) resolveCategory(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}

	category, err := r.categoryService.GetCategory(p.Context, id)
	if err != nil {
		return nil, r.handleError("category", err)
	}
	return category, nil
}

// resolveUserItems serves the User.items field. Items are visible only to
// their owner, so the field is empty unless the viewed user is the caller.
func (r *Resolver) resolveUserItems(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(model.User)
	if !ok {
		return []model.Item{}, nil
	}

	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	if user.ID != subject {
		return []model.Item{}, nil
	}

	items, err := r.itemService.GetItems(p.Context, subject, model.ItemFilter{})
	if err != nil {
		return nil, r.handleError("User.items", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// resolveItemOwner serves the Item.user field.
func (r *Resolver) resolveItemOwner(p graphql.ResolveParams) (interface{}, error) {
	item, ok := p.Source.(model.Item)
	if !ok {
		return nil, r.handleError("Item.user", apierrors.NewInternal())
	}

	user, err := r.userService.GetUser(p.Context, item.OwnerID)
	if err != nil {
		return nil, r.handleError("Item.user", err)
	}
	return user, nil
}
