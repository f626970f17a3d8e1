package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/mindvault/mindvault-server/internal/model"
)

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	payload, err := r.authService.Register(p.Context,
		argString(p, "name"),
		argString(p, "email"),
		argString(p, "password"))
	if err != nil {
		return nil, r.handleError("register", err)
	}
	return payload, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	payload, err := r.authService.Login(p.Context,
		argString(p, "email"),
		argString(p, "password"))
	if err != nil {
		return nil, r.handleError("login", err)
	}
	return payload, nil
}

func (r *Resolver) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	user, err := r.userService.UpdateProfile(p.Context, subject,
		argOptionalString(p, "name"),
		argOptionalString(p, "email"))
	if err != nil {
		return nil, r.handleError("updateUser", err)
	}
	return user, nil
}

func (r *Resolver) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	if err := r.userService.DeleteAccount(p.Context, subject); err != nil {
		return nil, r.handleError("deleteUser", err)
	}
	return deleteResponse{Message: "User deleted successfully"}, nil
}

func (r *Resolver) resolveAddItem(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	params := model.CreateItemParams{
		Title:       argString(p, "title"),
		Description: argString(p, "description"),
		Type:        argString(p, "type"),
		Tags:        argStringList(p, "tags"),
	}

	item, err := r.itemService.CreateItem(p.Context, subject, params)
	if err != nil {
		return nil, r.handleError("addItem", err)
	}
	return item, nil
}

func (r *Resolver) resolveUpdateItem(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	itemID, err := argUUID(p, "itemId")
	if err != nil {
		return nil, err
	}

	params := model.UpdateItemParams{
		Title:       argOptionalString(p, "title"),
		Description: argOptionalString(p, "description"),
		Type:        argOptionalString(p, "type"),
		Tags:        argOptionalStringList(p, "tags"),
	}

	item, err := r.itemService.UpdateItem(p.Context, subject, itemID, params)
	if err != nil {
		return nil, r.handleError("updateItem", err)
	}
	return item, nil
}

func (r *Resolver) resolveDeleteItem(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.requireIdentity(p.Context)
	if err != nil {
		return nil, err
	}

	itemID, err := argUUID(p, "itemId")
	if err != nil {
		return nil, err
	}

	item, err := r.itemService.DeleteItem(p.Context, subject, itemID)
	if err != nil {
		return nil, r.handleError("deleteItem", err)
	}
	return item, nil
}

func (r *Resolver) resolveAddCategory(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	category, err := r.categoryService.CreateCategory(p.Context,
		argString(p, "title"),
		argOptionalInt(p, "count"))
	if err != nil {
		return nil, r.handleError("addCategory", err)
	}
	return category, nil
}

func (r *Resolver) resolveUpdateCategory(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}

	category, err := r.categoryService.UpdateCategory(p.Context, id,
		argString(p, "title"),
		argOptionalInt(p, "count"))
	if err != nil {
		return nil, r.handleError("updateCategory", err)
	}
	return category, nil
}

func (r *Resolver) resolveDeleteCategory(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p.Context); err != nil {
		return nil, err
	}

	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}

	if err := r.categoryService.DeleteCategory(p.Context, id); err != nil {
		return nil, r.handleError("deleteCategory", err)
	}
	return deleteResponse{Message: "Category deleted successfully"}, nil
}
