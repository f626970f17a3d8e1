package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindvault/mindvault-server/internal/api/http/authctx"
	"github.com/mindvault/mindvault-server/internal/mocks"
	"github.com/mindvault/mindvault-server/internal/model"
	"github.com/mindvault/mindvault-server/internal/service"
	"github.com/mindvault/mindvault-server/internal/testutil"
	"github.com/mindvault/mindvault-server/internal/token"
)

type testEnv struct {
	schema        gql.Schema
	userStore     *mocks.UserStore
	itemStore     *mocks.ItemStore
	categoryStore *mocks.CategoryStore
	cm            *authctx.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userStore := &mocks.UserStore{}
	itemStore := &mocks.ItemStore{}
	categoryStore := &mocks.CategoryStore{}
	cm := authctx.NewManager()
	log := testutil.MakeNoopLogger()
	tokMan := token.NewJWT("test-secret", time.Hour)

	resolver := NewResolver(
		service.NewAuth(userStore, tokMan, log),
		service.NewUser(userStore, log),
		service.NewItem(itemStore, userStore, log),
		service.NewCategory(categoryStore, log),
		cm,
		log,
	)

	schema, err := NewSchema(resolver)
	require.NoError(t, err)

	return &testEnv{
		schema:        schema,
		userStore:     userStore,
		itemStore:     itemStore,
		categoryStore: categoryStore,
		cm:            cm,
	}
}

func (e *testEnv) exec(query string, vars map[string]interface{}, ctx context.Context) *gql.Result {
	return gql.Do(gql.Params{
		Schema:         e.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func (e *testEnv) identified(subject uuid.UUID) context.Context {
	return e.cm.SetIdentity(context.Background(), model.Identified(subject))
}

func (e *testEnv) anonymous() context.Context {
	return e.cm.SetIdentity(context.Background(), model.Anonymous())
}

func errorCode(t *testing.T, result *gql.Result) string {
	t.Helper()
	require.NotEmpty(t, result.Errors)
	code, _ := result.Errors[0].Extensions["code"].(string)
	return code
}

func TestSchema_Hello_Anonymous(t *testing.T) {
	e := newTestEnv(t)

	result := e.exec(`query hello { hello }`, nil, e.anonymous())

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "Hello world!", data["hello"])
}

func TestSchema_Register(t *testing.T) {
	e := newTestEnv(t)

	e.userStore.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{}, model.ErrNotFound)
	e.userStore.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, u model.User) model.User { return u }, nil)

	result := e.exec(`mutation register {
		register(name: "Ann", email: "ann@example.com", password: "password123") {
			token
			user { name email }
		}
	}`, nil, e.anonymous())

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	payload := data["register"].(map[string]interface{})
	assert.NotEmpty(t, payload["token"])
	user := payload["user"].(map[string]interface{})
	assert.Equal(t, "Ann", user["name"])
	assert.Equal(t, "ann@example.com", user["email"])
}

func TestSchema_Register_DuplicateEmail(t *testing.T) {
	e := newTestEnv(t)

	e.userStore.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{ID: uuid.New()}, nil)

	result := e.exec(`mutation register {
		register(name: "Ann", email: "ann@example.com", password: "password123") { token }
	}`, nil, e.anonymous())

	assert.Equal(t, "USER_ALREADY_EXISTS", errorCode(t, result))
}

func TestSchema_Login_InvalidCredentials(t *testing.T) {
	e := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	e.userStore.On("GetByEmail", mock.Anything, "ann@example.com").Return(model.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
	}, nil)

	result := e.exec(`mutation login {
		login(email: "ann@example.com", password: "wrong-password") { token }
	}`, nil, e.anonymous())

	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, result))
}

func TestSchema_Items_RequiresIdentity(t *testing.T) {
	e := newTestEnv(t)

	result := e.exec(`query items { items { id title } }`, nil, e.anonymous())

	assert.Equal(t, "AUTHENTICATION_REQUIRED", errorCode(t, result))
}

func TestSchema_Items_ScopedToSubject(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()

	e.itemStore.On("ListByOwner", mock.Anything, subject, model.ItemFilter{Type: "article"}).Return([]model.Item{
		{ID: uuid.New(), OwnerID: subject, Title: "Go Concurrency Patterns", Type: "article", Tags: []string{"go"}},
	}, nil)

	result := e.exec(`query items {
		items(type: "article") { title type tags }
	}`, nil, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Go Concurrency Patterns", item["title"])
}

func TestSchema_Item_OwnerField(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	itemID := uuid.New()

	e.itemStore.On("GetByID", mock.Anything, itemID).Return(model.Item{
		ID:      itemID,
		OwnerID: subject,
		Title:   "Go Concurrency Patterns",
	}, nil)
	e.userStore.On("GetByID", mock.Anything, subject).Return(model.User{
		ID:    subject,
		Name:  "Ann",
		Email: "ann@example.com",
	}, nil)

	result := e.exec(`query item($id: ID!) {
		item(id: $id) { title user { name } }
	}`, map[string]interface{}{"id": itemID.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	item := data["item"].(map[string]interface{})
	owner := item["user"].(map[string]interface{})
	assert.Equal(t, "Ann", owner["name"])
}

func TestSchema_ItemsByUser_IgnoresForeignID(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	foreign := uuid.New()

	e.itemStore.On("ListByOwner", mock.Anything, subject, model.ItemFilter{}).Return([]model.Item{
		{ID: uuid.New(), OwnerID: subject, Title: "Mine"},
	}, nil)

	result := e.exec(`query itemsByUser($userId: ID!) {
		itemsByUser(userId: $userId) { title }
	}`, map[string]interface{}{"userId": foreign.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	items := data["itemsByUser"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Mine", items[0].(map[string]interface{})["title"])

	e.itemStore.AssertNotCalled(t, "ListByOwner", mock.Anything, foreign, mock.Anything)
}

func TestSchema_UserItems_OnlyForOwnProfile(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	other := uuid.New()

	e.userStore.On("GetByID", mock.Anything, other).Return(model.User{
		ID:    other,
		Name:  "Bob",
		Email: "bob@example.com",
	}, nil)

	result := e.exec(`query user($id: ID!) {
		user(id: $id) { name items { id } }
	}`, map[string]interface{}{"id": other.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Bob", user["name"])
	assert.Empty(t, user["items"])

	e.itemStore.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchema_AddItem(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()

	e.userStore.On("GetByID", mock.Anything, subject).Return(model.User{ID: subject}, nil)
	e.itemStore.On("Create", mock.Anything, mock.MatchedBy(func(i model.Item) bool {
		return i.OwnerID == subject && i.Title == "Go Concurrency Patterns"
	})).Return(func(_ context.Context, i model.Item) model.Item { return i }, nil)

	result := e.exec(`mutation addItem {
		addItem(title: "Go Concurrency Patterns", description: "Pipelines talk", type: "article", tags: ["go"]) {
			id
			title
		}
	}`, nil, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	item := data["addItem"].(map[string]interface{})
	assert.Equal(t, "Go Concurrency Patterns", item["title"])
	assert.NotEmpty(t, item["id"])
}

func TestSchema_UpdateItem_Forbidden(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	itemID := uuid.New()

	e.itemStore.On("GetByID", mock.Anything, itemID).Return(model.Item{
		ID:      itemID,
		OwnerID: uuid.New(),
	}, nil)

	result := e.exec(`mutation updateItem($itemId: ID!) {
		updateItem(itemId: $itemId, title: "Hijacked") { id }
	}`, map[string]interface{}{"itemId": itemID.String()}, e.identified(subject))

	assert.Equal(t, "FORBIDDEN", errorCode(t, result))
}

func TestSchema_DeleteItem_ReturnsDeleted(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	itemID := uuid.New()

	e.itemStore.On("GetByID", mock.Anything, itemID).Return(model.Item{
		ID:      itemID,
		OwnerID: subject,
		Title:   "To delete",
	}, nil)
	e.itemStore.On("Delete", mock.Anything, itemID).Return(nil)

	result := e.exec(`mutation deleteItem($itemId: ID!) {
		deleteItem(itemId: $itemId) { id title }
	}`, map[string]interface{}{"itemId": itemID.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	item := data["deleteItem"].(map[string]interface{})
	assert.Equal(t, "To delete", item["title"])
}

func TestSchema_DeleteUser_Message(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()

	e.userStore.On("DeleteWithItems", mock.Anything, subject).Return(nil)

	result := e.exec(`mutation deleteUser { deleteUser { message } }`, nil, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "User deleted successfully",
		data["deleteUser"].(map[string]interface{})["message"])
}

func TestSchema_Categories_AnyIdentityMayMutate(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	categoryID := uuid.New()

	e.categoryStore.On("GetByID", mock.Anything, categoryID).Return(model.Category{
		ID:    categoryID,
		Title: "Articles",
		Count: 3,
	}, nil)
	e.categoryStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Title == "Long Reads" && c.Count == 3
	})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil)

	result := e.exec(`mutation updateCategory($id: ID!) {
		updateCategory(id: $id, title: "Long Reads") { title count }
	}`, map[string]interface{}{"id": categoryID.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	category := data["updateCategory"].(map[string]interface{})
	assert.Equal(t, "Long Reads", category["title"])
}

func TestSchema_DeleteCategory_Message(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()
	categoryID := uuid.New()

	e.categoryStore.On("Delete", mock.Anything, categoryID).Return(nil)

	result := e.exec(`mutation deleteCategory($id: ID!) {
		deleteCategory(id: $id) { message }
	}`, map[string]interface{}{"id": categoryID.String()}, e.identified(subject))

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	assert.Equal(t, "Category deleted successfully",
		data["deleteCategory"].(map[string]interface{})["message"])
}

func TestSchema_InvalidID_ValidationError(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()

	result := e.exec(`query item($id: ID!) {
		item(id: $id) { id }
	}`, map[string]interface{}{"id": "not-a-uuid"}, e.identified(subject))

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, result))
}

func TestSchema_InternalErrorNotLeaked(t *testing.T) {
	e := newTestEnv(t)
	subject := uuid.New()

	e.itemStore.On("ListByOwner", mock.Anything, subject, model.ItemFilter{}).Return(nil, assert.AnError)

	result := e.exec(`query items { items { id } }`, nil, e.identified(subject))

	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "INTERNAL", errorCode(t, result))
	assert.Equal(t, "internal server error", result.Errors[0].Message)
}
