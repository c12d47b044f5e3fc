package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aqua-delivery/internal/application/auth"
	"github.com/tu-usuario/aqua-delivery/internal/application/dto"
	apporder "github.com/tu-usuario/aqua-delivery/internal/application/order"
	"github.com/tu-usuario/aqua-delivery/internal/application/usecase"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
	"github.com/tu-usuario/aqua-delivery/internal/domain/repository"
	apphttp "github.com/tu-usuario/aqua-delivery/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para tests de la API completa (sin Postgres).
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: map[string]*entity.User{}} }

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIDAndRole(id, role string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok || u.Role != role {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListByRole(role string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

type memOrderRepo struct {
	byID map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{byID: map[string]*entity.Order{}} }

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) ListByCustomer(id string, limit, offset int) ([]*entity.Order, error) {
	return r.listBy(func(o *entity.Order) bool { return o.CustomerID == id }, limit, offset)
}

func (r *memOrderRepo) ListByDistributor(id string, limit, offset int) ([]*entity.Order, error) {
	return r.listBy(func(o *entity.Order) bool { return o.DistributorID == id }, limit, offset)
}

func (r *memOrderRepo) ListByWorker(id string, limit, offset int) ([]*entity.Order, error) {
	return r.listBy(func(o *entity.Order) bool { return o.WorkerID == id }, limit, offset)
}

func (r *memOrderRepo) listBy(match func(*entity.Order) bool, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.byID {
		if match(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo { return &memProductRepo{byID: map[string]*entity.Product{}} }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func paginate[T any](in []*T, limit, offset int) []*T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

// memTxRunner ejecuta el callback directamente sobre los repositorios en memoria
// (no hay transacción real en los tests de handler).
type memTxRunner struct {
	orders *memOrderRepo
	users  *memUserRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.UserRepository) error) error {
	return fn(t.orders, t.users)
}

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de test: app Fiber real con el router completo y repos en memoria.
// ──────────────────────────────────────────────────────────────────────────────

func newTestServer() *fiber.App {
	users := newMemUserRepo()
	orders := newMemOrderRepo()
	products := newMemProductRepo()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		}),
		UserUC:    usecase.NewUserUseCase(users),
		ProductUC: usecase.NewProductUseCase(products),
		OrderUC:   apporder.NewUseCase(&memTxRunner{orders: orders, users: users}, orders, users),
		JWTSecret: testJWTSecret,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON opcional y token opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin registra un usuario vía API y devuelve (userID, token).
func registerAndLogin(t *testing.T, app *fiber.App, name, email, role string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secreto-123",
		Role:     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "registro de %s debe retornar 201", email)
	var user dto.UserResponse
	decode(t, resp, &user)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "secreto-123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe retornar 200", email)
	var login dto.LoginResponse
	decode(t, resp, &login)

	require.Equal(t, role, login.User.Role)
	return user.ID, login.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Flujo feliz completo vía HTTP:
// cliente crea pedido → distribuidor confirma y asigna repartidor →
// repartidor lo pone en tránsito → repartidor entrega.
func TestAPI_CicloDeVidaDelPedido(t *testing.T) {
	app := newTestServer()

	_, customerTok := registerAndLogin(t, app, "Cliente Uno", "cliente@test.local", entity.RoleCustomer)
	distID, distTok := registerAndLogin(t, app, "Agua Pura SA", "distribuidor@test.local", entity.RoleDistributor)
	workerID, workerTok := registerAndLogin(t, app, "Repartidor Uno", "repartidor@test.local", entity.RoleWorker)

	// 1. El cliente crea el pedido.
	resp := doJSON(t, app, http.MethodPost, "/api/orders", customerTok, dto.CreateOrderRequest{
		DistributorID: distID,
		Quantity:      2,
		Notes:         "dejar en portería",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.OrderResponse
	decode(t, resp, &created)
	assert.Equal(t, "pending", created.Status)
	assert.Empty(t, created.WorkerID, "el pedido nace sin repartidor")
	assert.Nil(t, created.DeliveredAt)

	// 2. El distribuidor confirma y asigna repartidor.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/"+created.ID+"/status", distTok, dto.TransitionOrderRequest{
		Status:   "confirmed",
		WorkerID: workerID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmed dto.OrderResponse
	decode(t, resp, &confirmed)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.Equal(t, workerID, confirmed.WorkerID)

	// 3. El repartidor sale a ruta.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/"+created.ID+"/status", workerTok, dto.TransitionOrderRequest{
		Status: "in-transit",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 4. El repartidor entrega.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/"+created.ID+"/status", workerTok, dto.TransitionOrderRequest{
		Status: "delivered",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var delivered dto.OrderResponse
	decode(t, resp, &delivered)
	assert.Equal(t, "delivered", delivered.Status)
	require.NotNil(t, delivered.DeliveredAt, "delivered debe fijar delivered_at")

	// 5. Estado terminal: ni el distribuidor puede cancelarlo ya.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/"+created.ID+"/status", distTok, dto.TransitionOrderRequest{
		Status: "cancelled",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "ORDER_FINALIZED", errBody.Code)

	// 6. El cliente sigue viendo su pedido entregado.
	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+created.ID, customerTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// Las rutas protegidas exigen Bearer Token: sin token → 401.
func TestAPI_RutasProtegidasSinToken(t *testing.T) {
	app := newTestServer()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/workers"},
		{http.MethodPost, "/api/products"},
	} {
		resp := doJSON(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			"%s %s sin token debe retornar 401", tc.method, tc.path)
		resp.Body.Close()
	}
}

// El catálogo se lee sin autenticación; la escritura es solo del distribuidor.
func TestAPI_CatalogoPublicoEscrituraRestringida(t *testing.T) {
	app := newTestServer()

	_, customerTok := registerAndLogin(t, app, "Cliente", "c@test.local", entity.RoleCustomer)
	_, distTok := registerAndLogin(t, app, "Distribuidor", "d@test.local", entity.RoleDistributor)

	// Lectura pública.
	resp := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Cliente no puede crear productos.
	body := map[string]interface{}{
		"name":        "Botellón 20L",
		"description": "Agua purificada",
		"price":       "15.99",
	}
	resp = doJSON(t, app, http.MethodPost, "/api/products", customerTok, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Distribuidor sí.
	resp = doJSON(t, app, http.MethodPost, "/api/products", distTok, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	decode(t, resp, &product)
	assert.Equal(t, "Botellón 20L", product.Name)

	// Y el producto aparece en el listado público.
	resp = doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, product.ID, list.Items[0].ID)
}

// Solo los clientes crean pedidos; solo distribuidor/repartidor transicionan.
func TestAPI_RolesEnRutasDePedidos(t *testing.T) {
	app := newTestServer()

	_, customerTok := registerAndLogin(t, app, "Cliente", "c2@test.local", entity.RoleCustomer)
	distID, distTok := registerAndLogin(t, app, "Distribuidor", "d2@test.local", entity.RoleDistributor)

	// El distribuidor no puede crear pedidos.
	resp := doJSON(t, app, http.MethodPost, "/api/orders", distTok, dto.CreateOrderRequest{
		DistributorID: distID,
		Quantity:      1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// El cliente crea y luego intenta transicionar: el RBAC lo corta en la ruta.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", customerTok, dto.CreateOrderRequest{
		DistributorID: distID,
		Quantity:      1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.OrderResponse
	decode(t, resp, &created)

	resp = doJSON(t, app, http.MethodPut, "/api/orders/"+created.ID+"/status", customerTok, dto.TransitionOrderRequest{
		Status: "cancelled",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el cliente no participa en el ciclo de estados")
	resp.Body.Close()
}

// Un actor ajeno al pedido no puede verlo aunque esté autenticado.
func TestAPI_PedidoInvisibleParaTerceros(t *testing.T) {
	app := newTestServer()

	_, customerTok := registerAndLogin(t, app, "Cliente A", "a@test.local", entity.RoleCustomer)
	_, strangerTok := registerAndLogin(t, app, "Cliente B", "b@test.local", entity.RoleCustomer)
	distID, _ := registerAndLogin(t, app, "Distribuidor", "d3@test.local", entity.RoleDistributor)

	resp := doJSON(t, app, http.MethodPost, "/api/orders", customerTok, dto.CreateOrderRequest{
		DistributorID: distID,
		Quantity:      3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.OrderResponse
	decode(t, resp, &created)

	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+created.ID, strangerTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Y tampoco aparece en su listado.
	resp = doJSON(t, app, http.MethodGet, "/api/orders", strangerTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.OrderListResponse
	decode(t, resp, &list)
	assert.Empty(t, list.Items)
}

// Registro con email ya usado → 409.
func TestAPI_RegistroEmailDuplicado(t *testing.T) {
	app := newTestServer()

	registerAndLogin(t, app, "Original", "dup@test.local", entity.RoleCustomer)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     "Impostor",
		Email:    "DUP@test.local", // el email se normaliza a minúsculas
		Password: "otro-secreto-1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "EMAIL_EXISTS", errBody.Code)
}

// Login con credenciales incorrectas → 401.
func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	app := newTestServer()

	registerAndLogin(t, app, "Cliente", "login@test.local", entity.RoleCustomer)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "login@test.local",
		Password: "password-incorrecto",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "noexiste@test.local",
		Password: "da-igual-123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
