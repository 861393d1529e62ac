package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crmapi/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	DB       *sql.DB
	Gatherer prometheus.Gatherer

	Auth      service.AuthService
	Customers service.CustomerService
	Geo       service.GeoService
	Addresses service.AddressService
	Reports   service.ReportService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything under /api except /api/auth/{register,login,refresh} requires a bearer access token.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(deps.Auth))
	authGroup.Post("/login", Login(deps.Auth))
	authGroup.Post("/refresh", Refresh(deps.Auth))

	requireAuth := RequireAuth(deps.Auth)
	authGroup.Post("/logout", requireAuth, Logout(deps.Auth))
	authGroup.Get("/me", requireAuth, Me())

	// Static segments are registered before :id so they are not parsed as ids.
	customers := api.Group("/customers", requireAuth)
	customers.Get("/", ListCustomers(deps.Customers))
	customers.Post("/", CreateCustomer(deps.Customers))
	customers.Get("/dashboard", CustomerDashboard(deps.Customers))
	customers.Get("/export", ExportCustomers(deps.Reports))
	customers.Get("/:id", GetCustomer(deps.Customers))
	customers.Put("/:id", UpdateCustomer(deps.Customers))
	customers.Delete("/:id", DeleteCustomer(deps.Customers))

	countries := api.Group("/countries", requireAuth)
	countries.Get("/", ListCountries(deps.Geo))
	countries.Post("/", CreateCountry(deps.Geo))
	countries.Get("/:id", GetCountry(deps.Geo))
	countries.Put("/:id", UpdateCountry(deps.Geo))
	countries.Delete("/:id", DeleteCountry(deps.Geo))

	states := api.Group("/states", requireAuth)
	states.Get("/", ListStates(deps.Geo))
	states.Post("/", CreateState(deps.Geo))
	states.Get("/by_country", StatesByCountry(deps.Geo))
	states.Get("/:id", GetState(deps.Geo))
	states.Put("/:id", UpdateState(deps.Geo))
	states.Delete("/:id", DeleteState(deps.Geo))

	cities := api.Group("/cities", requireAuth)
	cities.Get("/", ListCities(deps.Geo))
	cities.Post("/", CreateCity(deps.Geo))
	cities.Get("/by_state", CitiesByState(deps.Geo))
	cities.Get("/:id", GetCity(deps.Geo))
	cities.Put("/:id", UpdateCity(deps.Geo))
	cities.Delete("/:id", DeleteCity(deps.Geo))

	addresses := api.Group("/addresses", requireAuth)
	addresses.Get("/", ListAddresses(deps.Addresses))
	addresses.Post("/", CreateAddress(deps.Addresses))
	addresses.Get("/:id", GetAddress(deps.Addresses))
	addresses.Put("/:id", UpdateAddress(deps.Addresses))
	addresses.Delete("/:id", DeleteAddress(deps.Addresses))
}
