package erpserver

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
)

// DefaultBasePath prefixes every business route.
const DefaultBasePath = "/api"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Permission is demanded from the caller when authentication is enforced. Empty means public.
	Permission userdomain.Permission
}

// ApiHandleFunctions groups the handlers of every resource.
type ApiHandleFunctions struct {
	AuthAPI      AuthAPI
	CustomerAPI  CustomerAPI
	InvoiceAPI   InvoiceAPI
	LeadAPI      LeadAPI
	ProductAPI   ProductAPI
	AnalyticsAPI AnalyticsAPI
	SeedAPI      SeedAPI
}

type routerOptions struct {
	basePath      string
	authenticator Authenticator
}

// RouterOption tunes NewRouter.
type RouterOption func(*routerOptions)

// WithBasePath mounts the business routes under path instead of DefaultBasePath.
func WithBasePath(path string) RouterOption {
	return func(o *routerOptions) {
		o.basePath = path
	}
}

// WithAuthentication enforces route permissions through authenticator.
func WithAuthentication(authenticator Authenticator) RouterOption {
	return func(o *routerOptions) {
		o.authenticator = authenticator
	}
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, opts...)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	options := routerOptions{basePath: DefaultBasePath}
	for _, opt := range opts {
		opt(&options)
	}
	registerJSONFieldNames()

	group := router.Group(normalizeBasePath(options.basePath))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{}
		if options.authenticator != nil && route.Permission != "" {
			handlers = append(handlers, RequirePermission(options.authenticator, route.Permission))
		}
		handlers = append(handlers, route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			group.GET(route.Pattern, handlers...)
		case http.MethodPost:
			group.POST(route.Pattern, handlers...)
		case http.MethodPut:
			group.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			group.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			group.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

// DefaultHandleFunc is the handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func normalizeBasePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	return "/" + strings.Trim(path, "/")
}

var registerFieldNamesOnce sync.Once

// registerJSONFieldNames makes validator report JSON field names instead of Go ones.
func registerJSONFieldNames() {
	registerFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Register",
			http.MethodPost,
			"/auth/register",
			handleFunctions.AuthAPI.Register,
			"",
		},
		{
			"Login",
			http.MethodPost,
			"/auth/login",
			handleFunctions.AuthAPI.Login,
			"",
		},
		{
			"Logout",
			http.MethodPost,
			"/auth/logout",
			handleFunctions.AuthAPI.Logout,
			"",
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/customers",
			handleFunctions.CustomerAPI.ListCustomers,
			userdomain.PermReadAll,
		},
		{
			"CreateCustomer",
			http.MethodPost,
			"/customers",
			handleFunctions.CustomerAPI.CreateCustomer,
			userdomain.PermWriteCRM,
		},
		{
			"ListInvoices",
			http.MethodGet,
			"/invoices",
			handleFunctions.InvoiceAPI.ListInvoices,
			userdomain.PermReadAll,
		},
		{
			"CreateInvoice",
			http.MethodPost,
			"/invoices",
			handleFunctions.InvoiceAPI.CreateInvoice,
			userdomain.PermWriteFinance,
		},
		{
			"ListLeads",
			http.MethodGet,
			"/leads",
			handleFunctions.LeadAPI.ListLeads,
			userdomain.PermReadAll,
		},
		{
			"CreateLead",
			http.MethodPost,
			"/leads",
			handleFunctions.LeadAPI.CreateLead,
			userdomain.PermWriteCRM,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/products",
			handleFunctions.ProductAPI.ListProducts,
			userdomain.PermReadAll,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/products",
			handleFunctions.ProductAPI.CreateProduct,
			userdomain.PermWriteInventory,
		},
		{
			"GetDashboard",
			http.MethodGet,
			"/analytics/dashboard",
			handleFunctions.AnalyticsAPI.GetDashboard,
			"",
		},
		{
			"Seed",
			http.MethodPost,
			"/seed",
			handleFunctions.SeedAPI.Seed,
			"",
		},
	}
}
