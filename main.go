package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"go.opentelemetry.io/otel"

	"github.com/jazzyframework/jazzy/config"
	"github.com/jazzyframework/jazzy/http"
	"github.com/jazzyframework/jazzy/json"
	"github.com/jazzyframework/jazzy/metrics"
	"github.com/jazzyframework/jazzy/telemetry"
	"github.com/jazzyframework/jazzy/validation"
)

// Demo application: a small user/product API exercising routing, path
// and query parameters, validation rule sets and the response builders.

type userCreateRules struct{}

func (userCreateRules) Define(v *validation.Validator) {
	v.Field("name").Required().MinLength(3).MaxLength(50).
		Field("email").Required().Email().
		Field("age").Numeric().Min(18)
}

type productCreateRules struct{}

func (productCreateRules) Define(v *validation.Validator) {
	v.Field("title").Required().MinLength(2).
		Field("price").Required().Numeric().Min(0).
		Field("category").In("books", "games", "music")
	v.WhenPresent("url", func() {
		v.Field("url").URL()
	})
}

func listUsers(req *http.Request) any {
	limit := req.QueryInt("limit", 10)
	return json.New().
		Set("limit", limit).
		Set("users", json.Array())
}

func getUser(req *http.Request) any {
	return json.New().
		Set("id", req.PathParam("id")).
		Set("name", "John").
		Set("email", "john@example.com")
}

func createUser(req *http.Request) any {
	if result := req.Validate(userCreateRules{}); result.Failed() {
		return result
	}

	fields, err := req.ParseJSON()
	if err != nil {
		return err
	}
	return http.SuccessData("User created", map[string]any{
		"name":  fields["name"],
		"email": fields["email"],
	})
}

func deleteUser(req *http.Request) any {
	return http.Success("User deleted: " + req.PathParam("id"))
}

func createProduct(req *http.Request) any {
	return req.Validate(productCreateRules{})
}

func run(ctx context.Context) error {
	cfg := config.Load()

	m := metrics.New()
	if cfg.EnableTelemetry {
		shutdown, err := telemetry.Setup(ctx, "jazzy-demo")
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		if err := m.Instrument(otel.Meter("jazzy-demo")); err != nil {
			return err
		}
	}

	router := http.NewRouter()
	router.GET("/users", "listUsers", listUsers)
	router.GET("/users/{id}", "getUser", getUser)
	router.POST("/users", "createUser", createUser)
	router.DELETE("/users/{id}", "deleteUser", deleteUser)
	router.POST("/products", "createProduct", createProduct)

	server := http.NewServer(cfg, router, m)
	return server.ListenAndServe(ctx, cfg.Port)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalln(err)
	}
}
