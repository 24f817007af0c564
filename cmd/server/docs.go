package main

// @title Favorites Service API
// @version 1.0
// @description CRUD backend for per-customer product favorites over an external catalog, with read-through caching (Prometheus, Jaeger, Grafana)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Customers
// @tag.description Customer account endpoints

// @tag.name Favorites
// @tag.description Favorites management endpoints

// @tag.name Catalog
// @tag.description External product catalog proxy endpoints

// @tag.name Health
// @tag.description Health check endpoints
