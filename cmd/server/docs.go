package main

// @title Spizarka API
// @version 1.0
// @description Household inventory tracker with a natural-language command pipeline

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token issued by the identity provider, sent as "Bearer <token>".

// @tag.name Command
// @tag.description Natural-language command processing

// @tag.name Inventory
// @tag.description Container, shelf and item management

// @tag.name Health
// @tag.description Health check endpoints
