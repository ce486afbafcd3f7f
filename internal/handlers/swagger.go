package handlers

// @title Profile API
// @version 1.0
// @description CRUD over person profiles with field validation and uniform error responses

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name profiles
// @tag.description Profile management operations

// @tag.name health
// @tag.description Service health
