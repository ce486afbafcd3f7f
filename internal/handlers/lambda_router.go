package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"profile-api/internal/services"
	"profile-api/pkg/lambda"
)

const profilePath = "/api/profile"

// LambdaRouter dispatches transport-neutral requests by method and path
type LambdaRouter struct {
	profiles *ProfileHandler
	health   *HealthHandler
}

// NewLambdaRouter creates a router over the profile and health handlers
func NewLambdaRouter(profileService services.ProfileService, checker HealthChecker) *LambdaRouter {
	return &LambdaRouter{
		profiles: NewProfileHandler(profileService),
		health:   NewHealthHandler(checker),
	}
}

// Route handles one request. Unexpected panics become a 500 response.
func (r *LambdaRouter) Route(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithFields(logrus.Fields{
				"method": req.Method,
				"path":   req.Path,
				"panic":  rec,
			}).Error("Recovered from panic")
			resp, err = lambda.JSON(http.StatusInternalServerError, MessageResponse{Msg: MsgUnexpected})
		}
	}()

	path := strings.TrimSuffix(req.Path, "/")
	id := req.PathParams["id"]

	switch {
	case path == "/health":
		if req.Method != http.MethodGet {
			return methodNotAllowed()
		}
		return r.health.HandleHealth(ctx, req)

	case path == profilePath && id == "":
		switch req.Method {
		case http.MethodGet:
			return r.profiles.HandleList(ctx, req)
		case http.MethodPost:
			return r.profiles.HandleCreate(ctx, req)
		case http.MethodPut:
			return r.profiles.HandleUpdate(ctx, req)
		}
		return methodNotAllowed()

	case strings.HasPrefix(path, profilePath+"/"):
		if id == "" {
			id = strings.TrimPrefix(path, profilePath+"/")
			if strings.Contains(id, "/") {
				return notFound()
			}
		}
		req = withPathParam(req, "id", id)

		switch req.Method {
		case http.MethodGet:
			return r.profiles.HandleGet(ctx, req)
		case http.MethodPut:
			return r.profiles.HandleUpdate(ctx, req)
		case http.MethodDelete:
			return r.profiles.HandleDelete(ctx, req)
		}
		return methodNotAllowed()
	}

	return notFound()
}

// withPathParam returns a shallow copy of req with one extra path parameter
func withPathParam(req *lambda.Request, key, value string) *lambda.Request {
	params := make(map[string]string, len(req.PathParams)+1)
	for k, v := range req.PathParams {
		params[k] = v
	}
	params[key] = value

	out := *req
	out.PathParams = params
	return &out
}

func notFound() (*lambda.Response, error) {
	return lambda.JSON(http.StatusNotFound, MessageResponse{Msg: MsgRouteNotFound})
}

func methodNotAllowed() (*lambda.Response, error) {
	return lambda.JSON(http.StatusMethodNotAllowed, MessageResponse{Msg: MsgMethodNotAllowed})
}
