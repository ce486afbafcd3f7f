// Package function registers the profile API as an HTTP Cloud Function.
package function

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"profile-api/internal/handlers"
	"profile-api/pkg/lambda"
)

var (
	router   *gin.Engine
	routerMu sync.Mutex
)

func init() {
	gin.SetMode(gin.ReleaseMode)
	functions.HTTP("Profile", handleProfile)
}

func handleProfile(w http.ResponseWriter, r *http.Request) {
	engine, err := getRouter(r)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(handlers.MessageResponse{Msg: handlers.MsgOperational})
		return
	}

	engine.ServeHTTP(w, r)
}

// getRouter builds the engine on first use. Failures are retried on the next request.
func getRouter(r *http.Request) (*gin.Engine, error) {
	routerMu.Lock()
	defer routerMu.Unlock()

	if router != nil {
		return router, nil
	}

	container, err := lambda.GetConnectionManager().GetContainer(r.Context())
	if err != nil {
		return nil, err
	}

	router = handlers.NewRouter(&container.Config.HTTP, &handlers.RouterConfig{
		ProfileService: container.ProfileService,
		HealthChecker:  container.Database(),
	})
	return router, nil
}
