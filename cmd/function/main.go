package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/sirupsen/logrus"

	_ "profile-api/function"
	"profile-api/internal/config"
)

func main() {
	// Serve the profile function at "/" so the /api/profile routes resolve
	if os.Getenv("FUNCTION_TARGET") == "" {
		os.Setenv("FUNCTION_TARGET", "Profile")
	}

	port := config.GetEnv("PORT", "8080")
	if err := funcframework.Start(port); err != nil {
		logrus.WithError(err).Fatal("Failed to start function framework")
	}
}
