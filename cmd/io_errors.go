package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/service"
)

// loadServices builds the service layer or reports why it could not.
func loadServices() (*service.Services, bool) {
	services, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the config file is valid TOML and that WFDASH_* variables are well formed")
		deps.Exit(1)
		return nil, false
	}
	return services, true
}

// handleRequestError reports a failed backend call. what names the data,
// e.g. "today's statistics".
func handleRequestError(what string, err error, services *service.Services) {
	logger.Error("request failed", "what", what, "error", err)

	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to load %s\n", what)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)

	var se *api.StatusError
	var ue *url.Error
	switch {
	case errors.As(err, &se):
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: The backend answered %s\n", se.Status)
	case errors.Is(err, context.Canceled):
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Is the backend running at %s? Set api_base_url in the config file or %s\n",
			services.Config.Get().APIBaseURL, config.EnvAPIURL)
	}
	deps.Exit(1)
}

// handleInvalidFlag reports a flag value that failed validation.
func handleInvalidFlag(flag string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --%s value\n", flag)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}
