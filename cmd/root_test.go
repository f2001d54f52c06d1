package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/osutil"
	"github.com/xolan/wfdash/internal/service"
)

// tempPathProvider roots config and home lookups in a test directory.
type tempPathProvider struct {
	dir string
}

func (p tempPathProvider) UserConfigDir() (string, error) {
	return filepath.Join(p.dir, "config"), nil
}

func (p tempPathProvider) UserHomeDir() (string, error) {
	return filepath.Join(p.dir, "home"), nil
}

func (p tempPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// testEnv is a fake backend plus captured command output.
type testEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	services *service.Services
	client   *api.Client
	dir      string
}

// withConfig rebuilds the services around cfg, keeping the fake backend.
func (e *testEnv) withConfig(cfg config.Config) {
	e.services = service.NewServicesWithAPI(e.client, filepath.Join(e.dir, "config.toml"), cfg)
}

// setupTest starts a gin backend with the given routes and installs Deps
// whose services talk to it.
func setupTest(t *testing.T, register func(r *gin.Engine)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	if register != nil {
		register(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	osutil.SetProvider(tempPathProvider{dir: dir})
	t.Cleanup(osutil.ResetProvider)

	cfg := config.DefaultConfig()
	cfg.APIBaseURL = srv.URL
	cfg.DownloadDir = filepath.Join(dir, "downloads")
	client := api.NewClient(srv.URL, api.WithHTTPClient(srv.Client()))

	env := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		exitCode: -1,
		client:   client,
		dir:      dir,
	}
	env.withConfig(cfg)

	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Exit:   func(code int) { env.exitCode = code },
		Services: func() (*service.Services, error) {
			return env.services, nil
		},
	})
	t.Cleanup(ResetDeps)
	return env
}

func TestLoadServices_Error(t *testing.T) {
	env := setupTest(t, nil)
	deps.Services = func() (*service.Services, error) {
		return nil, errors.New("invalid refresh_interval \"soon\"")
	}

	services, ok := loadServices()
	if ok || services != nil {
		t.Fatal("expected loadServices to fail")
	}
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	errOutput := env.stderr.String()
	for _, want := range []string{"Error: Failed to load configuration", "Details: invalid refresh_interval", "Hint:"} {
		if !strings.Contains(errOutput, want) {
			t.Errorf("expected %q in stderr, got: %s", want, errOutput)
		}
	}
}

func TestHandleRequestError_Hints(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantHint string
	}{
		{"server error", http.StatusInternalServerError, "Hint: The backend answered 500"},
		{"not found", http.StatusNotFound, "Hint: The backend answered 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t, func(r *gin.Engine) {
				r.GET("/api/employee/info", func(c *gin.Context) {
					c.JSON(tt.status, gin.H{"detail": "boom"})
				})
			})

			showEmployee(t.Context())

			if env.exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", env.exitCode)
			}
			if !strings.Contains(env.stderr.String(), "Error: Failed to load employee info") {
				t.Errorf("missing error line: %s", env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), tt.wantHint) {
				t.Errorf("expected %q, got: %s", tt.wantHint, env.stderr.String())
			}
		})
	}
}

func TestHandleRequestError_BackendDown(t *testing.T) {
	env := setupTest(t, nil)

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	cfg := config.DefaultConfig()
	cfg.APIBaseURL = srv.URL
	env.services = service.NewServicesWithAPI(api.NewClient(srv.URL), filepath.Join(env.dir, "config.toml"), cfg)

	showToday(t.Context())

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Is the backend running at "+srv.URL) {
		t.Errorf("expected backend hint, got: %s", env.stderr.String())
	}
}

func TestWhoami(t *testing.T) {
	env := setupTest(t, func(r *gin.Engine) {
		r.GET("/api/employee/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"employee_name": "Ada Lovelace",
				"employee_id":   1042,
				"designation":   "Engineer",
				"email":         "ada@example.com",
			})
		})
	})

	showEmployee(t.Context())

	out := env.stdout.String()
	for _, want := range []string{"Ada Lovelace", "1042", "Engineer", "ada@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, "Department:") {
		t.Errorf("empty department should be omitted, got: %s", out)
	}
	if env.exitCode != -1 {
		t.Errorf("unexpected exit code %d", env.exitCode)
	}
}

func TestInitLogging_DebugLevel(t *testing.T) {
	tests := []struct {
		name string
		flag bool
		file string
		env  string
		want log.Level
	}{
		{"defaults", false, "", "", log.InfoLevel},
		{"env false", false, "", "false", log.InfoLevel},
		{"env true", false, "", "true", log.DebugLevel},
		{"config file", false, "debug = true", "", log.DebugLevel},
		{"env false overrides config", false, "debug = true", "false", log.InfoLevel},
		{"flag", true, "", "false", log.DebugLevel},
		{"invalid env", false, "", "sometimes", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			osutil.SetProvider(tempPathProvider{dir: dir})
			t.Cleanup(osutil.ResetProvider)
			t.Setenv(config.EnvAPIURL, "")
			t.Setenv(config.EnvTheme, "")
			t.Setenv(config.EnvDebug, tt.env)

			if tt.file != "" {
				path, err := config.GetConfigPath()
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte(tt.file), 0644); err != nil {
					t.Fatal(err)
				}
			}

			cmd := &cobra.Command{Use: "wfdash"}
			cmd.Flags().Bool("debug", tt.flag, "")

			initLogging(cmd)
			t.Cleanup(logger.Close)

			if logger.Logger == nil {
				t.Fatal("logger was not initialized")
			}
			if got := logger.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRootCommand_Registered(t *testing.T) {
	want := []string{"tui", "today", "timesheet", "activity", "screenshots", "summary", "whoami", "config", "completion"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-01-05")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("Version = %q", rootCmd.Version)
	}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"wfdash version 1.2.3", "commit: abc123", "built: 2024-01-05"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in version output, got: %s", want, buf.String())
		}
	}
}
