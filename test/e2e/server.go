package e2e

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// TestServer manages a test instance of the generation server binary for
// E2E tests.
type TestServer struct {
	cmd        *exec.Cmd
	port       int
	baseURL    string
	logFile    *os.File
	log        *logrus.Logger
	cancelFunc context.CancelFunc
}

// NewTestServer creates a new test server instance.
func NewTestServer() (*TestServer, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	port, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("failed to find available port: %w", err)
	}

	tmpDir := filepath.Join(os.TempDir(), fmt.Sprintf("ironfrontier-e2e-%d", time.Now().UnixNano()))
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	logFile, err := os.Create(filepath.Join(tmpDir, "server.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &TestServer{
		port:    port,
		baseURL: fmt.Sprintf("http://localhost:%d", port),
		logFile: logFile,
		log:     logger,
	}, nil
}

// Start starts the test server.
func (ts *TestServer) Start() error {
	serverBin := filepath.Join(".", "bin", "server")
	if _, err := os.Stat(serverBin); os.IsNotExist(err) {
		ts.log.Info("Building server binary...")
		buildCmd := exec.Command("make", "build")
		buildCmd.Stdout = ts.logFile
		buildCmd.Stderr = ts.logFile
		if err := buildCmd.Run(); err != nil {
			return fmt.Errorf("failed to build server: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	ts.cancelFunc = cancel

	ts.cmd = exec.CommandContext(ctx, serverBin)
	ts.cmd.Env = append(os.Environ(),
		fmt.Sprintf("IRONFRONTIER_PORT=%d", ts.port),
		"IRONFRONTIER_LOG_LEVEL=info",
		"IRONFRONTIER_WORLD_SEED=42",
		"IRONFRONTIER_REGION_COUNT=2",
		"IRONFRONTIER_ENABLE_DEV_MODE=true",
	)
	ts.cmd.Stdout = ts.logFile
	ts.cmd.Stderr = ts.logFile

	ts.cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	ts.log.Infof("Starting test server on port %d", ts.port)

	if err := ts.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	client := NewClient(ts.baseURL)
	if err := client.WaitForHealth(30 * time.Second); err != nil {
		ts.Stop()
		return fmt.Errorf("server did not become healthy: %w", err)
	}

	ts.log.Info("Test server is ready")
	return nil
}

// Stop stops the test server and cleans up resources.
func (ts *TestServer) Stop() error {
	ts.log.Info("Stopping test server...")

	if ts.cancelFunc != nil {
		ts.cancelFunc()
	}

	if ts.cmd != nil && ts.cmd.Process != nil {
		pgid, err := syscall.Getpgid(ts.cmd.Process.Pid)
		if err == nil {
			syscall.Kill(-pgid, syscall.SIGTERM)
		}

		done := make(chan error, 1)
		go func() {
			done <- ts.cmd.Wait()
		}()

		select {
		case <-done:
			ts.log.Info("Server stopped gracefully")
		case <-time.After(5 * time.Second):
			ts.log.Warn("Server did not stop gracefully, forcing kill")
			if pgid, err := syscall.Getpgid(ts.cmd.Process.Pid); err == nil {
				syscall.Kill(-pgid, syscall.SIGKILL)
			}
			ts.cmd.Process.Kill()
		}
	}

	if ts.logFile != nil {
		ts.logFile.Close()
	}

	return nil
}

// BaseURL returns the server's base URL.
func (ts *TestServer) BaseURL() string {
	return ts.baseURL
}

// GetLogContents returns the contents of the server log.
func (ts *TestServer) GetLogContents() (string, error) {
	if ts.logFile == nil {
		return "", fmt.Errorf("log file not available")
	}

	ts.logFile.Sync()
	ts.logFile.Seek(0, 0)

	content, err := io.ReadAll(ts.logFile)
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}

	return string(content), nil
}

// Restart restarts the test server.
func (ts *TestServer) Restart() error {
	ts.log.Info("Restarting test server...")

	if err := ts.Stop(); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	time.Sleep(1 * time.Second)

	if err := ts.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// findAvailablePort finds an available TCP port.
func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port, nil
}
