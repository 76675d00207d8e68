package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates the name corpus and config files for the bill binaries.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver anchored at the running executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	configDir := getConfigDir(homeDir)

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      configDir,
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		execPath, execDir, configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "bill")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "bill")
		}
		return filepath.Join(homeDir, ".config", "bill")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "bill")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "bill")
	default:
		return filepath.Join(homeDir, ".bill")
	}
}

// ResolveCorpusPath picks where the name corpus lives. An absolute path is
// taken as given. A relative path is tried against the working directory,
// the executable directory and the config directory; the first existing
// file wins. When none exists yet, the config directory location is
// returned so the store can create the file there.
func (pr *PathResolver) ResolveCorpusPath(userSpecifiedPath string) string {
	if filepath.IsAbs(userSpecifiedPath) {
		return userSpecifiedPath
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userSpecifiedPath),
		filepath.Join(pr.configDir, userSpecifiedPath),
	)

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found corpus file: %s", path)
			return path
		}
		log.Debugf("Corpus candidate not present: %s", path)
	}

	return filepath.Join(pr.configDir, userSpecifiedPath)
}

// GetConfigPath returns the full path for a config file.
// It prefers the platform config dir and falls back to writable locations.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".bill"),
		filepath.Join(os.TempDir(), "bill"),
		pr.executableDir,
	}

	for _, dir := range fallbackDirs {
		if pr.ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureWritableDir creates the directory if needed and tests writability
func (pr *PathResolver) ensureWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}

// ConfigDir returns the resolved config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// ExecutableDir returns the directory containing the executable
func (pr *PathResolver) ExecutableDir() string {
	return pr.executableDir
}
