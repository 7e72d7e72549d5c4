package helper

import (
	"os"
	"path/filepath"
)

// GetCfgPath resolves the apiserver's --conf argument. An absolute path
// wins outright; a bare filename is searched in the working directory,
// then ./configs, then /etc/reobserve, so a local apiserver.yaml
// shadows the packaged one.
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}

	if filepath.IsAbs(filename) {
		return filename
	}

	if found := searchWorkingDir(filename); found != "" {
		return found
	}

	return filepath.Join("/etc/reobserve", filename)
}

// searchWorkingDir checks ./{filename} and ./configs/{filename},
// returning the first that exists as an absolute path.
func searchWorkingDir(filename string) string {
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return ""
	}

	for _, candidate := range []string{
		filepath.Join(cwd, filename),
		filepath.Join(cwd, "configs", filename),
	} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			return abs
		}
	}
	return ""
}
