package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "netbind"

// FindConfigPath returns NETBIND_CONFIG or the first existing netbind.yml
// in the usual places. When none exists a stub is created in the working
// directory.
func FindConfigPath() string {
	if p := os.Getenv("NETBIND_CONFIG"); p != "" {
		return p
	}

	candidates := configCandidates()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	createPath := "./netbind.yml"
	if err := WriteConfig(createPath, Defaults()); err == nil {
		return createPath
	}
	return candidates[0]
}

func configCandidates() []string {
	names := []string{"netbind.yml", "netbind.yaml"}
	var dirs []string

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			dirs = append(dirs, filepath.Join(appdata, appDir))
		}
		if pd := os.Getenv("PROGRAMDATA"); pd != "" {
			dirs = append(dirs, filepath.Join(pd, appDir))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, appDir))
		}
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, appDir))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".config", appDir), filepath.Join(home, "."+appDir))
		}
		dirs = append(dirs, filepath.Join("/etc", appDir))
	}

	out := make([]string, 0, len(names)*(len(dirs)+1))
	for _, n := range names {
		out = append(out, "./"+n)
	}
	for _, d := range dirs {
		for _, n := range names {
			out = append(out, filepath.Join(d, n))
		}
	}
	return out
}
