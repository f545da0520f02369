package runctx

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// System reports the operating system the run executes on.
func System() (map[string]any, error) {
	return map[string]any{"system": runtime.GOOS}, nil
}

// CPUArch reports the CPU architecture.
func CPUArch() (map[string]any, error) {
	return map[string]any{"cpuarch": runtime.GOARCH}, nil
}

// GoVersion reports the Go runtime version the binary was built with.
func GoVersion() (map[string]any, error) {
	return map[string]any{"go_version": runtime.Version()}, nil
}

// Host reports the hostname and logical CPU count.
func Host() (map[string]any, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"host": map[string]any{
			"name":     hostname,
			"num_cpus": runtime.NumCPU(),
		},
	}, nil
}

// GitInfo returns a provider reporting the current commit, latest tag, and
// upstream repository for the given remote. Outside a git work tree it
// contributes zero values rather than failing the run.
func GitInfo(remote string) Provider {
	return func() (map[string]any, error) {
		info := map[string]any{
			"commit":     "",
			"provider":   "",
			"repository": "",
			"tag":        "",
			"dirty":      false,
		}

		git := func(args ...string) (string, bool) {
			out, err := exec.Command("git", args...).Output()
			if err != nil {
				return "", false
			}
			return strings.TrimSpace(string(out)), true
		}

		if _, inTree := git("rev-parse", "--is-inside-work-tree"); !inTree {
			return map[string]any{"git": info}, nil
		}

		if commit, ok := git("rev-parse", "HEAD"); ok {
			info["commit"] = commit
		}
		if tag, ok := git("describe", "--tags", "--abbrev=0"); ok {
			info["tag"] = tag
		}
		if url, ok := git("remote", "get-url", remote); ok {
			provider, repo := splitRemoteURL(url)
			info["provider"] = provider
			info["repository"] = repo
		}
		if status, ok := git("status", "--porcelain"); ok {
			info["dirty"] = status != ""
		}

		return map[string]any{"git": info}, nil
	}
}

// splitRemoteURL extracts the hosting provider and repository name from an
// SSH or HTTPS git remote URL.
func splitRemoteURL(url string) (provider, repository string) {
	var sep string
	if strings.Contains(url, "@") {
		url = strings.TrimPrefix(url, "git@")
		sep = ":"
	} else {
		url = strings.TrimPrefix(url, "https://")
		sep = "/"
	}

	provider, repository, found := strings.Cut(url, sep)
	if !found {
		return "", ""
	}
	return provider, strings.TrimSuffix(repository, ".git")
}

// Builtin resolves a provider by its manifest name. The second return value
// is false for unknown names.
func Builtin(name string) (Provider, bool) {
	switch name {
	case "system":
		return System, true
	case "cpuarch":
		return CPUArch, true
	case "go_version":
		return GoVersion, true
	case "host":
		return Host, true
	case "git":
		return GitInfo("origin"), true
	}
	return nil, false
}
