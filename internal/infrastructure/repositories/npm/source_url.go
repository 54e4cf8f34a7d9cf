package npm

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoSourceURL = errors.New("package declares no repository or homepage")

// repositoryField is the object form of the package.json "repository" field.
type repositoryField struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Directory string `json:"directory"`
}

var hostShorthands = map[string]string{ //nolint:gochecknoglobals // lookup table
	"github:":    "https://github.com/",
	"gitlab:":    "https://gitlab.com/",
	"bitbucket:": "https://bitbucket.org/",
	"gist:":      "https://gist.github.com/",
}

// sourceURLOf turns the repository field (string or object) into a browsable
// https URL, falling back to the homepage.
func sourceURLOf(doc *packageDocument) (string, error) {
	var repo repositoryField
	if len(doc.Repository) > 0 {
		var shorthand string
		if err := json.Unmarshal(doc.Repository, &shorthand); err == nil {
			repo.URL = shorthand
		} else {
			_ = json.Unmarshal(doc.Repository, &repo)
		}
	}

	if normalized := normalizeRepositoryURL(repo.URL); normalized != "" {
		if repo.Directory != "" && strings.HasPrefix(normalized, "https://github.com/") {
			normalized += "/tree/HEAD/" + strings.Trim(repo.Directory, "/")
		}
		return normalized, nil
	}

	if homepage := strings.TrimSpace(doc.Homepage); homepage != "" {
		return homepage, nil
	}
	return "", errNoSourceURL
}

func normalizeRepositoryURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	for prefix, base := range hostShorthands {
		if strings.HasPrefix(value, prefix) {
			return strings.TrimSuffix(base+strings.TrimPrefix(value, prefix), ".git")
		}
	}

	value = strings.TrimPrefix(value, "git+")
	switch {
	case strings.HasPrefix(value, "git://"):
		value = "https://" + strings.TrimPrefix(value, "git://")
	case strings.HasPrefix(value, "ssh://"):
		value = "https://" + strings.TrimPrefix(strings.TrimPrefix(value, "ssh://"), "git@")
	case strings.HasPrefix(value, "git@"):
		host, path, found := strings.Cut(strings.TrimPrefix(value, "git@"), ":")
		if !found {
			return ""
		}
		value = "https://" + host + "/" + path
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
	default:
		// "user/repo" shorthand defaults to GitHub
		if strings.Count(value, "/") == 1 && !strings.Contains(value, ":") {
			value = "https://github.com/" + value
		} else {
			return ""
		}
	}

	return strings.TrimSuffix(strings.TrimSuffix(value, "/"), ".git")
}
