package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"floorplan/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	knownRoles   = []string{constant.RoleAdmin, constant.RoleStaff}
	knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

// Permission describes one chi route pattern; Permissions lists the roles allowed on it.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
	APIKey      bool     `json:"api_key"`
}

// Allows reports whether role may call the route. An empty role list admits
// every authenticated user.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func (r *PermissionData) validate() error {
	seen := make(map[string]struct{}, len(r.Endpoints))

	var errs []error

	for _, endpoint := range r.Endpoints {
		key := strings.ToUpper(endpoint.Method) + " " + endpoint.Path

		if endpoint.Path == constant.Empty || endpoint.Method == constant.Empty {
			errs = append(errs, fmt.Errorf("endpoint %q needs both path and method", key))
		}

		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("endpoint %q declared twice", key))
		}

		seen[key] = struct{}{}

		if !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) {
			errs = append(errs, fmt.Errorf("endpoint %q has an unsupported method", key))
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				errs = append(errs, fmt.Errorf("endpoint %q grants unknown role %q", key, role))
			}
		}
	}

	return errors.Join(errs...)
}

// Parse decodes and validates a permission table.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.validate(); err != nil {
		return nil, fmt.Errorf("invalid permissions: %w", err)
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
