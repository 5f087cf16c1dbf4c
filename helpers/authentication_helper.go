package helpers

import (
	"net/http"
	"strings"
)

const (
	Oauth2IdentityType = "oauth2"
	AdminEscrowRole    = "/admin/escrow"

	ghIdentity        = "GH-Identity"
	ghIdentityType    = "GH-Identity-Type"
	ghAuthorisedRoles = "GH-Authorised-Roles"
)

func GetAuthorisedIdentity(r *http.Request) string {
	return r.Header.Get(ghIdentity)
}

func GetAuthorisedIdentityType(r *http.Request) string {
	return r.Header.Get(ghIdentityType)
}

func GetAuthorisedRoles(r *http.Request) string {
	return r.Header.Get(ghAuthorisedRoles)
}

func getAuthorisedRolesArray(r *http.Request) []string {
	roles := r.Header.Get(ghAuthorisedRoles)
	if len(roles) == 0 {
		return nil
	}

	return strings.Split(roles, " ")
}

func IsRoleAuthorised(r *http.Request, role string) bool {
	if len(role) == 0 {
		return false
	}

	roles := getAuthorisedRolesArray(r)
	if len(roles) == 0 {
		return false
	}

	return contains(roles, role)
}

// contains tells whether array contains s.
func contains(array []string, s string) bool {
	for _, n := range array {
		if s == n {
			return true
		}
	}
	return false
}
