package interceptors

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"

	"github.com/givehub/escrow.api/helpers"
)

// AdminAuthenticationInterceptor checks that the authenticated caller holds
// the escrow admin role. It must run after UserAuthenticationInterceptor.
func AdminAuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := CallerID(r)
		if identity == "" {
			log.Error(fmt.Errorf("admin authentication interceptor unauthorised: no authorised identity"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		authUserHasAdminRole := helpers.IsRoleAuthorised(r, helpers.AdminEscrowRole)

		debugMap := log.Data{
			"auth_user_has_admin_role": authUserHasAdminRole,
			"request_method":           r.Method,
		}

		if !authUserHasAdminRole {
			log.InfoR(r, "AdminAuthenticationInterceptor unauthorised", debugMap)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
