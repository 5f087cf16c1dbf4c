package helpers

import (
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitGetAuthorisedIdentity(t *testing.T) {
	Convey("Identity headers are read from the gateway", t, func() {
		req := httptest.NewRequest("GET", "/escrow", nil)
		req.Header.Set("GH-Identity", "user-1")
		req.Header.Set("GH-Identity-Type", Oauth2IdentityType)
		req.Header.Set("GH-Authorised-Roles", "/user/profile /admin/escrow")

		So(GetAuthorisedIdentity(req), ShouldEqual, "user-1")
		So(GetAuthorisedIdentityType(req), ShouldEqual, Oauth2IdentityType)
		So(GetAuthorisedRoles(req), ShouldEqual, "/user/profile /admin/escrow")
	})
}

func TestUnitIsRoleAuthorised(t *testing.T) {
	Convey("Role checks against the space separated roles header", t, func() {
		req := httptest.NewRequest("GET", "/escrow", nil)
		req.Header.Set("GH-Authorised-Roles", "/user/profile "+AdminEscrowRole)

		So(IsRoleAuthorised(req, AdminEscrowRole), ShouldBeTrue)
		So(IsRoleAuthorised(req, "/admin/payments"), ShouldBeFalse)
		So(IsRoleAuthorised(req, ""), ShouldBeFalse)
	})

	Convey("No roles header means no roles", t, func() {
		req := httptest.NewRequest("GET", "/escrow", nil)
		So(IsRoleAuthorised(req, AdminEscrowRole), ShouldBeFalse)
	})
}
