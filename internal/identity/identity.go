package identity

// Identity is the verified caller identity handed to every service
// call. It is built from token claims by the auth middleware; services
// never look at raw claims or request state.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Roles   []string
}

// RoleReviewer authorizes leave request transitions and reading other
// users' requests.
const RoleReviewer = "reviewer"

func (id Identity) Authenticated() bool { return id.Subject != "" }

func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (id Identity) IsReviewer() bool { return id.HasRole(RoleReviewer) }

// FromClaims builds an Identity from verified OIDC claims. Roles are
// read from a top-level "roles" array or from Keycloak-style
// "realm_access"."roles".
func FromClaims(claims map[string]interface{}) Identity {
	ident := Identity{}
	ident.Subject, _ = claims["sub"].(string)
	ident.Email, _ = claims["email"].(string)
	ident.Name, _ = claims["name"].(string)

	if roles, ok := claims["roles"].([]interface{}); ok {
		ident.Roles = stringSlice(roles)
	} else if ra, ok := claims["realm_access"].(map[string]interface{}); ok {
		if roles, ok := ra["roles"].([]interface{}); ok {
			ident.Roles = stringSlice(roles)
		}
	}
	return ident
}

func stringSlice(in []interface{}) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
