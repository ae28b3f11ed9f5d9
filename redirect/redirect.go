// Package redirect maps user roles to their landing pages.
package redirect

import "food-delivery-app/models"

// DefaultFallback is used server-side for roles without a landing page.
const DefaultFallback = "/customer"

// Home is where callers without a session are sent.
const Home = "/"

var landing = map[models.UserRole]string{
	models.RoleCustomer:   "/customer",
	models.RoleRestaurant: "/restaurant",
	models.RoleDriver:     "/driver",
	models.RoleAdmin:      "/admin",
}

// Resolve returns the landing page of role, or fallback (DefaultFallback when empty).
func Resolve(role models.UserRole, fallback string) string {
	if path, ok := landing[role]; ok {
		return path
	}
	if fallback == "" {
		return DefaultFallback
	}
	return fallback
}

// Guard protects a page reserved for some roles.
type Guard struct {
	Allowed  []models.UserRole
	Fallback string
}

// Check returns ("", true) when role may stay on the page, otherwise the path to send the caller to.
// An empty role means there is no session.
func (g Guard) Check(role models.UserRole) (string, bool) {
	if role == "" {
		return Home, false
	}
	for _, r := range g.Allowed {
		if r == role {
			return "", true
		}
	}
	return Resolve(role, g.Fallback), false
}
