package roster

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-roster/middleware/jwtware"
)

// Controllers bundles the HTTP surface for route registration.
type Controllers struct {
	Auth         *AuthController
	Teams        *TeamController
	Members      *MemberController
	Publications *PublicationController
	SocialLinks  *SocialLinkController
}

// tokenValidatorAdapter bridges TokenService to the middleware's
// mirrored interface.
type tokenValidatorAdapter struct {
	tokens TokenService
}

func (t tokenValidatorAdapter) Validate(ctx context.Context, tokenString, expectedType string) (jwtware.AuthClaims, error) {
	claims, err := t.tokens.Validate(ctx, tokenString, expectedType)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RegisterRoutes mounts the whole API. Auth endpoints that need an
// identity carry the required guard; the CRUD groups carry the optional
// guard so public reads pass through while writes see claims when a
// token is present and the authorizer decides from there.
func RegisterRoutes(app *fiber.App, tokens TokenService, ctrl Controllers) {
	required := jwtware.New(jwtware.Config{
		TokenValidator: tokenValidatorAdapter{tokens: tokens},
		ContextKey:     DefaultContextKey,
		TokenType:      TokenTypeAccess,
	})

	optional := jwtware.New(jwtware.Config{
		TokenValidator: tokenValidatorAdapter{tokens: tokens},
		ContextKey:     DefaultContextKey,
		TokenType:      TokenTypeAccess,
		Optional:       true,
	})

	auth := app.Group("/auth")
	auth.Post("/register", ctrl.Auth.Register)
	auth.Post("/login", ctrl.Auth.Login)
	auth.Post("/logout", required, ctrl.Auth.Logout)
	auth.Post("/refresh", ctrl.Auth.Refresh)
	auth.Get("/me", required, ctrl.Auth.Me)
	auth.Put("/change-password", required, ctrl.Auth.ChangePassword)
	auth.Get("/check-email", ctrl.Auth.CheckEmail)

	teams := app.Group("/teams", optional)
	teams.Get("/", ctrl.Teams.List)
	teams.Post("/", ctrl.Teams.Create)
	teams.Get("/:id", ctrl.Teams.Show)
	teams.Put("/:id", ctrl.Teams.Update)
	teams.Delete("/:id", ctrl.Teams.Delete)
	teams.Get("/:id/members", ctrl.Teams.Members)

	members := app.Group("/members", optional)
	members.Get("/", ctrl.Members.List)
	members.Get("/:id", ctrl.Members.Show)
	members.Put("/:id", ctrl.Members.Update)
	members.Delete("/:id", ctrl.Members.Delete)
	members.Get("/:id/social-links", ctrl.Members.SocialLinks)

	publications := app.Group("/publications", optional)
	publications.Get("/", ctrl.Publications.List)
	publications.Post("/", ctrl.Publications.Create)
	publications.Get("/:id", ctrl.Publications.Show)
	publications.Put("/:id", ctrl.Publications.Update)
	publications.Delete("/:id", ctrl.Publications.Delete)

	socialLinks := app.Group("/social-links", optional)
	socialLinks.Get("/", ctrl.SocialLinks.List)
	socialLinks.Post("/", ctrl.SocialLinks.Create)
	socialLinks.Get("/:id", ctrl.SocialLinks.Show)
	socialLinks.Put("/:id", ctrl.SocialLinks.Update)
	socialLinks.Delete("/:id", ctrl.SocialLinks.Delete)
}
