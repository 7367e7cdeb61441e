package roster

import (
	"github.com/goliatone/go-errors"
)

// Action is a coarse operation on a resource kind.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind names an authorizable resource type.
type ResourceKind string

const (
	KindTeam        ResourceKind = "team"
	KindMember      ResourceKind = "member"
	KindPublication ResourceKind = "publication"
	KindSocialLink  ResourceKind = "social_link"
)

// AuthzRule decides one action over one resource. A nil return allows.
// Rules only read claims and the resource; they never touch storage.
type AuthzRule func(claims AuthClaims, resource any) error

// Authorizer is the rule table. Reads are public, writes require an
// identity, and ownership rules compare ids out of the claims snapshot.
type Authorizer struct {
	rules  map[ResourceKind]map[Action]AuthzRule
	logger Logger
}

// NewAuthorizer builds the engine with the default rule table.
func NewAuthorizer() *Authorizer {
	a := &Authorizer{
		rules:  map[ResourceKind]map[Action]AuthzRule{},
		logger: defLogger{},
	}

	a.rules[KindTeam] = map[Action]AuthzRule{
		ActionRead:   allowAnyone,
		ActionCreate: requireTeamLeader,
		ActionUpdate: requireTeamLeader,
		ActionDelete: requireTeamLeader,
	}

	// member create goes through registration, not the CRUD surface
	a.rules[KindMember] = map[Action]AuthzRule{
		ActionRead:   allowAnyone,
		ActionUpdate: selfOrTeamLeader,
		ActionDelete: leaderOfSameTeam,
	}

	a.rules[KindPublication] = map[Action]AuthzRule{
		ActionRead:   allowAnyone,
		ActionCreate: requireAuthenticated,
		ActionUpdate: authorOrTeamLeader,
		ActionDelete: authorOrTeamLeader,
	}

	a.rules[KindSocialLink] = map[Action]AuthzRule{
		ActionRead:   allowAnyone,
		ActionCreate: requireAuthenticated,
		ActionUpdate: requireAuthenticated,
		ActionDelete: requireAuthenticated,
	}

	return a
}

func (a *Authorizer) WithLogger(logger Logger) *Authorizer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// SetRule replaces the rule for one kind/action pair.
func (a *Authorizer) SetRule(kind ResourceKind, action Action, rule AuthzRule) *Authorizer {
	if rule == nil {
		return a
	}
	if a.rules[kind] == nil {
		a.rules[kind] = map[Action]AuthzRule{}
	}
	a.rules[kind][action] = rule
	return a
}

// Decide evaluates the rule for the given action and resource. It returns
// nil to allow, ErrAuthenticationRequired when the action needs an
// identity the caller does not have, ErrAuthorizationDenied when the
// caller's claims fail the rule, and an internal error for kind/action
// pairs with no table entry. The last case is a wiring bug and is
// surfaced rather than treated as a deny.
func (a *Authorizer) Decide(claims AuthClaims, action Action, kind ResourceKind, resource any) error {
	actions, ok := a.rules[kind]
	if !ok {
		a.logger.Error("Authorizer has no rules for resource kind", "kind", string(kind))
		return errors.New("no authorization rules for resource kind", errors.CategoryInternal).
			WithMetadata(map[string]any{"kind": string(kind)})
	}

	rule, ok := actions[action]
	if !ok {
		a.logger.Error("Authorizer has no rule for action", "kind", string(kind), "action", string(action))
		return errors.New("no authorization rule for action", errors.CategoryInternal).
			WithMetadata(map[string]any{"kind": string(kind), "action": string(action)})
	}

	return rule(claims, resource)
}

func authenticated(claims AuthClaims) bool {
	return claims != nil && claims.UserID() != ""
}

func allowAnyone(AuthClaims, any) error {
	return nil
}

func requireAuthenticated(claims AuthClaims, _ any) error {
	if !authenticated(claims) {
		return ErrAuthenticationRequired
	}
	return nil
}

func requireTeamLeader(claims AuthClaims, _ any) error {
	if !authenticated(claims) {
		return ErrAuthenticationRequired
	}
	if !claims.IsTeamLeader() {
		return ErrAuthorizationDenied
	}
	return nil
}

func selfOrTeamLeader(claims AuthClaims, resource any) error {
	if !authenticated(claims) {
		return ErrAuthenticationRequired
	}

	member, ok := resource.(*Member)
	if !ok || member == nil {
		return ErrAuthorizationDenied
	}

	if claims.UserID() == member.ID.String() {
		return nil
	}

	if claims.IsTeamLeader() {
		return nil
	}

	return ErrAuthorizationDenied
}

func leaderOfSameTeam(claims AuthClaims, resource any) error {
	if !authenticated(claims) {
		return ErrAuthenticationRequired
	}

	member, ok := resource.(*Member)
	if !ok || member == nil {
		return ErrAuthorizationDenied
	}

	if !claims.IsTeamLeader() {
		return ErrAuthorizationDenied
	}

	if claims.TeamID() == "" || claims.TeamID() != member.TeamID.String() {
		return ErrAuthorizationDenied
	}

	return nil
}

func authorOrTeamLeader(claims AuthClaims, resource any) error {
	if !authenticated(claims) {
		return ErrAuthenticationRequired
	}

	pub, ok := resource.(*Publication)
	if !ok || pub == nil {
		return ErrAuthorizationDenied
	}

	if pub.AuthorID != nil && pub.AuthorID.String() == claims.UserID() {
		return nil
	}

	if claims.IsTeamLeader() && pub.TeamID != nil && claims.TeamID() != "" && pub.TeamID.String() == claims.TeamID() {
		return nil
	}

	return ErrAuthorizationDenied
}
