package services

import (
	"time"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/models"
)

// Access policy evaluator: pure decision functions, no I/O. Callers resolve
// anything that needs the database (allow-list membership) and pass it in,
// so every rule here is table-testable.

// sessionMaxIdle is the freshness window for mutating actions. A token can
// still be cryptographically valid while the session is considered stale.
const sessionMaxIdle = 24 * time.Hour

// CheckActor applies the baseline rules: an actor must exist and must not
// be blocked.
func CheckActor(actor *models.User) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if actor.IsBlocked {
		return apperrors.ErrForbidden
	}
	return nil
}

// CheckFreshSession gates non-read actions on the actor's pre-request
// lastActive timestamp.
func CheckFreshSession(actor *models.User, now time.Time) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if now.Sub(actor.LastActive) > sessionMaxIdle {
		return apperrors.ErrStaleSession
	}
	return nil
}

// CanReadTemplate decides template visibility: public, owned, admin, or
// allow-listed. allowListed is the resolved membership of actor in the
// template's allow list.
func CanReadTemplate(actor *models.User, template models.Template, allowListed bool) error {
	if template.IsPublic {
		return nil
	}
	if err := CheckActor(actor); err != nil {
		return err
	}
	if actor.ID == template.OwnerID || actor.Role == models.RoleAdmin || allowListed {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanWriteTemplate decides template mutation: owner or admin only
func CanWriteTemplate(actor *models.User, template models.Template) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if actor.ID == template.OwnerID || actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanWriteForm decides form read/write/delete: author or admin. Template
// ownership grants no edit rights on another user's answers.
func CanWriteForm(actor *models.User, form models.Form) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if actor.ID == form.AuthorID || actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanViewTemplateForms is the coarser results/analytics check: the template
// owner or an admin may view all forms for the template, read-only.
func CanViewTemplateForms(actor *models.User, template models.Template) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if actor.ID == template.OwnerID || actor.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanChangeRole decides the admin role-mutation action. The self-action
// guard forbids an admin demoting themselves, which would otherwise allow
// an accidental lockout.
func CanChangeRole(actor *models.User, targetID string, newRole models.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == targetID && newRole != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanBlockUser decides the admin block-toggle action; self-blocking is
// forbidden for the same lockout reason.
func CanBlockUser(actor *models.User, targetID string, blocked bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == targetID && blocked {
		return apperrors.ErrForbidden
	}
	return nil
}

func requireAdmin(actor *models.User) error {
	if err := CheckActor(actor); err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}
